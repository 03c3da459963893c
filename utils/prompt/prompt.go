package promptutils

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/manifoldco/promptui"
)

type Prompter interface {
	PromptForSelection(label string, items []string) (string, error)
	PromptForMFACode() (string, error)
}

type RealPrompter struct{}

var ErrInterrupted = errors.New("operation interrupted")

var mfaCodePattern = regexp.MustCompile(`^\d{6}$`)

func (p *RealPrompter) HandlePromptError(err error) error {
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			fmt.Println("\nReceived termination signal. Exiting.")
			return ErrInterrupted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func (p *RealPrompter) PromptForSelection(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}
	_, selected, err := prompt.Run()
	if err := p.HandlePromptError(err); err != nil {
		return "", err
	}
	return selected, nil
}

// PromptForMFACode reads a six digit code without echoing it.
func (p *RealPrompter) PromptForMFACode() (string, error) {
	prompt := promptui.Prompt{
		Label:    "MFA code",
		Mask:     '*',
		Validate: ValidateMFACode,
	}
	code, err := prompt.Run()
	if err := p.HandlePromptError(err); err != nil {
		return "", err
	}
	return code, nil
}

func ValidateMFACode(code string) error {
	if !mfaCodePattern.MatchString(code) {
		return fmt.Errorf("MFA code must be 6 digits")
	}
	return nil
}

func NewPrompt() Prompter {
	return &RealPrompter{}
}
