package sso

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/BerryBytes/rolectl/internal/arn"
	"github.com/BerryBytes/rolectl/models"
	promptutils "github.com/BerryBytes/rolectl/utils/prompt"
)

var accountIDPattern = regexp.MustCompile(`^\d{12}$`)

// Selector picks one item from a list.
type Selector interface {
	PromptForSelection(label string, items []string) (string, error)
}

func ValidateAccountID(accountID string) error {
	if !accountIDPattern.MatchString(accountID) {
		return fmt.Errorf("invalid account ID: %s (must be 12 digits)", accountID)
	}
	return nil
}

func ValidateStartURL(startURL string) error {
	if !strings.HasPrefix(startURL, "https://") {
		return fmt.Errorf("invalid start URL: %s (must start with https://)", startURL)
	}
	return nil
}

func roleLabel(role models.SSORole) string {
	if role.AccountName == "" {
		return fmt.Sprintf("%s / %s", role.AccountID, role.RoleName)
	}
	return fmt.Sprintf("%s (%s) / %s", role.AccountID, role.AccountName, role.RoleName)
}

// SelectRoleArn asks the user to pick one of roles and returns its ARN.
func SelectRoleArn(selector Selector, roles []models.SSORole) (string, error) {
	if len(roles) == 0 {
		return "", fmt.Errorf("no SSO roles to select from")
	}

	labels := make([]string, len(roles))
	for i, role := range roles {
		labels[i] = roleLabel(role)
	}

	selected, err := selector.PromptForSelection("Select an SSO role", labels)
	if err != nil {
		if errors.Is(err, promptutils.ErrInterrupted) {
			return "", promptutils.ErrInterrupted
		}
		return "", fmt.Errorf("role selection aborted: %w", err)
	}

	for i, label := range labels {
		if label == selected {
			role := roles[i]
			if err := ValidateAccountID(role.AccountID); err != nil {
				return "", err
			}
			return arn.RoleARN(role.AccountID, role.RoleName), nil
		}
	}
	return "", fmt.Errorf("unknown selection %q", selected)
}
