package mfa

// TokenPrompter asks the user for the current code of their MFA device.
type TokenPrompter interface {
	PromptForMFACode() (string, error)
}
