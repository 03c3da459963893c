package root

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var errorHints = map[string]string{
	"ExpiredToken":             "the session has expired, run `rolectl session` to refresh it",
	"ExpiredTokenException":    "the session has expired, run `rolectl session` to refresh it",
	"InvalidClientTokenId":     "the profile's access key is not valid",
	"SignatureDoesNotMatch":    "the profile's secret key does not match its access key",
	"AccessDenied":             "check the MFA code and that the role trusts your user",
	"UnauthorizedException":    "the SSO token was rejected, sign in again",
	"ForbiddenException":       "your SSO user has no access to this account or role",
	"RegionDisabledException":  "STS is not enabled in this region",
	"TooManyRequestsException": "the API is throttling requests, try again shortly",
}

// WithHint appends a remedy to AWS API errors with a known code.
func WithHint(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	hint, ok := errorHints[apiErr.ErrorCode()]
	if !ok {
		return err
	}
	return fmt.Errorf("%w (hint: %s)", err, hint)
}
