package sso

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BerryBytes/rolectl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssooidc"
	oidctypes "github.com/aws/aws-sdk-go-v2/service/ssooidc/types"
	log "github.com/sirupsen/logrus"
)

const (
	clientName      = "rolectl"
	deviceGrantType = "urn:ietf:params:oauth:grant-type:device_code"

	defaultPollInterval = 5 * time.Second
	slowDownIncrement   = 5 * time.Second
)

var ErrDeviceAuthorizationExpired = errors.New("device authorization expired before login completed")

// login runs the OIDC device authorization flow and returns the new token.
func (e *Exchange) login(ctx context.Context, client OIDCAPI, ssoRegion, startURL string) (*models.SSOToken, error) {
	registration, err := client.RegisterClient(ctx, &ssooidc.RegisterClientInput{
		ClientName: aws.String(clientName),
		ClientType: aws.String("public"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register OIDC client: %w", err)
	}

	device, err := client.StartDeviceAuthorization(ctx, &ssooidc.StartDeviceAuthorizationInput{
		ClientId:     registration.ClientId,
		ClientSecret: registration.ClientSecret,
		StartUrl:     aws.String(startURL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start device authorization: %w", err)
	}

	verificationURL := aws.ToString(device.VerificationUriComplete)
	if verificationURL == "" {
		verificationURL = aws.ToString(device.VerificationUri)
	}
	fmt.Fprintf(e.out, "Attempting to open the SSO authorization page in your browser.\n")
	fmt.Fprintf(e.out, "If it does not open, visit:\n\n%s\n\nand enter the code: %s\n", verificationURL, aws.ToString(device.UserCode))

	if !e.noBrowser {
		if err := e.openURL(verificationURL); err != nil {
			log.Warnf("Failed to open browser: %v", err)
		}
	}

	interval := time.Duration(device.Interval) * time.Second
	if interval <= 0 {
		interval = defaultPollInterval
	}
	deadline := e.now().Add(time.Duration(device.ExpiresIn) * time.Second)

	for {
		token, err := client.CreateToken(ctx, &ssooidc.CreateTokenInput{
			ClientId:     registration.ClientId,
			ClientSecret: registration.ClientSecret,
			DeviceCode:   device.DeviceCode,
			GrantType:    aws.String(deviceGrantType),
		})
		if err == nil {
			expiresAt := e.now().Add(time.Duration(token.ExpiresIn) * time.Second).UTC()
			return &models.SSOToken{
				StartURL:    startURL,
				Region:      ssoRegion,
				AccessToken: aws.ToString(token.AccessToken),
				ExpiresAt:   expiresAt.Format(time.RFC3339),
			}, nil
		}

		var pending *oidctypes.AuthorizationPendingException
		var slowDown *oidctypes.SlowDownException
		switch {
		case errors.As(err, &pending):
		case errors.As(err, &slowDown):
			interval += slowDownIncrement
			log.Debugf("SSO asked to slow down, polling every %s", interval)
		default:
			return nil, fmt.Errorf("failed to create SSO token: %w", err)
		}

		if !e.now().Add(interval).Before(deadline) {
			return nil, ErrDeviceAuthorizationExpired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-e.after(interval):
		}
	}
}
