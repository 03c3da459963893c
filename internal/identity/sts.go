// Package identity wraps the STS calls used to build and derive sessions.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerryBytes/rolectl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
)

type DefaultClientFactory struct{}

func (DefaultClientFactory) NewSTSClient(cfg aws.Config) STSAPI {
	return sts.NewFromConfig(cfg)
}

type DefaultConfigLoader struct{}

func (DefaultConfigLoader) LoadDefaultConfig(ctx context.Context, opts ...func(*config.LoadOptions) error) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx, opts...)
}

// StaticConfig loads a config bound to region that signs with the given keys
// instead of whatever the environment or shared profile provides.
func StaticConfig(ctx context.Context, loader ConfigLoader, region, accessKeyID, secretAccessKey, sessionToken string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, sessionToken)),
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	return loader.LoadDefaultConfig(ctx, opts...)
}

// AccountAndUser resolves the caller's account id and the user name, taken as
// everything after the last slash of the caller ARN.
func AccountAndUser(ctx context.Context, client STSAPI) (string, string, error) {
	identity, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", "", err
	}
	return aws.ToString(identity.Account), UserFromArn(aws.ToString(identity.Arn)), nil
}

func UserFromArn(callerArn string) string {
	return callerArn[strings.LastIndex(callerArn, "/")+1:]
}

// UserFromUserID extracts the name from an SSO user id of the form
// <kind>:<name>:<session>.
func UserFromUserID(userID string) (string, error) {
	parts := strings.SplitN(userID, ":", 3)
	if len(parts) < 2 {
		return "", fmt.Errorf("unexpected caller user id %q", userID)
	}
	return parts[1], nil
}

// ToCachedSession converts a GetSessionToken response into the record kept in
// the session cache.
func ToCachedSession(out *sts.GetSessionTokenOutput) (*models.CachedSession, error) {
	if out == nil || out.Credentials == nil {
		return nil, fmt.Errorf("GetSessionToken returned no credentials")
	}
	session := &models.CachedSession{
		Credentials: toCredentials(out.Credentials),
	}
	if requestID, ok := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata); ok {
		session.ResponseMetadata = &models.ResponseMetadata{RequestID: requestID}
	}
	return session, nil
}

func ToRoleCredentials(out *sts.AssumeRoleOutput) (*models.RoleCredentials, error) {
	if out == nil || out.Credentials == nil {
		return nil, fmt.Errorf("AssumeRole returned no credentials")
	}
	return &models.RoleCredentials{
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
		Expiration:      aws.ToTime(out.Credentials.Expiration),
	}, nil
}

func toCredentials(c *ststypes.Credentials) models.Credentials {
	return models.Credentials{
		AccessKeyID:     aws.ToString(c.AccessKeyId),
		SecretAccessKey: aws.ToString(c.SecretAccessKey),
		SessionToken:    aws.ToString(c.SessionToken),
		Expiration:      models.NewTimestamp(aws.ToTime(c.Expiration)),
	}
}
