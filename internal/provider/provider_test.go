package provider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	mock_identity "github.com/BerryBytes/rolectl/internal/mock/identity"
	mock_provider "github.com/BerryBytes/rolectl/internal/mock/provider"
	"github.com/BerryBytes/rolectl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/aws/smithy-go"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader applies the load options and returns a config carrying only the
// region and credentials they set.
type fakeLoader struct {
	mu    sync.Mutex
	calls []config.LoadOptions
	err   error
}

func (l *fakeLoader) LoadDefaultConfig(ctx context.Context, opts ...func(*config.LoadOptions) error) (aws.Config, error) {
	if l.err != nil {
		return aws.Config{}, l.err
	}
	var o config.LoadOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return aws.Config{}, err
		}
	}
	l.mu.Lock()
	l.calls = append(l.calls, o)
	l.mu.Unlock()
	return aws.Config{Region: o.Region, Credentials: o.Credentials}, nil
}

func baseSession() *models.CachedSession {
	return &models.CachedSession{
		Credentials: models.Credentials{
			AccessKeyID:     "ASIABASE",
			SecretAccessKey: "base-secret",
			SessionToken:    "base-token",
			Expiration:      models.RawTimestamp("2030-01-01T00:00:00Z"),
		},
	}
}

func roleOutput(expiration time.Time) *sts.AssumeRoleOutput {
	return &sts.AssumeRoleOutput{
		Credentials: &ststypes.Credentials{
			AccessKeyId:     aws.String("ASIAROLE"),
			SecretAccessKey: aws.String("role-secret"),
			SessionToken:    aws.String("role-token"),
			Expiration:      aws.Time(expiration),
		},
	}
}

func retrieve(t *testing.T, cfg aws.Config) aws.Credentials {
	t.Helper()
	require.NotNil(t, cfg.Credentials)
	creds, err := cfg.Credentials.Retrieve(context.TODO())
	require.NoError(t, err)
	return creds
}

func newMFAProvider(t *testing.T, opts ...MFAOption) (*MFASessionProvider, *mock_identity.MockSTSAPI, *fakeLoader) {
	ctrl := gomock.NewController(t)
	stsClient := mock_identity.NewMockSTSAPI(ctrl)
	clients := mock_identity.NewMockClientFactory(ctrl)
	clients.EXPECT().NewSTSClient(gomock.Any()).Return(stsClient).AnyTimes()
	loader := &fakeLoader{}

	opts = append([]MFAOption{WithMFAConfigLoader(loader), WithMFAClientFactory(clients)}, opts...)
	return NewMFASessionProvider(baseSession(), opts...), stsClient, loader
}

func TestMFASessionProvider_TemporaryCredentials(t *testing.T) {
	p, _, _ := newMFAProvider(t)

	creds, err := p.TemporaryCredentials()
	require.NoError(t, err)
	assert.Equal(t, baseSession().Credentials, creds)
}

func TestMFASessionProvider_AssumeRoleCredentials(t *testing.T) {
	p, stsClient, loader := newMFAProvider(t)
	expiration := time.Date(2030, 1, 1, 1, 0, 0, 0, time.UTC)

	stsClient.EXPECT().AssumeRole(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, in *sts.AssumeRoleInput, _ ...func(*sts.Options)) (*sts.AssumeRoleOutput, error) {
			assert.Equal(t, "arn:aws:iam::123456789012:role/Admin", aws.ToString(in.RoleArn))
			assert.Equal(t, "fred", aws.ToString(in.RoleSessionName))
			assert.Equal(t, int32(3600), aws.ToInt32(in.DurationSeconds))
			return roleOutput(expiration), nil
		})

	creds, err := p.AssumeRoleCredentials(context.TODO(), "arn:aws:iam::123456789012:role/Admin", "us-west-2", "fred")
	require.NoError(t, err)
	assert.Equal(t, &models.RoleCredentials{
		AccessKeyID:     "ASIAROLE",
		SecretAccessKey: "role-secret",
		SessionToken:    "role-token",
		Expiration:      expiration,
	}, creds)

	require.Len(t, loader.calls, 1)
	assert.Equal(t, "us-west-2", loader.calls[0].Region)
	base, err := loader.calls[0].Credentials.Retrieve(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, "ASIABASE", base.AccessKeyID)
	assert.Equal(t, "base-secret", base.SecretAccessKey)
	assert.Equal(t, "base-token", base.SessionToken)
}

func TestMFASessionProvider_AssumeRoleSession(t *testing.T) {
	p, stsClient, _ := newMFAProvider(t)
	stsClient.EXPECT().AssumeRole(gomock.Any(), gomock.Any()).Return(roleOutput(time.Now().Add(time.Hour)), nil)

	cfg, err := p.AssumeRoleSession(context.TODO(), "arn:aws:iam::123456789012:role/Admin", "ap-southeast-2", "fred")
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.Region)

	creds := retrieve(t, cfg)
	assert.Equal(t, "ASIAROLE", creds.AccessKeyID)
	assert.Equal(t, "role-secret", creds.SecretAccessKey)
	assert.Equal(t, "role-token", creds.SessionToken)
}

func TestMFASessionProvider_AssumeRoleErrorIsUnmodified(t *testing.T) {
	p, stsClient, _ := newMFAProvider(t)
	apiErr := &smithy.GenericAPIError{Code: "AccessDenied", Message: "not authorized"}
	stsClient.EXPECT().AssumeRole(gomock.Any(), gomock.Any()).Return(nil, apiErr).Times(2)

	_, err := p.AssumeRoleCredentials(context.TODO(), "arn:aws:iam::123456789012:role/Admin", "eu-west-1", "fred")
	assert.Same(t, apiErr, err)

	_, err = p.AssumeRoleSession(context.TODO(), "arn:aws:iam::123456789012:role/Admin", "eu-west-1", "fred")
	var got smithy.APIError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "AccessDenied", got.ErrorCode())
}

func TestMFASessionProvider_LoaderError(t *testing.T) {
	p, _, loader := newMFAProvider(t)
	loader.err = errors.New("no config")

	_, err := p.AssumeRoleCredentials(context.TODO(), "arn:aws:iam::123456789012:role/Admin", "eu-west-1", "fred")
	assert.EqualError(t, err, "no config")
}

func TestMFASessionProvider_GetUser(t *testing.T) {
	tests := []struct {
		name   string
		opts   []MFAOption
		region string
	}{
		{name: "default region", region: "eu-west-1"},
		{name: "overridden region", opts: []MFAOption{WithMFADefaultRegion("us-east-1")}, region: "us-east-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, stsClient, loader := newMFAProvider(t, tt.opts...)
			stsClient.EXPECT().GetCallerIdentity(gomock.Any(), gomock.Any()).Return(&sts.GetCallerIdentityOutput{
				Account: aws.String("123456789012"),
				Arn:     aws.String("arn:aws:iam::123456789012:user/ops/fred"),
			}, nil)

			user, err := p.GetUser(context.TODO())
			require.NoError(t, err)
			assert.Equal(t, "fred", user)
			require.Len(t, loader.calls, 1)
			assert.Equal(t, tt.region, loader.calls[0].Region)
		})
	}
}

func TestMFASessionProvider_GetUserError(t *testing.T) {
	p, stsClient, _ := newMFAProvider(t)
	apiErr := &smithy.GenericAPIError{Code: "ExpiredToken"}
	stsClient.EXPECT().GetCallerIdentity(gomock.Any(), gomock.Any()).Return(nil, apiErr)

	_, err := p.GetUser(context.TODO())
	assert.Same(t, apiErr, err)
}

func staticConfig(region string) aws.Config {
	return aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider("ASIASSO", "sso-secret", "sso-token"),
	}
}

func newSSOProvider(t *testing.T, opts ...SSOOption) (*SSOSessionProvider, *mock_provider.MockSSOExchange, *mock_identity.MockClientFactory) {
	ctrl := gomock.NewController(t)
	exchange := mock_provider.NewMockSSOExchange(ctrl)
	clients := mock_identity.NewMockClientFactory(ctrl)

	opts = append([]SSOOption{WithSSOClientFactory(clients)}, opts...)
	return NewSSOSessionProvider("https://example.awsapps.com/start", "us-east-1", exchange, opts...), exchange, clients
}

func TestSSOSessionProvider_TemporaryCredentialsUnsupported(t *testing.T) {
	p, _, _ := newSSOProvider(t)

	_, err := p.TemporaryCredentials()
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestSSOSessionProvider_AssumeRoleSession(t *testing.T) {
	p, exchange, _ := newSSOProvider(t)
	exchange.EXPECT().
		GetSession(gomock.Any(), "https://example.awsapps.com/start", "us-east-1", "123456789012", "Admin", "eu-central-1", true).
		Return(staticConfig("eu-central-1"), nil)

	cfg, err := p.AssumeRoleSession(context.TODO(), "arn:aws:iam::123456789012:role/Admin", "eu-central-1", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)
}

func TestSSOSessionProvider_AssumeRoleSessionInvalidArn(t *testing.T) {
	p, _, _ := newSSOProvider(t)

	_, err := p.AssumeRoleSession(context.TODO(), "not-an-arn", "eu-central-1", "ignored")
	assert.Error(t, err)
}

func TestSSOSessionProvider_AssumeRoleCredentials(t *testing.T) {
	p, exchange, _ := newSSOProvider(t)
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := aws.Config{
		Region: "eu-central-1",
		Credentials: aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     "ASIASSO",
				SecretAccessKey: "sso-secret",
				SessionToken:    "sso-token",
				CanExpire:       true,
				Expires:         expires,
			}, nil
		}),
	}
	exchange.EXPECT().GetSession(gomock.Any(), gomock.Any(), gomock.Any(), "123456789012", "Admin", "eu-central-1", true).Return(cfg, nil)

	creds, err := p.AssumeRoleCredentials(context.TODO(), "arn:aws:iam::123456789012:role/Admin", "eu-central-1", "ignored")
	require.NoError(t, err)
	assert.Equal(t, &models.RoleCredentials{
		AccessKeyID:     "ASIASSO",
		SecretAccessKey: "sso-secret",
		SessionToken:    "sso-token",
		Expiration:      expires,
	}, creds)
}

func TestSSOSessionProvider_AssumeRoleCredentialsError(t *testing.T) {
	p, exchange, _ := newSSOProvider(t)
	apiErr := &smithy.GenericAPIError{Code: "ForbiddenException"}
	exchange.EXPECT().GetSession(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), true).Return(aws.Config{}, apiErr)

	_, err := p.AssumeRoleCredentials(context.TODO(), "arn:aws:iam::123456789012:role/Admin", "eu-central-1", "ignored")
	assert.Same(t, apiErr, err)
}

func TestSSOSessionProvider_GetUserUsesFirstRole(t *testing.T) {
	p, exchange, clients := newSSOProvider(t)
	stsClient := mock_identity.NewMockSTSAPI(gomock.NewController(t))

	exchange.EXPECT().ListAvailableRoles(gomock.Any(), "us-east-1", "https://example.awsapps.com/start").Return([]models.SSORole{
		{AccountID: "111111111111", AccountName: "dev", RoleName: "ReadOnly"},
		{AccountID: "222222222222", AccountName: "prod", RoleName: "Admin"},
	}, nil)
	exchange.EXPECT().
		GetSession(gomock.Any(), gomock.Any(), "us-east-1", "111111111111", "ReadOnly", "eu-west-1", true).
		Return(staticConfig("eu-west-1"), nil)
	clients.EXPECT().NewSTSClient(gomock.Any()).Return(stsClient)
	stsClient.EXPECT().GetCallerIdentity(gomock.Any(), gomock.Any()).Return(&sts.GetCallerIdentityOutput{
		UserId: aws.String("AROAEXAMPLEID:jane@example.com:extra"),
	}, nil)

	user, err := p.GetUser(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user)
}

func TestSSOSessionProvider_GetUserCustomRegion(t *testing.T) {
	p, exchange, clients := newSSOProvider(t, WithSSODefaultRegion("ca-central-1"))
	stsClient := mock_identity.NewMockSTSAPI(gomock.NewController(t))

	exchange.EXPECT().ListAvailableRoles(gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.SSORole{
		{AccountID: "111111111111", RoleName: "ReadOnly"},
	}, nil)
	exchange.EXPECT().GetSession(gomock.Any(), gomock.Any(), gomock.Any(), "111111111111", "ReadOnly", "ca-central-1", true).
		Return(staticConfig("ca-central-1"), nil)
	clients.EXPECT().NewSTSClient(gomock.Any()).Return(stsClient)
	stsClient.EXPECT().GetCallerIdentity(gomock.Any(), gomock.Any()).Return(&sts.GetCallerIdentityOutput{
		UserId: aws.String("AROAEXAMPLEID:jane"),
	}, nil)

	user, err := p.GetUser(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, "jane", user)
}

func TestSSOSessionProvider_GetUserNoRoles(t *testing.T) {
	p, exchange, _ := newSSOProvider(t)
	exchange.EXPECT().ListAvailableRoles(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := p.GetUser(context.TODO())
	assert.ErrorIs(t, err, ErrNoAccessibleRoles)
}

func TestSSOSessionProvider_GetUserMalformedUserID(t *testing.T) {
	p, exchange, clients := newSSOProvider(t)
	stsClient := mock_identity.NewMockSTSAPI(gomock.NewController(t))

	exchange.EXPECT().ListAvailableRoles(gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.SSORole{
		{AccountID: "111111111111", RoleName: "ReadOnly"},
	}, nil)
	exchange.EXPECT().GetSession(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), true).
		Return(staticConfig("eu-west-1"), nil)
	clients.EXPECT().NewSTSClient(gomock.Any()).Return(stsClient)
	stsClient.EXPECT().GetCallerIdentity(gomock.Any(), gomock.Any()).Return(&sts.GetCallerIdentityOutput{
		UserId: aws.String("AIDAEXAMPLE"),
	}, nil)

	_, err := p.GetUser(context.TODO())
	assert.Error(t, err)
}
