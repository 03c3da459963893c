package mfa_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BerryBytes/rolectl/internal/cache"
	"github.com/BerryBytes/rolectl/internal/mfa"
	mock_identity "github.com/BerryBytes/rolectl/internal/mock/identity"
	"github.com/BerryBytes/rolectl/internal/sessioncache"
	"github.com/BerryBytes/rolectl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/aws/smithy-go"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) PromptForMFACode() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func currentSessionData() *models.CachedSession {
	return &models.CachedSession{
		Credentials: models.Credentials{
			AccessKeyID:     "temporary_access_key_id",
			SecretAccessKey: "temporary_secret_access_key",
			SessionToken:    "token",
			Expiration:      models.RawTimestamp(time.Now().UTC().Add(time.Hour).Format("2006-01-02T15:04:05MST")),
		},
	}
}

func sessionTokenOutput() *sts.GetSessionTokenOutput {
	return &sts.GetSessionTokenOutput{
		Credentials: &ststypes.Credentials{
			AccessKeyId:     aws.String("temporary_access_key_id"),
			SecretAccessKey: aws.String("temporary_secret_access_key"),
			SessionToken:    aws.String("token"),
			Expiration:      aws.Time(time.Now().Add(time.Hour)),
		},
	}
}

func TestGetSessionToken_CachedCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(mfa.SessionKey, currentSessionData()))

	mockSTS := mock_identity.NewMockSTSAPI(ctrl)
	prompter := new(MockPrompter)
	factory := mfa.NewCachedSessionFactory(mockSTS, sessioncache.New(store), prompter)

	session, err := factory.GetSessionToken(context.TODO(), "")
	require.NoError(t, err)
	assert.Equal(t, "temporary_access_key_id", session.Credentials.AccessKeyID)
	assert.Equal(t, "temporary_secret_access_key", session.Credentials.SecretAccessKey)
	prompter.AssertNotCalled(t, "PromptForMFACode")
}

func TestGetSessionToken_FromExchange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSTS := mock_identity.NewMockSTSAPI(ctrl)
	mockSTS.EXPECT().GetCallerIdentity(gomock.Any(), gomock.Any()).Return(&sts.GetCallerIdentityOutput{
		Arn:     aws.String("arn"),
		Account: aws.String("123456789012"),
	}, nil).Times(1)

	expected := sessionTokenOutput()
	mockSTS.EXPECT().GetSessionToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *sts.GetSessionTokenInput, _ ...func(*sts.Options)) (*sts.GetSessionTokenOutput, error) {
			assert.Equal(t, int32(43200), aws.ToInt32(in.DurationSeconds))
			assert.Equal(t, "arn:aws:iam::123456789012:mfa/arn", aws.ToString(in.SerialNumber))
			assert.Equal(t, "token", aws.ToString(in.TokenCode))
			return expected, nil
		}).Times(1)

	store := cache.NewMemoryStore()
	factory := mfa.NewCachedSessionFactory(mockSTS, sessioncache.New(store), new(MockPrompter))

	session, err := factory.GetSessionToken(context.TODO(), "token")
	require.NoError(t, err)
	assert.Equal(t, "temporary_access_key_id", session.Credentials.AccessKeyID)
	assert.Equal(t, "temporary_secret_access_key", session.Credentials.SecretAccessKey)
	assert.Equal(t, "token", session.Credentials.SessionToken)
	assert.True(t, store.Contains(mfa.SessionKey))

	// warm cache: the gomock Times(1) expectations fail if STS is called again
	again, err := factory.GetSessionToken(context.TODO(), "")
	require.NoError(t, err)
	assert.Equal(t, session.Credentials.AccessKeyID, again.Credentials.AccessKeyID)
}

func TestGetSessionToken_PromptsWhenNoCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSTS := mock_identity.NewMockSTSAPI(ctrl)
	mockSTS.EXPECT().GetCallerIdentity(gomock.Any(), gomock.Any()).Return(&sts.GetCallerIdentityOutput{
		Arn:     aws.String("arn:aws:iam::123456789012:user/fred"),
		Account: aws.String("123456789012"),
	}, nil)
	mockSTS.EXPECT().GetSessionToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *sts.GetSessionTokenInput, _ ...func(*sts.Options)) (*sts.GetSessionTokenOutput, error) {
			assert.Equal(t, "arn:aws:iam::123456789012:mfa/fred", aws.ToString(in.SerialNumber))
			assert.Equal(t, "654321", aws.ToString(in.TokenCode))
			return sessionTokenOutput(), nil
		})

	prompter := new(MockPrompter)
	prompter.On("PromptForMFACode").Return("654321", nil).Once()

	factory := mfa.NewCachedSessionFactory(mockSTS, sessioncache.New(cache.NewMemoryStore()), prompter)
	_, err := factory.GetSessionToken(context.TODO(), "")
	require.NoError(t, err)
	prompter.AssertExpectations(t)
}

func TestGetSessionToken_ExpiredCacheRefreshes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := cache.NewMemoryStore()
	expired := currentSessionData()
	expired.Credentials.AccessKeyID = "stale"
	expired.Credentials.Expiration = models.RawTimestamp("2020-10-01T17:08:49UTC")
	require.NoError(t, store.Set(mfa.SessionKey, expired))

	mockSTS := mock_identity.NewMockSTSAPI(ctrl)
	mockSTS.EXPECT().GetSessionToken(gomock.Any(), gomock.Any()).Return(sessionTokenOutput(), nil)

	factory := mfa.NewCachedSessionFactory(mockSTS, sessioncache.New(store), nil,
		mfa.WithMFASerial("arn:aws:iam::123456789012:mfa/pinned"))

	session, err := factory.GetSessionToken(context.TODO(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "temporary_access_key_id", session.Credentials.AccessKeyID)

	cached, err := store.Get(mfa.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, "temporary_access_key_id", cached.Credentials.AccessKeyID)
}

func TestGetSessionToken_ExchangeErrorIsNotWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	apiErr := &smithy.GenericAPIError{Code: "AccessDenied", Message: "MultiFactorAuthentication failed with invalid MFA one time pass code."}

	mockSTS := mock_identity.NewMockSTSAPI(ctrl)
	mockSTS.EXPECT().GetCallerIdentity(gomock.Any(), gomock.Any()).Return(&sts.GetCallerIdentityOutput{
		Arn:     aws.String("arn:aws:iam::123456789012:user/fred"),
		Account: aws.String("123456789012"),
	}, nil)
	mockSTS.EXPECT().GetSessionToken(gomock.Any(), gomock.Any()).Return(nil, apiErr)

	store := cache.NewMemoryStore()
	factory := mfa.NewCachedSessionFactory(mockSTS, sessioncache.New(store), nil)

	_, err := factory.GetSessionToken(context.TODO(), "000000")
	assert.Same(t, apiErr, err)
	assert.False(t, store.Contains(mfa.SessionKey))
}

func TestGetSessionToken_PromptError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	promptErr := errors.New("operation interrupted")
	prompter := new(MockPrompter)
	prompter.On("PromptForMFACode").Return("", promptErr)

	factory := mfa.NewCachedSessionFactory(mock_identity.NewMockSTSAPI(ctrl), sessioncache.New(cache.NewMemoryStore()), prompter)
	_, err := factory.GetSessionToken(context.TODO(), "")
	assert.ErrorIs(t, err, promptErr)
}

func TestGetSessionToken_NoPrompter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	factory := mfa.NewCachedSessionFactory(mock_identity.NewMockSTSAPI(ctrl), sessioncache.New(cache.NewMemoryStore()), nil)
	_, err := factory.GetSessionToken(context.TODO(), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no MFA code supplied")
}
