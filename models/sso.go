package models

// SSORole is one (account, role) pair visible to the signed in SSO identity.
type SSORole struct {
	AccountID   string `json:"accountId" yaml:"accountId"`
	AccountName string `json:"accountName" yaml:"accountName"`
	RoleName    string `json:"roleName" yaml:"roleName"`
}

// SSOToken mirrors the token files the AWS CLI keeps in ~/.aws/sso/cache.
type SSOToken struct {
	StartURL    string `json:"startUrl"`
	Region      string `json:"region"`
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}
