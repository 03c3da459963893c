package models

import "time"

// RoleCredentials holds the credentials returned by an assume role exchange.
// They are scoped to a single role and are never cached.
type RoleCredentials struct {
	AccessKeyID     string    `json:"AccessKeyId" yaml:"accessKeyId"`
	SecretAccessKey string    `json:"SecretAccessKey" yaml:"secretAccessKey"`
	SessionToken    string    `json:"SessionToken" yaml:"sessionToken"`
	Expiration      time.Time `json:"Expiration,omitempty" yaml:"expiration,omitempty"`
}

// CredentialProcessOutput is the document expected by the AWS CLI and SDKs
// from a credential_process command.
type CredentialProcessOutput struct {
	Version         int    `json:"Version"`
	AccessKeyID     string `json:"AccessKeyId"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken"`
	Expiration      string `json:"Expiration,omitempty"`
}
