package models

import (
	"bytes"
	"encoding/json"
)

// Credentials is the key material of an STS session as it is stored in the
// session cache.
type Credentials struct {
	AccessKeyID     string    `json:"AccessKeyId"`
	SecretAccessKey string    `json:"SecretAccessKey"`
	SessionToken    string    `json:"SessionToken"`
	Expiration      Timestamp `json:"Expiration"`

	members members
}

// AssumedRoleUser identifies the principal behind a session, when STS returns one.
type AssumedRoleUser struct {
	AssumedRoleID string `json:"AssumedRoleId"`
	Arn           string `json:"Arn"`

	members members
}

// ResponseMetadata is carried over from the exchange that created the session.
// Fields written by other tools sharing the cache (HTTPStatusCode, HTTPHeaders,
// RetryAttempts) are kept as read.
type ResponseMetadata struct {
	RequestID string `json:"RequestId,omitempty"`

	members members
}

// CachedSession is the record written to the cache store after a successful
// GetSessionToken exchange. A record read from JSON marshals back with its
// unknown members in their original order.
type CachedSession struct {
	Credentials      Credentials       `json:"Credentials"`
	AssumedRoleUser  *AssumedRoleUser  `json:"AssumedRoleUser,omitempty"`
	ResponseMetadata *ResponseMetadata `json:"ResponseMetadata,omitempty"`

	members members
}

type (
	credentialsJSON      Credentials
	assumedRoleUserJSON  AssumedRoleUser
	responseMetadataJSON ResponseMetadata
	cachedSessionJSON    CachedSession
)

func (c Credentials) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(credentialsJSON(c))
	if err != nil {
		return nil, err
	}
	return mergeMembers(c.members, data)
}

func (c *Credentials) UnmarshalJSON(data []byte) error {
	return unmarshalKeeping(data, (*credentialsJSON)(c), &c.members)
}

func (u AssumedRoleUser) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(assumedRoleUserJSON(u))
	if err != nil {
		return nil, err
	}
	return mergeMembers(u.members, data)
}

func (u *AssumedRoleUser) UnmarshalJSON(data []byte) error {
	return unmarshalKeeping(data, (*assumedRoleUserJSON)(u), &u.members)
}

func (m ResponseMetadata) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(responseMetadataJSON(m))
	if err != nil {
		return nil, err
	}
	return mergeMembers(m.members, data)
}

func (m *ResponseMetadata) UnmarshalJSON(data []byte) error {
	return unmarshalKeeping(data, (*responseMetadataJSON)(m), &m.members)
}

func (s CachedSession) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(cachedSessionJSON(s))
	if err != nil {
		return nil, err
	}
	return mergeMembers(s.members, data)
}

func (s *CachedSession) UnmarshalJSON(data []byte) error {
	return unmarshalKeeping(data, (*cachedSessionJSON)(s), &s.members)
}

func unmarshalKeeping(data []byte, fields interface{}, keep *members) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, fields); err != nil {
		return err
	}
	decoded, err := decodeMembers(data)
	if err != nil {
		return err
	}
	*keep = decoded
	return nil
}
