// Package arn parses the role ARNs handed to the session providers.
package arn

import (
	"fmt"
	"strings"

	awsarn "github.com/aws/aws-sdk-go-v2/aws/arn"
)

// RoleArn is a parsed ARN. ResourceType is empty when the resource segment
// carries no type prefix.
type RoleArn struct {
	FullArn      string
	Partition    string
	Service      string
	Region       string
	Account      string
	ResourceType string
	Resource     string
}

// Parse splits an ARN into its fields. A resource written as "type:resource"
// (seven segments) is split on that colon and kept verbatim. Otherwise only the
// sixth segment is read, and "type/resource" is split on its first slash.
func Parse(s string) (*RoleArn, error) {
	parsed, err := awsarn.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid ARN %q: %w", s, err)
	}

	resourceType, resource := splitResource(parsed.Resource)
	return &RoleArn{
		FullArn:      s,
		Partition:    parsed.Partition,
		Service:      parsed.Service,
		Region:       parsed.Region,
		Account:      parsed.AccountID,
		ResourceType: resourceType,
		Resource:     resource,
	}, nil
}

// RoleARN builds the IAM role ARN for an account and role name.
func RoleARN(accountID, roleName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, roleName)
}

// MFASerial builds the virtual MFA device ARN conventionally named after the user.
func MFASerial(accountID, userName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:mfa/%s", accountID, userName)
}

func (a *RoleArn) String() string {
	return a.FullArn
}

func splitResource(resource string) (string, string) {
	segments := strings.Split(resource, ":")
	if len(segments) == 2 {
		return segments[0], segments[1]
	}
	resource = segments[0]
	if resourceType, rest, ok := strings.Cut(resource, "/"); ok {
		return resourceType, rest
	}
	return "", resource
}
