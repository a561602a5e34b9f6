// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package network

import "strings"

// CredentialPolicy decides what happens when the profile can't sign transactions.
type CredentialPolicy string

const (
	// PolicyFail refuses to deploy without a credential.
	PolicyFail CredentialPolicy = "fail"
	// PolicySimulate deploys to an in-memory chain with an ephemeral key instead of the configured endpoint.
	PolicySimulate CredentialPolicy = "simulate"
)

// ParseCredentialPolicy parses policy name, empty string means PolicyFail.
func ParseCredentialPolicy(s string) (CredentialPolicy, error) {
	switch CredentialPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyFail:
		return PolicyFail, nil
	case PolicySimulate:
		return PolicySimulate, nil
	default:
		return "", Error.New("unknown credential policy %q, expected %q or %q", s, PolicyFail, PolicySimulate)
	}
}

// String implements pflag.Value.
func (policy *CredentialPolicy) String() string { return string(*policy) }

// Set implements pflag.Value.
func (policy *CredentialPolicy) Set(s string) error {
	v, err := ParseCredentialPolicy(s)
	if err != nil {
		return err
	}
	*policy = v
	return nil
}

// Type implements pflag.Value.
func (policy *CredentialPolicy) Type() string { return "credential-policy" }
