// Package auth validates inbound Authorization headers against the auth
// policy stored on an endpoint descriptor.
//
// A policy is an opaque JSON object with optional fields username,
// password, and token_data (the legacy spelling tokenData is also
// accepted). Basic credentials must match username+password; a Bearer
// token must match token_data. An endpoint without a policy skips the auth
// gate entirely; that decision is made by the dispatch pipeline, not here.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Policy is the parsed form of a descriptor's authentication JSON.
type Policy struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	// token_data per the admin wire format; tokenData kept for payloads
	// produced by older clients.
	TokenData    *string `json:"token_data"`
	TokenDataAlt *string `json:"tokenData"`
}

// token returns the expected bearer token, honoring both field spellings.
func (p *Policy) token() *string {
	if p.TokenData != nil {
		return p.TokenData
	}
	return p.TokenDataAlt
}

// Validate checks header (the raw Authorization value) against the policy
// JSON in policyData. It returns false for a missing or empty header, an
// unknown scheme, undecodable credentials, or a policy that does not match.
func Validate(policyData, header string) bool {
	if header == "" {
		return false
	}
	if strings.HasPrefix(header, "Basic ") {
		return validateBasic(policyData, strings.TrimPrefix(header, "Basic "))
	}
	if strings.HasPrefix(header, "Bearer ") {
		return validateBearer(policyData, strings.TrimPrefix(header, "Bearer "))
	}
	return false
}

// validateBasic decodes base64 "user:pass" credentials and requires both
// username and password to be present in the policy and equal.
func validateBasic(policyData, encoded string) bool {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}
	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return false
	}

	var p Policy
	if err := json.Unmarshal([]byte(policyData), &p); err != nil {
		return false
	}
	return p.Username != nil && *p.Username == user &&
		p.Password != nil && *p.Password == pass
}

// validateBearer requires the policy's token_data to be present and equal
// to the presented token.
func validateBearer(policyData, token string) bool {
	var p Policy
	if err := json.Unmarshal([]byte(policyData), &p); err != nil {
		return false
	}
	expected := p.token()
	return expected != nil && *expected == token
}
