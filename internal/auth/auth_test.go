package auth

import "testing"

const basicPolicy = `{"username":"user","password":"pass"}`

func TestValidateBasicHappyPath(t *testing.T) {
	// Base64 for user:pass
	if !Validate(basicPolicy, "Basic dXNlcjpwYXNz") {
		t.Fatalf("matching basic credentials should validate")
	}
}

func TestValidateBasicWrongPassword(t *testing.T) {
	// Base64 for user:pwd
	if Validate(basicPolicy, "Basic dXNlcjpwd2Q=") {
		t.Fatalf("wrong password must not validate")
	}
}

func TestValidateBasicRequiresBothFields(t *testing.T) {
	// A policy missing the password can never match basic credentials.
	if Validate(`{"username":"user"}`, "Basic dXNlcjpwYXNz") {
		t.Fatalf("policy without password must not validate")
	}
	if Validate(`{}`, "Basic dXNlcjpwYXNz") {
		t.Fatalf("empty policy must not validate")
	}
}

func TestValidateBasicMalformed(t *testing.T) {
	if Validate(basicPolicy, "Basic !!!not-base64!!!") {
		t.Fatalf("undecodable credentials must not validate")
	}
	// Base64 for "usernopass" (no colon separator).
	if Validate(basicPolicy, "Basic dXNlcm5vcGFzcw==") {
		t.Fatalf("credentials without a colon must not validate")
	}
	if Validate("not json", "Basic dXNlcjpwYXNz") {
		t.Fatalf("unparseable policy must not validate")
	}
}

func TestValidateBearer(t *testing.T) {
	policy := `{"token_data":"SOME_LONG_TOKEN"}`
	if !Validate(policy, "Bearer SOME_LONG_TOKEN") {
		t.Fatalf("matching bearer token should validate")
	}
	if Validate(policy, "Bearer OTHER_TOKEN") {
		t.Fatalf("mismatching token must not validate")
	}
	if Validate(`{}`, "Bearer SOME_LONG_TOKEN") {
		t.Fatalf("policy without token_data must not validate")
	}
}

func TestValidateBearerLegacySpelling(t *testing.T) {
	if !Validate(`{"tokenData":"T"}`, "Bearer T") {
		t.Fatalf("legacy tokenData spelling should still validate")
	}
}

func TestValidateHeaderShapes(t *testing.T) {
	if Validate(basicPolicy, "") {
		t.Fatalf("missing header must not validate")
	}
	if Validate(basicPolicy, "Digest abc") {
		t.Fatalf("unknown scheme must not validate")
	}
	if Validate(basicPolicy, "basic dXNlcjpwYXNz") {
		t.Fatalf("scheme prefix is case-sensitive on the wire contract")
	}
}
