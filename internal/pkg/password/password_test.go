package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("admin123456")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "admin123456" {
		t.Error("hash must not equal the plaintext")
	}

	if !Verify("admin123456", hash) {
		t.Error("correct password should verify")
	}
	if Verify("wrong-password", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("refresh-token-a")
	b := HashToken("refresh-token-b")

	if a == b {
		t.Error("different tokens should produce different hashes")
	}
	if a != HashToken("refresh-token-a") {
		t.Error("hashing must be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestValidate(t *testing.T) {
	if Validate("short") {
		t.Error("5 char password should be rejected")
	}
	if !Validate("longenough") {
		t.Error("valid password should be accepted")
	}
}
