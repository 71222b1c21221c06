package security

import "testing"

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in plaintext")
	}

	if !VerifyPassword("s3cret", hash) {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash verified")
	}
	if VerifyPassword("anything", "") {
		t.Fatal("empty hash verified")
	}
}
