package service

import "testing"

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !VerifyPassword("correct horse battery staple", hashed) {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword("wrong password", hashed) {
		t.Fatal("expected mismatching password to fail")
	}
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Fatal("expected malformed hash to fail, not error out")
	}
}
