package auth

import "testing"

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct hashes for the same password")
	}
	if !VerifyPassword("secret1", first) {
		t.Fatalf("first hash did not verify")
	}
	if !VerifyPassword("secret1", second) {
		t.Fatalf("second hash did not verify")
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if VerifyPassword("secret2", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=1,p=2$broken",
	} {
		if VerifyPassword("secret1", hash) {
			t.Fatalf("malformed hash %q verified", hash)
		}
	}
}
