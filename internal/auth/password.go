package auth

import "github.com/alexedwards/argon2id"

// HashPassword hashes a plaintext password with argon2id. The salt is
// random, so hashing the same password twice yields different strings
// that both verify.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// VerifyPassword reports whether password matches hash. A malformed
// hash is treated as a mismatch rather than an error.
func VerifyPassword(password, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false
	}
	return match
}
