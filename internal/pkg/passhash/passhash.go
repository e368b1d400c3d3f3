// Package passhash derives the password digests stored in the credential
// store. The digest is deterministic under a single application-wide salt so
// that login can compare digests directly; the salt is intentionally not
// per-user to stay compatible with existing stored credentials.
package passhash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// applicationSalt is shared by every account. Compatibility constraint:
	// changing it invalidates all stored digests.
	applicationSalt = "skyward-flightschool-v1"

	iterations = 4096
	keyLen     = 32
)

// Hash derives the lowercase hex digest for plaintext. Pure and
// deterministic; an empty plaintext still hashes. Length policy is enforced
// by callers, not here.
func Hash(plaintext string) string {
	key := pbkdf2.Key([]byte(plaintext), []byte(applicationSalt), iterations, keyLen, sha256.New)
	return hex.EncodeToString(key)
}

// Verify compares plaintext against a stored digest in constant time.
func Verify(plaintext, digestHex string) bool {
	computed := Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digestHex)) == 1
}
