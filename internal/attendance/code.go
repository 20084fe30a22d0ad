package attendance

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// codeAlphabet omits lookalike characters (0/O, 1/I) so staff can read the
// code back over the phone without ambiguity.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// generateCode returns a cryptographically random uppercase code. The
// plaintext is handed to the caller exactly once; only its hash is stored.
func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate security code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// hashCode returns the hex sha256 digest of a security code.
func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// verifyCode compares a supplied code against a stored hash in constant time.
func verifyCode(storedHash, supplied string) bool {
	suppliedHash := hashCode(supplied)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(suppliedHash)) == 1
}
