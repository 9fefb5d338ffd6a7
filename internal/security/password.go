package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

var defaultParams = Argon2Params{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 2,
	KeyLen:  32,
	SaltLen: 16,
}

// PasswordHasher derives and checks password credentials as a separate salt
// and digest, both base64 encoded.
type PasswordHasher struct {
	params Argon2Params
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{params: defaultParams}
}

func NewPasswordHasherWithParams(params Argon2Params) *PasswordHasher {
	return &PasswordHasher{params: params}
}

func (h *PasswordHasher) Hash(password string) (salt string, digest string, err error) {
	rawSalt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}

	sum := h.derive(password, rawSalt)
	return base64.StdEncoding.EncodeToString(rawSalt), base64.StdEncoding.EncodeToString(sum), nil
}

// Verify compares in constant time. Malformed stored values never verify.
func (h *PasswordHasher) Verify(password string, salt string, digest string) bool {
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(digest)
	if err != nil || len(expected) != int(h.params.KeyLen) {
		return false
	}

	computed := h.derive(password, rawSalt)
	return subtle.ConstantTimeCompare(expected, computed) == 1
}

func (h *PasswordHasher) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
}
