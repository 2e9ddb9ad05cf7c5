package credentials

import (
	"encoding/hex"
	"strings"

	"github.com/dmitrijs2005/learnify/internal/cryptox"
)

const argon2Prefix = "argon2id"

// Argon2Scheme stores "argon2id$<salt hex>$<key hex>".
type Argon2Scheme struct{}

func (Argon2Scheme) Seal(password string) (string, error) {
	salt, err := cryptox.NewSalt()
	if err != nil {
		return "", err
	}
	key := cryptox.DeriveKey([]byte(password), salt)
	return strings.Join([]string{argon2Prefix, hex.EncodeToString(salt), hex.EncodeToString(key)}, "$"), nil
}

func (Argon2Scheme) Match(stored, password string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != argon2Prefix {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}
	return cryptox.KeysEqual(cryptox.DeriveKey([]byte(password), salt), want)
}
