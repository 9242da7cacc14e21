// Package tokencrypt seals AuthTokens into opaque bearer tokens under the
// process-wide ENKEY and derives keyed digests of credentials.
package tokencrypt

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwe"

	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

// KeySize is the ENKEY length in bytes (AES-128).
const KeySize = 16

// Sealer encrypts tokens as compact JWE with direct key agreement and
// A128GCM content encryption. Each seal draws a fresh IV.
type Sealer struct {
	key []byte
}

var _ ports.TokenSealer = (*Sealer)(nil)

// ParseKey decodes a base64 ENKEY and checks its length.
func ParseKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, domain.ErrMissingKey
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", domain.ErrMissingKey, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", domain.ErrMissingKey, KeySize, len(key))
	}
	return key, nil
}

func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", domain.ErrMissingKey, KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Sealer{key: k}, nil
}

// Seal serialises the token and encrypts it.
func (s *Sealer) Seal(token *domain.AuthToken) (string, error) {
	payload, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("seal: marshal token: %w", err)
	}
	enc, err := jwe.Encrypt(payload,
		jwe.WithKey(jwa.DIRECT, s.key),
		jwe.WithContentEncryption(jwa.A128GCM),
	)
	if err != nil {
		return "", fmt.Errorf("seal: encrypt: %w", err)
	}
	return string(enc), nil
}

// Open decrypts a sealed token. Any tampering, truncation or foreign key
// yields ErrTokenDecrypt; a payload that decrypts but is not a token yields
// ErrInvalidCredentials.
func (s *Sealer) Open(sealed string) (*domain.AuthToken, error) {
	sealed = strings.TrimSpace(sealed)
	if sealed == "" {
		return nil, domain.ErrTokenDecrypt
	}
	payload, err := jwe.Decrypt([]byte(sealed), jwe.WithKey(jwa.DIRECT, s.key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenDecrypt, err)
	}

	var token domain.AuthToken
	if err := json.Unmarshal(payload, &token); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	return &token, nil
}

// GenerateKey returns a fresh base64-encoded ENKEY.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
