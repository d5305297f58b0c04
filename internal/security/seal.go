package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

// ErrNoSealKey is returned when sealed content is encountered but no
// seal key was configured.
var ErrNoSealKey = errors.New("seal key not configured")

// ErrSealCorrupt is returned when sealed content fails authentication,
// either because it was tampered with or the key does not match.
var ErrSealCorrupt = errors.New("sealed content corrupt or key mismatch")

const nonceSize = 24

// Sealer encrypts and decrypts content with a key derived from an
// explicit configured secret. The secret comes from configuration, so
// two processes sharing it can open each other's sealed records.
type Sealer struct {
	key [32]byte
}

// NewSealer derives the sealing key from secret via HKDF-SHA256.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, ErrNoSealKey
	}
	s := &Sealer{}
	kdf := hkdf.New(sha256.New, []byte(secret), []byte("recordvault.seal.v1"), nil)
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, fmt.Errorf("derive seal key: %w", err)
	}
	return s, nil
}

// Seal encrypts content with a fresh random nonce, prepended to the
// ciphertext, and returns the base64 token to persist.
func (s *Sealer) Seal(content string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(content), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(box), nil
}

// Open decrypts a token produced by Seal.
func (s *Sealer) Open(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("decode sealed content: %w", err)
	}
	if len(raw) < nonceSize {
		return "", ErrSealCorrupt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrSealCorrupt
	}
	return string(plain), nil
}
