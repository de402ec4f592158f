package privacy

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// sealedPrefix marks a stored payload as ciphertext.
const sealedPrefix = "xc1:"

var (
	ErrBadKey    = errors.New("invalid privacy key")
	ErrNotSealed = errors.New("payload is not sealed")
	ErrOpen      = errors.New("opening sealed payload")
)

// Sealer encrypts payloads with XChaCha20-Poly1305.
type Sealer struct {
	key []byte
}

func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrBadKey, chacha20poly1305.KeySize, len(key))
	}
	return &Sealer{key: append([]byte(nil), key...)}, nil
}

// Seal returns the prefixed, base64url encoded nonce and ciphertext.
func (s *Sealer) Seal(plain []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, plain, nil)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Payloads sealed under a rotated key fail with ErrOpen.
func (s *Sealer) Open(payload string) ([]byte, error) {
	if !IsSealed(payload) {
		return nil, ErrNotSealed
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(payload, sealedPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	if len(raw) < aead.NonceSize() {
		return nil, fmt.Errorf("%w: payload too short", ErrOpen)
	}
	plain, err := aead.Open(nil, raw[:aead.NonceSize()], raw[aead.NonceSize():], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	return plain, nil
}

// IsSealed reports whether payload was produced by Seal.
func IsSealed(payload string) bool {
	return strings.HasPrefix(payload, sealedPrefix)
}

// keyFile is the on-disk key record. With a passphrase only the salt is
// stored and the key is derived on load.
type keyFile struct {
	Key       string    `json:"key,omitempty"`
	Salt      string    `json:"salt,omitempty"`
	RotatedAt time.Time `json:"rotated_at"`
}

// Argon2id parameters.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	saltSize     = 16
)

// DeriveKey stretches a passphrase into a sealing key.
func DeriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}

// LoadKey resolves the sealing key. An explicit base64 key wins. Otherwise
// the key file is read and regenerated when missing, unreadable, or older
// than the rotation period.
func LoadKey(cfg Config, now time.Time) ([]byte, error) {
	if cfg.Key != "" {
		key, err := base64.URLEncoding.DecodeString(cfg.Key)
		if err != nil {
			key, err = base64.StdEncoding.DecodeString(cfg.Key)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadKey, err)
		}
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrBadKey, chacha20poly1305.KeySize, len(key))
		}
		return key, nil
	}

	if kf, ok := readKeyFile(cfg.KeyPath); ok && !rotationDue(kf, cfg.KeyRotationDays, now) {
		if key, err := keyFromFile(kf, cfg.Passphrase); err == nil {
			return key, nil
		}
	}
	return rotateKey(cfg, now)
}

func readKeyFile(path string) (keyFile, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return keyFile{}, false
	}
	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return keyFile{}, false
	}
	return kf, true
}

func rotationDue(kf keyFile, days int, now time.Time) bool {
	if days <= 0 {
		return false
	}
	return now.Sub(kf.RotatedAt) >= time.Duration(days)*24*time.Hour
}

func keyFromFile(kf keyFile, passphrase string) ([]byte, error) {
	if passphrase != "" {
		salt, err := base64.URLEncoding.DecodeString(kf.Salt)
		if err != nil || len(salt) == 0 {
			return nil, ErrBadKey
		}
		return DeriveKey(passphrase, salt), nil
	}
	key, err := base64.URLEncoding.DecodeString(kf.Key)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, ErrBadKey
	}
	return key, nil
}

func rotateKey(cfg Config, now time.Time) ([]byte, error) {
	kf := keyFile{RotatedAt: now.UTC()}
	var key []byte
	if cfg.Passphrase != "" {
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("generating salt: %w", err)
		}
		kf.Salt = base64.URLEncoding.EncodeToString(salt)
		key = DeriveKey(cfg.Passphrase, salt)
	} else {
		key = make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generating key: %w", err)
		}
		kf.Key = base64.URLEncoding.EncodeToString(key)
	}

	data, err := json.Marshal(kf)
	if err != nil {
		return nil, fmt.Errorf("encoding key file: %w", err)
	}
	if dir := filepath.Dir(cfg.KeyPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating key directory: %w", err)
		}
	}
	if err := os.WriteFile(cfg.KeyPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing key file: %w", err)
	}
	return key, nil
}
