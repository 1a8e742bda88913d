package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/ports"
)

// ErrNotSealed is returned when an encrypted store reads a plain state.
var ErrNotSealed = errors.New("state is missing encrypted data envelope")

// ErrUnsealFailed is returned when no configured key opens a sealed state,
// including a record copied under another document key.
var ErrUnsealFailed = errors.New("decryption failed with all available keys")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next ports.StateStore
	// aeads holds the active cipher first, then the fallbacks in order.
	aeads []cipher.AEAD
}

// NewEncryptionMiddleware creates a middleware that seals whole states with
// AES-256-GCM. The document key is authenticated with every record, so a
// sealed state only opens under the key it was saved with.
// It panics on a malformed active key; fallback keys of the wrong size are skipped.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	active, err := newAEAD(config.ActiveKey)
	if err != nil {
		panic(fmt.Sprintf("invalid active key: %v", err))
	}
	aeads := []cipher.AEAD{active}
	for _, k := range config.FallbackKeys {
		if len(k) != 32 {
			continue
		}
		if a, err := newAEAD(k); err == nil {
			aeads = append(aeads, a)
		}
	}

	return func(next ports.StateStore) ports.StateStore {
		return &encryptionMiddleware{next: next, aeads: aeads}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, key string, state *domain.State) error {
	plainText, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	sealed, err := seal(m.aeads[0], plainText, []byte(key))
	if err != nil {
		return fmt.Errorf("failed to encrypt state: %w", err)
	}

	// The envelope keeps the schema version and workflow stage readable
	// for migrations and monitoring. Page content and history stay sealed.
	envelope := &domain.State{
		Version:  state.Version,
		Stage:    state.Stage,
		ViewMode: state.ViewMode,
		Document: domain.Document{Elements: []domain.Element{}},
		History:  domain.History{Past: []domain.Document{}, Future: []domain.Document{}},
		Sealed:   base64.StdEncoding.EncodeToString(sealed),
	}

	return m.next.Save(ctx, key, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, key string) (*domain.State, error) {
	envelope, err := m.next.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	// Fail secure: once encryption is configured, plain states are rejected.
	if envelope.Sealed == "" {
		return nil, fmt.Errorf("%w: %q", ErrNotSealed, key)
	}

	sealed, err := base64.StdEncoding.DecodeString(envelope.Sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := m.open(sealed, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt state %q: %w", key, err)
	}

	var st domain.State
	if err := json.Unmarshal(plainText, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted state: %w", err)
	}
	st.Sealed = ""

	return &st, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// open tries the active cipher, then each fallback.
func (m *encryptionMiddleware) open(sealed, docKey []byte) ([]byte, error) {
	for _, a := range m.aeads {
		n := a.NonceSize()
		if len(sealed) < n {
			return nil, errors.New("ciphertext too short")
		}
		if plain, err := a.Open(nil, sealed[:n], sealed[n:], docKey); err == nil {
			return plain, nil
		}
	}
	return nil, ErrUnsealFailed
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// seal returns nonce || ciphertext with docKey as additional data.
func seal(a cipher.AEAD, plaintext, docKey []byte) ([]byte, error) {
	nonce := make([]byte, a.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return a.Seal(nonce, nonce, plaintext, docKey), nil
}
