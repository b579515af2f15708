package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/99designs/keyring"
)

const keychainService = "vinutoken"

// KeyEnvVar, when set, overrides every stored key. Meant for CI and scripted
// deploys where no keychain is available.
const KeyEnvVar = "VINUTOKEN_KEY"

// ErrKeyNotFound is returned when no key is stored under a reference.
var ErrKeyNotFound = errors.New("key not found")

// KeystoreBackend stores private keys by reference.
type KeystoreBackend interface {
	Store(name, hexKey string) (string, error)
	Retrieve(ref string) (string, error)
	Delete(ref string) error
}

// Keystore wraps OS keychain access.
type Keystore struct {
	ring  keyring.Keyring
	cache *UnlockCache
}

// NewKeystore wraps an opened keyring. cache may be nil.
func NewKeystore(ring keyring.Keyring, cache *UnlockCache) *Keystore {
	return &Keystore{ring: ring, cache: cache}
}

// DefaultKeystore returns a keystore backed by the OS keychain, falling back
// to an encrypted file store under dir.
func DefaultKeystore(dir string, cache *UnlockCache) *Keystore {
	fileDir := filepath.Join(dir, "keys")
	cfg := keyring.Config{
		ServiceName:              keychainService,
		KeychainTrustApplication: true,
		FileDir:                  fileDir,
		FilePasswordFunc:         filePassword,
	}

	// On Linux without a GUI, fall back to file-based storage.
	if runtime.GOOS == "linux" {
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		ring, _ = keyring.Open(keyring.Config{
			ServiceName:      keychainService,
			AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
			FileDir:          fileDir,
			FilePasswordFunc: filePassword,
		})
	}

	return &Keystore{ring: ring, cache: cache}
}

// filePassword reads the file-backend passphrase from the environment before
// prompting on the terminal.
func filePassword(prompt string) (string, error) {
	if p := os.Getenv("VINUTOKEN_KEYRING_PASSWORD"); p != "" {
		return p, nil
	}
	return keyring.TerminalPrompt(prompt)
}

// Store saves a private key for a wallet name and returns a reference key.
func (k *Keystore) Store(name, hexKey string) (string, error) {
	if k.ring == nil {
		return "", fmt.Errorf("keystore not available")
	}
	ref := KeyRef(name)
	err := k.ring.Set(keyring.Item{
		Key:   ref,
		Data:  []byte(normaliseHexKey(hexKey)),
		Label: "vinutoken wallet " + name,
	})
	if err != nil {
		return "", fmt.Errorf("keychain store: %w", err)
	}
	return ref, nil
}

// Retrieve fetches a private key by its reference. The env override wins,
// then the unlock cache, then the keychain.
func (k *Keystore) Retrieve(ref string) (string, error) {
	if v := os.Getenv(KeyEnvVar); v != "" {
		return normaliseHexKey(v), nil
	}
	if k.cache != nil {
		if v, ok := k.cache.Get(ref); ok {
			return v, nil
		}
	}
	if k.ring == nil {
		return "", fmt.Errorf("keystore not available")
	}
	item, err := k.ring.Get(ref)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, ref)
	}
	if err != nil {
		return "", fmt.Errorf("keychain retrieve: %w", err)
	}
	return normaliseHexKey(string(item.Data)), nil
}

// Delete removes a stored key and evicts it from the unlock cache.
func (k *Keystore) Delete(ref string) error {
	if k.cache != nil {
		k.cache.Remove(ref)
	}
	if k.ring == nil {
		return nil
	}
	err := k.ring.Remove(ref)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// InMemoryKeystore stores keys in memory (for tests).
type InMemoryKeystore struct {
	data map[string]string
}

// NewInMemoryKeystore creates an in-memory keystore.
func NewInMemoryKeystore() *InMemoryKeystore {
	return &InMemoryKeystore{data: make(map[string]string)}
}

func (k *InMemoryKeystore) Store(name, hexKey string) (string, error) {
	ref := KeyRef(name)
	k.data[ref] = normaliseHexKey(hexKey)
	return ref, nil
}

func (k *InMemoryKeystore) Retrieve(ref string) (string, error) {
	v, ok := k.data[ref]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, ref)
	}
	return v, nil
}

func (k *InMemoryKeystore) Delete(ref string) error {
	delete(k.data, ref)
	return nil
}

// KeyRef returns the keychain reference used for a wallet name.
func KeyRef(name string) string {
	return keychainService + "." + name
}

// normaliseHexKey trims whitespace and an optional 0x/0X prefix.
func normaliseHexKey(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return s
}
