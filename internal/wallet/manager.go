package wallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pelletier/go-toml/v2"
)

// Wallet types.
const (
	TypeWatchOnly = "watch-only"
	TypeSigning   = "signing"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
	ErrInvalidKey     = errors.New("invalid private key")
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidName    = errors.New("invalid wallet name")
)

// Wallet is the public part of a deployer account. Private keys never
// live here; KeyRef points into the keystore for signing wallets.
type Wallet struct {
	Name      string    `toml:"name"`
	Address   string    `toml:"address"`
	Type      string    `toml:"type"`
	KeyRef    string    `toml:"key_ref,omitempty"`
	IsDefault bool      `toml:"default"`
	CreatedAt time.Time `toml:"created_at"`
}

// CanSign reports whether the wallet holds a key.
func (w *Wallet) CanSign() bool { return w.Type == TypeSigning }

// Store persists the wallet list.
type Store interface {
	Load() ([]*Wallet, error)
	Save([]*Wallet) error
}

// Manager keeps the named wallets a token can be deployed from.
type Manager struct {
	store Store
	ks    KeystoreBackend

	wallets map[string]*Wallet
	loaded  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithInMemoryStore keeps wallets in memory only.
func WithInMemoryStore() Option {
	return func(m *Manager) { m.store = &memStore{} }
}

// WithStore sets where the wallet list is persisted.
func WithStore(s Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithKeystore sets where private keys of signing wallets are kept.
func WithKeystore(ks KeystoreBackend) Option {
	return func(m *Manager) { m.ks = ks }
}

// NewManager returns a Manager. Without options wallets and keys are
// kept in memory.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store:   &memStore{},
		ks:      NewInMemoryKeystore(),
		wallets: make(map[string]*Wallet),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Keystore returns the backend holding signing keys.
func (m *Manager) Keystore() KeystoreBackend { return m.ks }

// AddWatchOnly registers an address that can be inspected but not
// deployed from.
func (m *Manager) AddWatchOnly(name, address string) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	return m.insert(&Wallet{
		Name:    name,
		Address: common.HexToAddress(address).Hex(),
		Type:    TypeWatchOnly,
	})
}

// AddWithKey imports a hex private key. The key goes to the keystore and
// only its derived address is written to the wallet list.
func (m *Manager) AddWithKey(name, hexKey string) (*Wallet, error) {
	if err := m.checkFree(name); err != nil {
		return nil, err
	}

	key, err := crypto.HexToECDSA(normaliseHexKey(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	ref, err := m.ks.Store(name, hexKey)
	if err != nil {
		return nil, fmt.Errorf("storing key: %w", err)
	}

	w := &Wallet{
		Name:    name,
		Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		Type:    TypeSigning,
		KeyRef:  ref,
	}
	if err := m.insert(w); err != nil {
		_ = m.ks.Delete(ref)
		return nil, err
	}
	return w, nil
}

// Generate creates a signing wallet from a fresh random key.
func (m *Manager) Generate(name string) (*Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	return m.AddWithKey(name, hex.EncodeToString(crypto.FromECDSA(key)))
}

// Get returns the wallet called name.
func (m *Manager) Get(name string) (*Wallet, error) {
	return m.lookup(name)
}

// Remove forgets a wallet and deletes its key from the keystore.
func (m *Manager) Remove(name string) error {
	w, err := m.lookup(name)
	if err != nil {
		return err
	}
	if w.KeyRef != "" {
		if err := m.ks.Delete(w.KeyRef); err != nil {
			return fmt.Errorf("deleting key: %w", err)
		}
	}
	delete(m.wallets, name)
	return m.persist()
}

// List returns all wallets sorted by name.
func (m *Manager) List() ([]*Wallet, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	return m.sorted(), nil
}

// SetDefault makes name the wallet used when --wallet is not given.
func (m *Manager) SetDefault(name string) error {
	if _, err := m.lookup(name); err != nil {
		return err
	}
	for _, w := range m.wallets {
		w.IsDefault = w.Name == name
	}
	return m.persist()
}

// Default returns the default wallet. A lone wallet is the default even
// when never marked. It returns nil when there is no clear choice.
func (m *Manager) Default() *Wallet {
	if m.load() != nil {
		return nil
	}
	var only *Wallet
	for _, w := range m.wallets {
		if w.IsDefault {
			return w
		}
		only = w
	}
	if len(m.wallets) == 1 {
		return only
	}
	return nil
}

func (m *Manager) lookup(name string) (*Wallet, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	w, ok := m.wallets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, name)
	}
	return w, nil
}

func (m *Manager) checkFree(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	if err := m.load(); err != nil {
		return err
	}
	if _, taken := m.wallets[name]; taken {
		return fmt.Errorf("%w: %s", ErrWalletExists, name)
	}
	return nil
}

func (m *Manager) insert(w *Wallet) error {
	if err := m.checkFree(w.Name); err != nil {
		return err
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	m.wallets[w.Name] = w
	return m.persist()
}

func (m *Manager) load() error {
	if m.loaded {
		return nil
	}
	wallets, err := m.store.Load()
	if err != nil {
		return err
	}
	for _, w := range wallets {
		m.wallets[w.Name] = w
	}
	m.loaded = true
	return nil
}

func (m *Manager) sorted() []*Wallet {
	out := make([]*Wallet, 0, len(m.wallets))
	for _, w := range m.wallets {
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b *Wallet) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (m *Manager) persist() error {
	return m.store.Save(m.sorted())
}

type memStore struct{ wallets []*Wallet }

func (s *memStore) Load() ([]*Wallet, error) { return s.wallets, nil }

func (s *memStore) Save(wallets []*Wallet) error {
	s.wallets = wallets
	return nil
}

// FileStore keeps the wallet list in a TOML file next to config.toml,
// one [[wallet]] table per entry.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type walletFile struct {
	Wallets []*Wallet `toml:"wallet"`
}

// Load reads the wallet list. A missing file is an empty list.
func (s *FileStore) Load() ([]*Wallet, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var f walletFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return f.Wallets, nil
}

// Save rewrites the file, readable by the owner only.
func (s *FileStore) Save(wallets []*Wallet) error {
	data, err := toml.Marshal(walletFile{Wallets: wallets})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
