package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultWalletNetwork = "ethereum"
	defaultAlgorithm     = "fastest"

	configFile = "config.toml"
)

var (
	ErrRPCExists   = errors.New("RPC already configured")
	ErrRPCNotFound = errors.New("RPC not configured")
)

// Load reads config.toml from dir, creating dir when needed. A missing file
// yields defaults. An empty dir means ~/.vinutoken.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".vinutoken")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)
	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}
	return cfg, nil
}

// Save writes config.toml, readable by the owner only.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(c.Path(), data, 0o600)
}

// Path returns the location of config.toml.
func (c *Config) Path() string { return filepath.Join(c.configDir, configFile) }

// AddRPC adds a custom RPC URL for a chain.
func (c *Config) AddRPC(chain, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[chain], url) {
		return fmt.Errorf("%w: %s for %s", ErrRPCExists, url, chain)
	}
	c.CustomRPCs[chain] = append(c.CustomRPCs[chain], url)
	return nil
}

// RemoveRPC removes a custom RPC URL for a chain.
func (c *Config) RemoveRPC(chain, url string) error {
	rpcs := c.CustomRPCs[chain]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("%w: %s for %s", ErrRPCNotFound, url, chain)
	}
	c.CustomRPCs[chain] = slices.Delete(rpcs, idx, idx+1)
	return nil
}

// GetRPCs returns custom RPCs for a chain.
func (c *Config) GetRPCs(chain string) []string {
	return c.CustomRPCs[chain]
}

// PutChain records a chain added to the wallet, replacing any earlier entry
// with the same chain ID.
func (c *Config) PutChain(ac AddedChain) {
	idx := slices.IndexFunc(c.AddedChains, func(e AddedChain) bool { return e.ChainID == ac.ChainID })
	if idx >= 0 {
		c.AddedChains[idx] = ac
		return
	}
	c.AddedChains = append(c.AddedChains, ac)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// FactoryAddress returns the token factory address that receives createToken.
func (c *Config) FactoryAddress() string {
	if c.Factory != "" {
		return c.Factory
	}
	return FactoryAddress
}

// FeeSourceAddress returns the contract creationFee() is read from.
// It follows the factory unless overridden.
func (c *Config) FeeSourceAddress() string {
	if c.FeeSource != "" {
		return c.FeeSource
	}
	return c.FactoryAddress()
}

// WrappedNativeAddress returns the WVC contract used for balance lookups.
func (c *Config) WrappedNativeAddress() string {
	if c.WrappedNative != "" {
		return c.WrappedNative
	}
	return WrappedNativeAddress
}

// CreateTokenGasLimit returns the fixed gas budget attached to createToken.
func (c *Config) CreateTokenGasLimit() uint64 {
	if c.GasLimit > 0 {
		return c.GasLimit
	}
	return GasLimitCreateToken
}

// FallbackFeeVC returns the creation fee used when the on-chain read fails.
func (c *Config) FallbackFeeVC() string {
	if c.FallbackFee != "" {
		return c.FallbackFee
	}
	return FallbackCreationFee
}

func defaults(dir string) *Config {
	return &Config{
		WalletNetwork: defaultWalletNetwork,
		RPCAlgorithm:  defaultAlgorithm,
		CustomRPCs:    make(map[string][]string),
		configDir:     dir,
	}
}
