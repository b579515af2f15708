package config

// Config holds all vinutoken configuration.
type Config struct {
	DefaultWallet string              `toml:"default_wallet"`
	WalletNetwork string              `toml:"wallet_network"` // network the local wallet is currently on
	RPCAlgorithm  string              `toml:"rpc_algorithm"`  // "fastest" | "round-robin" | "failover"
	CustomRPCs    map[string][]string `toml:"custom_rpcs"`
	AddedChains   []AddedChain        `toml:"added_chains,omitempty"`

	// Contract overrides; empty means the built-in VinuChain address.
	Factory       string `toml:"factory,omitempty"`
	FeeSource     string `toml:"fee_source,omitempty"`
	WrappedNative string `toml:"wrapped_native,omitempty"`

	GasLimit    uint64 `toml:"gas_limit,omitempty"`
	FallbackFee string `toml:"fallback_fee,omitempty"` // human units (VC)

	// internal: config dir path used for Save()
	configDir string
}

// AddedChain is a network registered with the local wallet through an
// add-chain request.
type AddedChain struct {
	ChainID        int64    `toml:"chain_id"`
	Name           string   `toml:"name"`
	DisplayName    string   `toml:"display_name"`
	NativeCurrency string   `toml:"native_currency"`
	RPCs           []string `toml:"rpcs"`
	Explorer       string   `toml:"explorer"`
}
