package chain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrChainNotFound is returned when a chain is not in the registry.
var ErrChainNotFound = errors.New("chain not found")

// VinuChainID is the EVM chain ID of VinuChain mainnet (0xCF).
const VinuChainID int64 = 207

// Chain holds all metadata for a single EVM chain.
type Chain struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	ChainID        int64    `json:"chain_id"`
	NativeCurrency string   `json:"native_currency"`
	Decimals       uint8    `json:"decimals"`
	RPCs           []string `json:"rpcs"`
	Explorer       string   `json:"explorer"`
}

// HexID returns the chain ID as a 0x-prefixed hex quantity.
func (c Chain) HexID() string {
	return fmt.Sprintf("0x%X", c.ChainID)
}

// TxURL returns the explorer page for a transaction hash.
func (c Chain) TxURL(hash string) string {
	return strings.TrimRight(c.Explorer, "/") + "/tx/" + hash
}

// AddressURL returns the explorer page for an address.
func (c Chain) AddressURL(addr string) string {
	return strings.TrimRight(c.Explorer, "/") + "/address/" + addr
}

// NativeCurrencyParams describes the native currency in an add-chain request.
type NativeCurrencyParams struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// AddChainParams is the payload a wallet needs to register a new network.
type AddChainParams struct {
	ChainID           string               `json:"chainId"`
	ChainName         string               `json:"chainName"`
	NativeCurrency    NativeCurrencyParams `json:"nativeCurrency"`
	RPCURLs           []string             `json:"rpcUrls"`
	BlockExplorerURLs []string             `json:"blockExplorerUrls"`
}

// AddChainParams builds the add-chain request for c.
func (c Chain) AddChainParams() AddChainParams {
	p := AddChainParams{
		ChainID:   c.HexID(),
		ChainName: c.DisplayName,
		NativeCurrency: NativeCurrencyParams{
			Name:     c.NativeCurrency,
			Symbol:   c.NativeCurrency,
			Decimals: c.Decimals,
		},
		RPCURLs: append([]string(nil), c.RPCs...),
	}
	if c.Explorer != "" {
		p.BlockExplorerURLs = []string{c.Explorer}
	}
	return p
}

// ChainFromParams converts an add-chain request back into a Chain.
func ChainFromParams(p AddChainParams) (Chain, error) {
	id, ok := parseBigHex(p.ChainID)
	if !ok || id.Sign() <= 0 {
		return Chain{}, fmt.Errorf("invalid chain id %q", p.ChainID)
	}
	if len(p.RPCURLs) == 0 {
		return Chain{}, fmt.Errorf("chain %s has no RPC URLs", p.ChainID)
	}
	c := Chain{
		Name:           slug(p.ChainName),
		DisplayName:    p.ChainName,
		ChainID:        id.Int64(),
		NativeCurrency: p.NativeCurrency.Symbol,
		Decimals:       p.NativeCurrency.Decimals,
		RPCs:           append([]string(nil), p.RPCURLs...),
	}
	if len(p.BlockExplorerURLs) > 0 {
		c.Explorer = p.BlockExplorerURLs[0]
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("chain-%d", c.ChainID)
	}
	return c, nil
}

// VinuChain returns the VinuChain mainnet definition.
func VinuChain() Chain {
	return Chain{
		Name:           "vinuchain",
		DisplayName:    "VinuChain",
		ChainID:        VinuChainID,
		NativeCurrency: "VC",
		Decimals:       18,
		RPCs:           []string{"https://rpc.vinuchain.org", "https://vinuchain-rpc.com"},
		Explorer:       "https://vinuexplorer.org",
	}
}

// Registry is the list of networks a wallet knows about.
type Registry struct {
	chains []Chain
	byName map[string]int
	byID   map[int64]int
}

// NewRegistry returns a registry seeded with the networks a fresh wallet
// ships with. VinuChain is not among them; it is added on demand.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]int),
		byID:   make(map[int64]int),
	}
	for _, c := range builtinChains() {
		r.Add(c)
	}
	return r
}

// Add registers c, replacing any chain with the same ID.
func (r *Registry) Add(c Chain) {
	if i, ok := r.byID[c.ChainID]; ok {
		delete(r.byName, r.chains[i].Name)
		r.chains[i] = c
		r.byName[c.Name] = i
		return
	}
	r.chains = append(r.chains, c)
	r.byName[c.Name] = len(r.chains) - 1
	r.byID[c.ChainID] = len(r.chains) - 1
}

// All returns every chain in the registry.
func (r *Registry) All() []Chain {
	return r.chains
}

// GetByName finds a chain by its slug name (e.g. "vinuchain", "ethereum").
func (r *Registry) GetByName(name string) (*Chain, error) {
	i, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrChainNotFound
	}
	return &r.chains[i], nil
}

// GetByChainID finds a chain by its numeric chain ID.
func (r *Registry) GetByChainID(id int64) (*Chain, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, ErrChainNotFound
	}
	return &r.chains[i], nil
}

// --- chain data ---

func builtinChains() []Chain {
	return []Chain{
		{
			Name: "ethereum", DisplayName: "Ethereum", ChainID: 1,
			NativeCurrency: "ETH", Decimals: 18,
			RPCs:     []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com"},
			Explorer: "https://etherscan.io",
		},
		{
			Name: "bsc", DisplayName: "BNB Smart Chain", ChainID: 56,
			NativeCurrency: "BNB", Decimals: 18,
			RPCs:     []string{"https://bsc-dataseed.binance.org", "https://bsc-rpc.publicnode.com"},
			Explorer: "https://bscscan.com",
		},
		{
			Name: "polygon", DisplayName: "Polygon", ChainID: 137,
			NativeCurrency: "POL", Decimals: 18,
			RPCs:     []string{"https://polygon-bor-rpc.publicnode.com", "https://polygon-pokt.nodies.app"},
			Explorer: "https://polygonscan.com",
		},
		{
			Name: "base", DisplayName: "Base", ChainID: 8453,
			NativeCurrency: "ETH", Decimals: 18,
			RPCs:     []string{"https://mainnet.base.org", "https://base.llamarpc.com"},
			Explorer: "https://basescan.org",
		},
		{
			Name: "arbitrum", DisplayName: "Arbitrum One", ChainID: 42161,
			NativeCurrency: "ETH", Decimals: 18,
			RPCs:     []string{"https://arb1.arbitrum.io/rpc", "https://arbitrum-one-rpc.publicnode.com"},
			Explorer: "https://arbiscan.io",
		},
	}
}

func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
