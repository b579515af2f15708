package chain_test

import (
	"testing"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltins(t *testing.T) {
	registry := chain.NewRegistry()

	tests := []struct {
		name    string
		chainID int64
	}{
		{"ethereum", 1},
		{"bsc", 56},
		{"polygon", 137},
		{"base", 8453},
		{"arbitrum", 42161},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := registry.GetByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.chainID, c.ChainID)
			assert.NotEmpty(t, c.RPCs)
		})
	}
}

func TestRegistryDoesNotShipVinuChain(t *testing.T) {
	registry := chain.NewRegistry()
	_, err := registry.GetByChainID(chain.VinuChainID)
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestRegistryGetUnknownChain(t *testing.T) {
	registry := chain.NewRegistry()
	_, err := registry.GetByName("unknownchain")
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestRegistryAddAndReplace(t *testing.T) {
	registry := chain.NewRegistry()
	before := len(registry.All())

	vc := chain.VinuChain()
	registry.Add(vc)
	assert.Len(t, registry.All(), before+1)

	got, err := registry.GetByChainID(207)
	require.NoError(t, err)
	assert.Equal(t, "vinuchain", got.Name)

	vc.RPCs = []string{"https://custom.vinu"}
	registry.Add(vc)
	assert.Len(t, registry.All(), before+1, "same chain id replaces")

	got, err = registry.GetByName("VinuChain")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://custom.vinu"}, got.RPCs)
}

func TestVinuChainDefinition(t *testing.T) {
	vc := chain.VinuChain()
	assert.Equal(t, int64(207), vc.ChainID)
	assert.Equal(t, "0xCF", vc.HexID())
	assert.Equal(t, "VC", vc.NativeCurrency)
	assert.Equal(t, uint8(18), vc.Decimals)
	assert.Equal(t, []string{"https://rpc.vinuchain.org", "https://vinuchain-rpc.com"}, vc.RPCs)
	assert.Equal(t, "https://vinuexplorer.org/tx/0xabc", vc.TxURL("0xabc"))
	assert.Equal(t, "https://vinuexplorer.org/address/0xdef", vc.AddressURL("0xdef"))
}

func TestAddChainParamsRoundTrip(t *testing.T) {
	p := chain.VinuChain().AddChainParams()
	assert.Equal(t, "0xCF", p.ChainID)
	assert.Equal(t, "VinuChain", p.ChainName)
	assert.Equal(t, "VC", p.NativeCurrency.Symbol)
	assert.Equal(t, uint8(18), p.NativeCurrency.Decimals)
	assert.Equal(t, []string{"https://vinuexplorer.org"}, p.BlockExplorerURLs)

	c, err := chain.ChainFromParams(p)
	require.NoError(t, err)
	assert.Equal(t, chain.VinuChain(), c)
}

func TestChainFromParamsRejectsBadInput(t *testing.T) {
	_, err := chain.ChainFromParams(chain.AddChainParams{ChainID: "nope", RPCURLs: []string{"x"}})
	assert.Error(t, err)

	_, err = chain.ChainFromParams(chain.AddChainParams{ChainID: "0xCF"})
	assert.Error(t, err)
}
