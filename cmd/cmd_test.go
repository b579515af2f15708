package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/Mohsinsiddi/vinutoken/internal/config"
	"github.com/Mohsinsiddi/vinutoken/internal/deploy"
	"github.com/Mohsinsiddi/vinutoken/internal/session"
	"github.com/Mohsinsiddi/vinutoken/internal/token"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig points the package-level cfg at a fresh temp dir for one test.
func withConfig(t *testing.T) {
	t.Helper()
	prev := cfg
	c, err := config.Load(t.TempDir())
	require.NoError(t, err)
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func flagCommand(t *testing.T, args ...string) (*cobra.Command, *paramFlags) {
	t.Helper()
	var f paramFlags
	c := &cobra.Command{Use: "test"}
	f.register(c)
	require.NoError(t, c.ParseFlags(args))
	return c, &f
}

// ---------------------------------------------------------------------------
// paramFlags
// ---------------------------------------------------------------------------

func TestParamFlags_Defaults(t *testing.T) {
	c, f := flagCommand(t)
	p, err := f.params(c)
	require.NoError(t, err)
	assert.Equal(t, token.DefaultParams(), p)
}

func TestParamFlags_OnlyChangedFlagsApply(t *testing.T) {
	c, f := flagCommand(t, "--name", "Vinu Cat", "--supply", "1000", "--renounce")
	p, err := f.params(c)
	require.NoError(t, err)
	assert.Equal(t, "Vinu Cat", p.Name)
	assert.Equal(t, "1000", p.TotalSupply)
	assert.True(t, p.RenounceOwnership)
	assert.Equal(t, uint8(18), p.Decimals)
	assert.Zero(t, p.BuyTaxRate)
}

func TestParamFlags_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "From File"
symbol = "FILE"
totalSupply = "5000"
decimals = 9
buyTaxRate = 1.5
`), 0o600))

	c, f := flagCommand(t, "--params", path, "--buy-tax", "4", "--symbol", "flag")
	p, err := f.params(c)
	require.NoError(t, err)
	assert.Equal(t, "From File", p.Name)
	assert.Equal(t, "flag", p.Symbol)
	assert.Equal(t, "5000", p.TotalSupply)
	assert.Equal(t, uint8(9), p.Decimals, "unset --decimals keeps the file value")
	assert.Equal(t, 4.0, p.BuyTaxRate)
}

func TestParamFlags_MissingFile(t *testing.T) {
	c, f := flagCommand(t, "--params", filepath.Join(t.TempDir(), "nope.toml"))
	_, err := f.params(c)
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// validation output
// ---------------------------------------------------------------------------

func TestPrintValidation_Clean(t *testing.T) {
	assert.NoError(t, printValidation(nil))
}

func TestPrintValidation_ReturnsCombinedError(t *testing.T) {
	err := printValidation(token.Validate(token.DefaultParams()))
	require.Error(t, err)
	assert.ErrorIs(t, err, token.ErrValidationFailed)
	assert.Contains(t, err.Error(), "Token name is required.")
}

func TestPreviewBlock_Placeholders(t *testing.T) {
	out := previewBlock(token.DefaultParams())
	assert.Contains(t, out, "Token Preview")
	assert.Contains(t, out, "MyToken (MTK)")
	assert.Contains(t, out, "Not set")
}

func TestPreviewBlock_NonFiniteTaxFlag(t *testing.T) {
	c, f := flagCommand(t, "--name", "Vinu Cat", "--buy-tax", "NaN")
	p, err := f.params(c)
	require.NoError(t, err)

	var out string
	require.NotPanics(t, func() { out = previewBlock(p) })
	assert.Contains(t, out, "NaN%")
	assert.Error(t, printValidation(token.Validate(p)))
}

// ---------------------------------------------------------------------------
// network wiring
// ---------------------------------------------------------------------------

func TestRPCURLs_CustomFirstWithoutDuplicates(t *testing.T) {
	withConfig(t)
	c := chain.VinuChain()
	require.NoError(t, cfg.AddRPC(c.Name, "https://my.vinu.rpc"))
	require.NoError(t, cfg.AddRPC(c.Name, c.RPCs[0]))

	urls := rpcURLs(c)
	assert.Equal(t, []string{"https://my.vinu.rpc", c.RPCs[0], c.RPCs[1]}, urls)
	assert.Len(t, cfg.GetRPCs(c.Name), 2, "config slice is not mutated")
}

func TestVinuChain_UsesConfiguredRPCs(t *testing.T) {
	withConfig(t)
	require.NoError(t, cfg.AddRPC("vinuchain", "https://my.vinu.rpc"))
	assert.Equal(t, "https://my.vinu.rpc", vinuChain().RPCs[0])
}

func TestWalletRegistry_AddedChains(t *testing.T) {
	withConfig(t)
	_, err := walletRegistry().GetByChainID(chain.VinuChainID)
	assert.ErrorIs(t, err, chain.ErrChainNotFound)

	v := chain.VinuChain()
	rememberChain(v, true)

	got, err := walletRegistry().GetByChainID(chain.VinuChainID)
	require.NoError(t, err)
	assert.Equal(t, "VinuChain", got.DisplayName)
	assert.Equal(t, uint8(18), got.Decimals)
	assert.Equal(t, "vinuchain", cfg.WalletNetwork)

	reloaded, err := config.Load(cfg.Dir())
	require.NoError(t, err)
	assert.Len(t, reloaded.AddedChains, 1, "added chain is persisted")
}

// ---------------------------------------------------------------------------
// fee oracle
// ---------------------------------------------------------------------------

func TestNewFeeOracle_ConfiguredFallback(t *testing.T) {
	withConfig(t)
	cfg.FallbackFee = "250"
	q := newFeeOracle().Current()
	assert.True(t, q.Fallback)
	assert.Equal(t, "250 VC", q.Display)
}

func TestNewFeeOracle_InvalidFallbackUsesDefault(t *testing.T) {
	withConfig(t)
	cfg.FallbackFee = "lots"
	assert.Equal(t, "10000 VC", newFeeOracle().Current().Display)
}

// ---------------------------------------------------------------------------
// approvals
// ---------------------------------------------------------------------------

func TestApprove_AssumeYes(t *testing.T) {
	prev := assumeYes
	assumeYes = true
	t.Cleanup(func() { assumeYes = prev })
	assert.True(t, approve("Connect?"))
}

func TestErrorMessage_UserFacingSentences(t *testing.T) {
	assert.Equal(t, "Please connect wallet first.", errorMessage(deploy.ErrNoSigner))
	assert.Equal(t, "User rejected network switch to VinuChain.",
		errorMessage(fmt.Errorf("connecting: %w", session.ErrSwitchRejected)))
	assert.Equal(t, "Wallet connection was rejected.", errorMessage(session.ErrUserRejected))
	assert.Equal(t, "rpc down", errorMessage(errors.New("rpc down")))
}
