package token_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/vinutoken/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
name = "Vinu Cat"
symbol = "VCAT"
totalSupply = "1000000"
buyTaxRate = 2.5
sellTaxRate = 3.0
devWallet = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
maxTx = "2"
renounceOwnership = true
`)
	p, err := token.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Vinu Cat", p.Name)
	assert.Equal(t, "VCAT", p.Symbol)
	assert.Equal(t, uint8(18), p.Decimals, "missing keys keep defaults")
	assert.Equal(t, 2.5, p.BuyTaxRate)
	assert.Equal(t, 3.0, p.SellTaxRate)
	assert.True(t, p.RenounceOwnership)
	assert.Empty(t, token.Validate(p))
}

func TestLoadFileUnknownKey(t *testing.T) {
	_, err := token.LoadFile(writeFile(t, "nmae = \"typo\"\nliquidity = 5"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys: nmae, liquidity")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := token.LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestPreviewPlaceholders(t *testing.T) {
	rows := token.DefaultParams().Preview()

	got := map[string]string{}
	for _, r := range rows {
		got[r.Label] = r.Value
	}
	assert.Equal(t, "MyToken (MTK)", got["Token"])
	assert.Equal(t, "1,000,000,000", got["Supply"])
	assert.Equal(t, "18", got["Decimals"])
	assert.Equal(t, "0%", got["Buy Tax"])
	assert.Equal(t, "Not set", got["Dev Wallet"])
	assert.Equal(t, "None", got["Max Tx"])
	assert.Equal(t, "No", got["Renounce Ownership"])
	assert.Equal(t, "Token", rows[0].Label, "rows keep display order")
}

func TestPreviewValues(t *testing.T) {
	p := token.Params{
		Name: "Vinu Cat", Symbol: "VCAT", TotalSupply: "1234567", Decimals: 9,
		BuyTaxRate: 2.5, SellTaxRate: 0.1, BurnRate: 1,
		DevWallet: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", MaxTx: "3", RenounceOwnership: true,
	}
	got := map[string]string{}
	for _, r := range p.Preview() {
		got[r.Label] = r.Value
	}
	assert.Equal(t, "Vinu Cat (VCAT)", got["Token"])
	assert.Equal(t, "1,234,567", got["Supply"])
	assert.Equal(t, "2.5%", got["Buy Tax"])
	assert.Equal(t, "0.1%", got["Sell Tax"])
	assert.Equal(t, "1%", got["Burn Rate"])
	assert.Equal(t, "3%", got["Max Tx"])
	assert.Equal(t, "Yes", got["Renounce Ownership"])
}

func TestPreviewNonNumericSupplyShownAsIs(t *testing.T) {
	p := token.DefaultParams()
	p.TotalSupply = "lots"
	assert.Equal(t, "lots", p.Preview()[1].Value)
}

func TestPreviewNonFiniteRates(t *testing.T) {
	p := token.DefaultParams()
	p.BuyTaxRate = math.Inf(1)
	p.SellTaxRate = math.NaN()
	p.BurnRate = math.Inf(-1)

	var rows []token.PreviewRow
	require.NotPanics(t, func() { rows = p.Preview() })

	got := map[string]string{}
	for _, r := range rows {
		got[r.Label] = r.Value
	}
	assert.Equal(t, "+Inf%", got["Buy Tax"])
	assert.Equal(t, "NaN%", got["Sell Tax"])
	assert.Equal(t, "-Inf%", got["Burn Rate"])

	errs := token.Validate(p)
	assert.True(t, errs.Has(token.FieldBuyTax))
	assert.True(t, errs.Has(token.FieldSellTax))
	assert.True(t, errs.Has(token.FieldBurnRate))
}

func TestLoadFileInfiniteRateStillPreviews(t *testing.T) {
	path := writeFile(t, "name = \"Vinu Cat\"\nbuyTaxRate = inf\n")
	p, err := token.LoadFile(path)
	require.NoError(t, err)

	assert.NotPanics(t, func() { p.Preview() })
	assert.True(t, token.Validate(p).Has(token.FieldBuyTax))
}
