// Package token holds the token-creation parameters, their validation and
// the exact unit conversions used to build the createToken call.
package token

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Field names a single Params field. The values match the TOML keys.
type Field string

const (
	FieldName        Field = "name"
	FieldSymbol      Field = "symbol"
	FieldTotalSupply Field = "totalSupply"
	FieldDecimals    Field = "decimals"
	FieldBuyTax      Field = "buyTaxRate"
	FieldSellTax     Field = "sellTaxRate"
	FieldBurnRate    Field = "burnRate"
	FieldDevWallet   Field = "devWallet"
	FieldMaxTx       Field = "maxTx"
	FieldRenounce    Field = "renounceOwnership"
)

// Fields lists every field in display order.
var Fields = []Field{
	FieldName, FieldSymbol, FieldTotalSupply, FieldDecimals,
	FieldBuyTax, FieldSellTax, FieldBurnRate, FieldDevWallet,
	FieldMaxTx, FieldRenounce,
}

// AllowedDecimals are the decimals the factory accepts.
var AllowedDecimals = []uint8{6, 9, 12, 18}

// Params are the user-supplied token-creation parameters.
type Params struct {
	Name              string  `toml:"name"`
	Symbol            string  `toml:"symbol"`
	TotalSupply       string  `toml:"totalSupply"`
	Decimals          uint8   `toml:"decimals"`
	BuyTaxRate        float64 `toml:"buyTaxRate"`  // percent
	SellTaxRate       float64 `toml:"sellTaxRate"` // percent
	BurnRate          float64 `toml:"burnRate"`    // percent
	DevWallet         string  `toml:"devWallet"`
	MaxTx             string  `toml:"maxTx"` // percent of supply; empty means no limit
	RenounceOwnership bool    `toml:"renounceOwnership"`
}

// DefaultParams returns the values a fresh form starts with.
func DefaultParams() Params {
	return Params{Decimals: 18}
}

// LoadFile reads Params from a TOML file. Keys missing from the file keep
// their defaults; unknown keys are rejected.
func LoadFile(path string) (Params, error) {
	p := DefaultParams()
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("opening params file: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, len(strict.Errors))
			for i := range strict.Errors {
				keys[i] = strings.Join(strict.Errors[i].Key(), ".")
			}
			return p, fmt.Errorf("parsing %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		return p, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}

// PreviewRow is one label/value pair of the preview block.
type PreviewRow struct {
	Label string
	Value string
}

// Preview renders p the way the confirmation block shows it, substituting
// placeholders for empty fields.
func (p Params) Preview() []PreviewRow {
	name := orDefault(p.Name, "MyToken")
	symbol := orDefault(p.Symbol, "MTK")

	supply := "1,000,000,000"
	if strings.TrimSpace(p.TotalSupply) != "" {
		supply = groupThousands(p.TotalSupply)
	}

	maxTx := "None"
	if strings.TrimSpace(p.MaxTx) != "" {
		maxTx = strings.TrimSpace(p.MaxTx) + "%"
	}

	renounce := "No"
	if p.RenounceOwnership {
		renounce = "Yes"
	}

	return []PreviewRow{
		{"Token", fmt.Sprintf("%s (%s)", name, symbol)},
		{"Supply", supply},
		{"Decimals", fmt.Sprint(p.Decimals)},
		{"Buy Tax", formatPercent(p.BuyTaxRate)},
		{"Sell Tax", formatPercent(p.SellTaxRate)},
		{"Burn Rate", formatPercent(p.BurnRate)},
		{"Dev Wallet", orDefault(p.DevWallet, "Not set")},
		{"Max Tx", maxTx},
		{"Renounce Ownership", renounce},
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// formatPercent renders a rate without float noise. decimal cannot hold
// NaN or Inf, so those print as strconv spells them.
func formatPercent(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64) + "%"
	}
	return decimal.NewFromFloat(f).String() + "%"
}

// groupThousands inserts commas into the integer part of a numeric string.
// Non-numeric input is returned unchanged.
func groupThousands(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	str := d.String()
	neg := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")
	whole, frac, hasFrac := strings.Cut(str, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
