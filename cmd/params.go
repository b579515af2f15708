package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/vinutoken/internal/token"
	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/spf13/cobra"
)

// paramFlags are the token parameter flags shared by validate, preview and
// create.
type paramFlags struct {
	file     string
	name     string
	symbol   string
	supply   string
	decimals uint8
	buyTax   float64
	sellTax  float64
	burnRate float64
	dev      string
	maxTx    string
	renounce bool
}

func (f *paramFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.file, "params", "", "TOML file with token parameters (flags override it)")
	fs.StringVar(&f.name, "name", "", "token name (max 32 chars)")
	fs.StringVar(&f.symbol, "symbol", "", "token symbol (max 6 chars)")
	fs.StringVar(&f.supply, "supply", "", "total supply in whole tokens")
	fs.Uint8Var(&f.decimals, "decimals", 18, "decimals: 6, 9, 12 or 18")
	fs.Float64Var(&f.buyTax, "buy-tax", 0, "buy tax percent, 0-10 in steps of 0.1")
	fs.Float64Var(&f.sellTax, "sell-tax", 0, "sell tax percent, 0-10 in steps of 0.1")
	fs.Float64Var(&f.burnRate, "burn-rate", 0, "burn rate percent, 0-5 in steps of 0.1")
	fs.StringVar(&f.dev, "dev-wallet", "", "address receiving taxes (required when a tax is set)")
	fs.StringVar(&f.maxTx, "max-tx", "", "max transaction size, whole percent of supply (empty = no limit)")
	fs.BoolVar(&f.renounce, "renounce", false, "renounce ownership after creation")
}

// params builds Params from the --params file (if any) with explicitly set
// flags applied on top.
func (f *paramFlags) params(cmd *cobra.Command) (token.Params, error) {
	p := token.DefaultParams()
	if f.file != "" {
		var err error
		if p, err = token.LoadFile(f.file); err != nil {
			return p, err
		}
		logger.Debug("params loaded", "file", f.file)
	}

	set := cmd.Flags().Changed
	if set("name") {
		p.Name = f.name
	}
	if set("symbol") {
		p.Symbol = f.symbol
	}
	if set("supply") {
		p.TotalSupply = f.supply
	}
	if set("decimals") {
		p.Decimals = f.decimals
	}
	if set("buy-tax") {
		p.BuyTaxRate = f.buyTax
	}
	if set("sell-tax") {
		p.SellTaxRate = f.sellTax
	}
	if set("burn-rate") {
		p.BurnRate = f.burnRate
	}
	if set("dev-wallet") {
		p.DevWallet = f.dev
	}
	if set("max-tx") {
		p.MaxTx = f.maxTx
	}
	if set("renounce") {
		p.RenounceOwnership = f.renounce
	}
	return p, nil
}

// promptMissing asks for required values that are still empty. Starting
// from nothing it also offers the decimals choice.
func promptMissing(p token.Params) (token.Params, error) {
	ask := func(f token.Field, label, current string) error {
		if current != "" {
			return nil
		}
		v, err := ui.PromptInput(label, "", ui.FieldValidator(p, f))
		if err != nil {
			return err
		}
		p, err = ui.SetField(p, f, v)
		return err
	}

	fresh := p.Name == "" && p.Symbol == "" && p.TotalSupply == ""

	if err := ask(token.FieldName, "Token name", p.Name); err != nil {
		return p, err
	}
	if err := ask(token.FieldSymbol, "Symbol", p.Symbol); err != nil {
		return p, err
	}
	if err := ask(token.FieldTotalSupply, "Total supply", p.TotalSupply); err != nil {
		return p, err
	}
	if fresh {
		d, err := ui.SelectDecimals(p.Decimals)
		if err != nil {
			return p, err
		}
		p.Decimals = d
	}
	if p.BuyTaxRate > 0 || p.SellTaxRate > 0 {
		if err := ask(token.FieldDevWallet, "Dev wallet (receives taxes)", p.DevWallet); err != nil {
			return p, err
		}
	}
	return p, nil
}

// printValidation prints every field error and returns the combined error.
func printValidation(errs token.Errors) error {
	if len(errs) == 0 {
		return nil
	}
	for _, fe := range errs.Sorted() {
		fmt.Println(ui.Err(fmt.Sprintf("%-18s %s", fe.Field, fe.Message)))
	}
	return errs.Err()
}

func previewBlock(p token.Params) string {
	rows := p.Preview()
	pairs := make([][2]string, len(rows))
	for i, r := range rows {
		pairs[i] = [2]string{r.Label, r.Value}
	}
	return ui.KeyValueBlock("Token Preview", pairs)
}
