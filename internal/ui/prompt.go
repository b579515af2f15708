package ui

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Mohsinsiddi/vinutoken/internal/token"
	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

var selectTemplates = &promptui.SelectTemplates{
	Active:   "▸ {{ . | cyan }}",
	Inactive: "  {{ . }}",
	Selected: "✔ {{ . | green }}",
}

// PromptInput asks for a line of text. validate may be nil.
func PromptInput(label, def string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: def != "",
		Validate:  validate,
	}
	v, err := p.Run()
	if err != nil {
		return "", cancelled(err, label)
	}
	return strings.TrimSpace(v), nil
}

// PromptSecret reads a value without echoing it, e.g. a private key.
func PromptSecret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return "", fmt.Errorf("%s: stdin is not a terminal", label)
	}
	fmt.Print(StyleWarning.Render(label) + ": ")
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", label, err)
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", fmt.Errorf("%s cannot be empty", label)
	}
	return v, nil
}

// SelectDecimals offers the allowed decimals and returns the chosen one.
func SelectDecimals(current uint8) (uint8, error) {
	items := make([]string, len(token.AllowedDecimals))
	cursor := 0
	for i, d := range token.AllowedDecimals {
		items[i] = strconv.Itoa(int(d))
		if d == current {
			cursor = i
		}
	}
	s := promptui.Select{
		Label:     "Decimals",
		Items:     items,
		CursorPos: cursor,
		Templates: selectTemplates,
		Size:      len(items),
	}
	idx, _, err := s.Run()
	if err != nil {
		return 0, cancelled(err, "decimals")
	}
	return token.AllowedDecimals[idx], nil
}

// FieldValidator adapts token validation of a single field to a promptui
// Validate hook: the candidate value is applied to a copy of base and only
// errors for f are reported.
func FieldValidator(base token.Params, f token.Field) func(string) error {
	return func(input string) error {
		p, perr := SetField(base, f, input)
		if perr != nil {
			return perr
		}
		if fe, ok := token.Validate(p)[f]; ok {
			return fe
		}
		return nil
	}
}

// SetField returns p with the text value for f applied. Numeric fields that
// do not parse return a *token.FieldError.
func SetField(p token.Params, f token.Field, input string) (token.Params, error) {
	input = strings.TrimSpace(input)
	rate := func(label string) (float64, error) {
		if input == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(input, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &token.FieldError{Field: f, Kind: token.ErrOutOfRange, Message: label + " must be a number."}
		}
		return v, nil
	}

	var err error
	switch f {
	case token.FieldName:
		p.Name = input
	case token.FieldSymbol:
		p.Symbol = strings.ToUpper(input)
	case token.FieldTotalSupply:
		p.TotalSupply = strings.ReplaceAll(input, ",", "")
	case token.FieldDecimals:
		d, perr := strconv.ParseUint(input, 10, 8)
		if perr != nil {
			return p, &token.FieldError{Field: f, Kind: token.ErrInvalidDecimals, Message: "Decimals must be 6, 9, 12 or 18."}
		}
		p.Decimals = uint8(d)
	case token.FieldBuyTax:
		p.BuyTaxRate, err = rate("Buy tax")
	case token.FieldSellTax:
		p.SellTaxRate, err = rate("Sell tax")
	case token.FieldBurnRate:
		p.BurnRate, err = rate("Burn rate")
	case token.FieldDevWallet:
		p.DevWallet = input
	case token.FieldMaxTx:
		p.MaxTx = strings.TrimSuffix(input, "%")
	case token.FieldRenounce:
		b, perr := strconv.ParseBool(input)
		if perr != nil {
			return p, &token.FieldError{Field: f, Kind: token.ErrOutOfRange, Message: "Renounce ownership must be yes or no."}
		}
		p.RenounceOwnership = b
	}
	return p, err
}
