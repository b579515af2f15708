package token

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validation failure kinds. A *FieldError matches its kind with errors.Is.
var (
	ErrEmptyField       = errors.New("field is empty")
	ErrTooLong          = errors.New("field is too long")
	ErrInvalidSupply    = errors.New("invalid total supply")
	ErrInvalidDecimals  = errors.New("invalid decimals")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrOutOfRange       = errors.New("value out of range")
	ErrValidationFailed = errors.New("validation failed")
)

const (
	MaxNameLength   = 32
	MaxSymbolLength = 6
	MaxTradeTax     = 10.0 // percent, buy and sell
	MaxBurnRate     = 5.0  // percent
)

var validate = validator.New()

// FieldError is a single failed rule.
type FieldError struct {
	Field   Field
	Kind    error
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return e.Kind }

// Errors maps each invalid field to its error. An empty map means valid.
type Errors map[Field]*FieldError

// Err returns nil for an empty map and a *ValidationError otherwise.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &ValidationError{Fields: e}
}

// Sorted returns the errors in form order.
func (e Errors) Sorted() []*FieldError {
	out := make([]*FieldError, 0, len(e))
	for _, f := range Fields {
		if fe, ok := e[f]; ok {
			out = append(out, fe)
		}
	}
	return out
}

// ValidationError reports every invalid field at once.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields.Sorted() {
		msgs = append(msgs, fe.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(msgs, " "))
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Validate checks every field of p independently and returns all failures.
// It is pure and cheap enough to run after every edit.
func Validate(p Params) Errors {
	errs := make(Errors)
	add := func(f Field, kind error, msg string) {
		if _, seen := errs[f]; !seen {
			errs[f] = &FieldError{Field: f, Kind: kind, Message: msg}
		}
	}

	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		add(FieldName, ErrEmptyField, "Token name is required.")
	case validate.Var(name, fmt.Sprintf("max=%d", MaxNameLength)) != nil:
		add(FieldName, ErrTooLong, fmt.Sprintf("Token name must be at most %d characters.", MaxNameLength))
	}

	symbol := strings.TrimSpace(p.Symbol)
	switch {
	case symbol == "":
		add(FieldSymbol, ErrEmptyField, "Symbol is required.")
	case validate.Var(symbol, fmt.Sprintf("max=%d", MaxSymbolLength)) != nil:
		add(FieldSymbol, ErrTooLong, fmt.Sprintf("Symbol must be at most %d characters.", MaxSymbolLength))
	}

	if !isPositiveInteger(p.TotalSupply) {
		add(FieldTotalSupply, ErrInvalidSupply, "Supply must be a whole number greater than 0.")
	}

	if !slices.Contains(AllowedDecimals, p.Decimals) {
		add(FieldDecimals, ErrInvalidDecimals, "Decimals must be 6, 9, 12 or 18.")
	}

	checkRate := func(f Field, label string, rate, maxRate float64) {
		if !validRate(rate, maxRate) {
			add(f, ErrOutOfRange, fmt.Sprintf("%s must be between 0 and %s%% in steps of 0.1.", label, decimal.NewFromFloat(maxRate)))
		}
	}
	checkRate(FieldBuyTax, "Buy tax", p.BuyTaxRate, MaxTradeTax)
	checkRate(FieldSellTax, "Sell tax", p.SellTaxRate, MaxTradeTax)
	checkRate(FieldBurnRate, "Burn rate", p.BurnRate, MaxBurnRate)

	dev := strings.TrimSpace(p.DevWallet)
	taxed := p.BuyTaxRate > 0 || p.SellTaxRate > 0
	if (taxed || dev != "") && validate.Var(dev, "required,eth_addr") != nil {
		add(FieldDevWallet, ErrInvalidAddress, "Valid dev wallet address required when taxes are set.")
	}

	if mt := strings.TrimSpace(p.MaxTx); mt != "" {
		if validate.Var(mt, "number") != nil || !inRange(mt, 0, 100) {
			add(FieldMaxTx, ErrOutOfRange, "Max Tx must be a whole number between 0 and 100%.")
		}
	}

	return errs
}

// Has reports whether f failed validation.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// FieldNames returns the names of the failed fields, sorted.
func (e Errors) FieldNames() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

func isPositiveInteger(s string) bool {
	s = strings.TrimSpace(s)
	if validate.Var(s, "required,number") != nil {
		return false
	}
	d, err := decimal.NewFromString(s)
	return err == nil && d.IsPositive()
}

func inRange(s string, lo, hi int64) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.GreaterThanOrEqual(decimal.NewFromInt(lo)) && d.LessThanOrEqual(decimal.NewFromInt(hi))
}

// validRate checks 0 ≤ rate ≤ max with at most one decimal place.
func validRate(rate, maxRate float64) bool {
	if validate.Var(rate, fmt.Sprintf("gte=0,lte=%g", maxRate)) != nil {
		return false
	}
	return decimal.NewFromFloat(rate).Shift(1).IsInteger()
}
