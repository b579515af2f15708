package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Mohsinsiddi/vinutoken/internal/token"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var fieldLabels = map[token.Field]string{
	token.FieldName:        "Token Name",
	token.FieldSymbol:      "Symbol",
	token.FieldTotalSupply: "Total Supply",
	token.FieldDecimals:    "Decimals",
	token.FieldBuyTax:      "Buy Tax %",
	token.FieldSellTax:     "Sell Tax %",
	token.FieldBurnRate:    "Burn Rate %",
	token.FieldDevWallet:   "Dev Wallet",
	token.FieldMaxTx:       "Max Tx %",
	token.FieldRenounce:    "Renounce Ownership",
}

var fieldPlaceholders = map[token.Field]string{
	token.FieldName:        "MyToken",
	token.FieldSymbol:      "MTK",
	token.FieldTotalSupply: "1000000000",
	token.FieldBuyTax:      "0 - 10",
	token.FieldSellTax:     "0 - 10",
	token.FieldBurnRate:    "0 - 5",
	token.FieldDevWallet:   "0x… (required when taxes are set)",
	token.FieldMaxTx:       "empty = no limit",
}

// FormModel is the Bubble Tea model for editing token parameters. Every
// edit re-runs validation over the whole form.
type FormModel struct {
	fields []token.Field
	raw    map[token.Field]string
	cursor int

	params token.Params
	errs   token.Errors

	submitted bool
	cancelled bool
}

// NewFormModel returns a form pre-filled from p.
func NewFormModel(p token.Params) FormModel {
	m := FormModel{
		fields: token.Fields,
		raw:    make(map[token.Field]string, len(token.Fields)),
		params: p,
	}
	m.raw[token.FieldName] = p.Name
	m.raw[token.FieldSymbol] = p.Symbol
	m.raw[token.FieldTotalSupply] = p.TotalSupply
	m.raw[token.FieldDecimals] = strconv.Itoa(int(p.Decimals))
	m.raw[token.FieldBuyTax] = rateText(p.BuyTaxRate)
	m.raw[token.FieldSellTax] = rateText(p.SellTaxRate)
	m.raw[token.FieldBurnRate] = rateText(p.BurnRate)
	m.raw[token.FieldDevWallet] = p.DevWallet
	m.raw[token.FieldMaxTx] = p.MaxTx
	m.raw[token.FieldRenounce] = strconv.FormatBool(p.RenounceOwnership)
	m.revalidate()
	return m
}

func rateText(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Params returns the parameters as currently entered.
func (m FormModel) Params() token.Params { return m.params }

// Errors returns the current validation errors.
func (m FormModel) Errors() token.Errors { return m.errs }

// Submitted reports whether the user confirmed a valid form.
func (m FormModel) Submitted() bool { return m.submitted }

// Cancelled reports whether the user quit the form.
func (m FormModel) Cancelled() bool { return m.cancelled }

func (m FormModel) Init() tea.Cmd { return nil }

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	f := m.fields[m.cursor]

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "tab":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.cursor == len(m.fields)-1 {
			return m.submit()
		}
		m.cursor++
	case "left", "right", " ":
		switch f {
		case token.FieldDecimals:
			m.cycleDecimals(key.String() == "left")
		case token.FieldRenounce:
			m.edit(f, strconv.FormatBool(!m.params.RenounceOwnership))
		default:
			if key.Type == tea.KeySpace {
				m.edit(f, m.raw[f]+" ")
			}
		}
	case "backspace":
		if r := []rune(m.raw[f]); len(r) > 0 && isText(f) {
			m.edit(f, string(r[:len(r)-1]))
		}
	default:
		if key.Type == tea.KeyRunes && isText(f) {
			m.edit(f, m.raw[f]+string(key.Runes))
		}
	}
	return m, nil
}

func isText(f token.Field) bool {
	return f != token.FieldDecimals && f != token.FieldRenounce
}

func (m FormModel) submit() (tea.Model, tea.Cmd) {
	if len(m.errs) > 0 {
		// jump to the first invalid field
		for i, f := range m.fields {
			if m.errs.Has(f) {
				m.cursor = i
				break
			}
		}
		return m, nil
	}
	m.submitted = true
	return m, tea.Quit
}

func (m *FormModel) cycleDecimals(back bool) {
	opts := token.AllowedDecimals
	i := slices.Index(opts, m.params.Decimals)
	switch {
	case i < 0:
		i = len(opts) - 1
	case back:
		i = (i - 1 + len(opts)) % len(opts)
	default:
		i = (i + 1) % len(opts)
	}
	m.edit(token.FieldDecimals, strconv.Itoa(int(opts[i])))
}

// edit stores the raw text for f and recomputes the parameters and the
// complete error map.
func (m *FormModel) edit(f token.Field, text string) {
	m.raw[f] = text
	m.revalidate()
}

func (m *FormModel) revalidate() {
	p := m.params
	parseErrs := make(token.Errors)
	for _, f := range m.fields {
		next, err := SetField(p, f, m.raw[f])
		if fe, ok := err.(*token.FieldError); ok {
			parseErrs[f] = fe
			continue
		}
		p = next
	}
	m.params = p
	m.errs = token.Validate(p)
	for f, fe := range parseErrs {
		m.errs[f] = fe
	}
}

func (m FormModel) View() string {
	if m.cancelled || m.submitted {
		return ""
	}

	var form strings.Builder
	form.WriteString(StyleTitle.Render("Create Token on VinuChain") + "\n")
	for i, f := range m.fields {
		label := fmt.Sprintf("%-19s", fieldLabels[f])
		val := m.raw[f]
		switch {
		case f == token.FieldDecimals:
			val = "◂ " + val + " ▸"
		case f == token.FieldRenounce:
			val = "[ ]"
			if m.params.RenounceOwnership {
				val = "[x]"
			}
		case val == "":
			val = StyleMeta.Render(fieldPlaceholders[f])
		}

		prefix := "  "
		if i == m.cursor {
			prefix = StyleFocused.Render("▸ ")
			label = StyleFocused.Render(label)
			if isText(f) {
				val += "█"
			}
		} else {
			label = StyleMeta.Render(label)
		}
		form.WriteString(prefix + label + " " + val + "\n")
		if fe, ok := m.errs[f]; ok {
			form.WriteString("    " + StyleError.Render(fe.Message) + "\n")
		}
	}

	rows := m.params.Preview()
	pairs := make([][2]string, len(rows))
	for i, r := range rows {
		pairs[i] = [2]string{r.Label, r.Value}
	}

	status := Success("Ready to deploy")
	if n := len(m.errs); n > 0 {
		status = Err(fmt.Sprintf("%d field(s) need attention", n))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		StyleBorder.Render(strings.TrimSuffix(form.String(), "\n")),
		"  ",
		KeyValueBlock("Preview", pairs),
	)
	help := StyleMeta.Render("[ ↑↓ / tab ] move   [ ←→ / space ] change   [ enter ] next   [ ctrl+s ] deploy   [ esc ] cancel")
	return body + "\n" + status + "\n" + help + "\n"
}

// RunForm shows the token form and returns the confirmed parameters.
// Returns ErrCancelled if the user quits.
func RunForm(p token.Params) (token.Params, error) {
	final, err := tea.NewProgram(NewFormModel(p), tea.WithAltScreen()).Run()
	if err != nil {
		return p, fmt.Errorf("form: %w", err)
	}
	fm := final.(FormModel)
	if !fm.Submitted() {
		return p, fmt.Errorf("token form: %w", ErrCancelled)
	}
	return fm.Params(), nil
}
