package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
}

// Row is a slice of cell values.
type Row []string

// Table renders a lipgloss-styled table.
type Table struct {
	Columns []Column
	Rows    []Row
	SelIdx  int // highlighted row index (-1 = none)
}

// NewTable creates a new table.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols, SelIdx: -1}
}

// AddRow appends a row.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// Render returns the full table as a string. Cells are padded to the column
// width before styling so multi-byte glyphs (…, ✓) do not shift columns.
func (t *Table) Render() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)

	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = headerStyle.Render(fit(col.Title, col.Width))
	}
	sb.WriteString(strings.Join(cells, " ") + "\n")

	for i, col := range t.Columns {
		cells[i] = StyleMeta.Render(strings.Repeat("─", col.Width))
	}
	sb.WriteString(strings.Join(cells, " ") + "\n")

	for r, row := range t.Rows {
		style := cellStyle
		if r == t.SelIdx {
			style = StyleSelected
		}
		for j, col := range t.Columns {
			val := ""
			if j < len(row) {
				val = row[j]
			}
			cells[j] = style.Render(fit(val, col.Width))
		}
		sb.WriteString(strings.Join(cells, " ") + "\n")
	}
	return sb.String()
}

// fit pads s to exactly width terminal cells, truncating with … if needed.
func fit(s string, width int) string {
	w := lipgloss.Width(s)
	if w <= width {
		return s + strings.Repeat(" ", width-w)
	}
	if width <= 1 {
		return strings.Repeat("…", width)
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return fit(string(runes)+"…", width)
}

// KeyValueBlock renders label/value pairs in a bordered box.
func KeyValueBlock(title string, pairs [][2]string) string {
	keyWidth := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p[0]) + 1; w > keyWidth {
			keyWidth = w
		}
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title) + "\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(fit(p[0]+":", keyWidth))
		sb.WriteString(key + "  " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(strings.TrimSuffix(sb.String(), "\n"))
}
