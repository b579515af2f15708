package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueBlock(t *testing.T) {
	out := KeyValueBlock("Token Preview", [][2]string{
		{"Token", "Vinu Cat (VCAT)"},
		{"Supply", "1,000,000"},
		{"Renounce Ownership", "No"},
	})
	assert.Contains(t, out, "Token Preview")
	assert.Contains(t, out, "Vinu Cat (VCAT)")
	assert.Contains(t, out, "Renounce Ownership:")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╰")

	iToken := strings.Index(out, "Token:")
	iSupply := strings.Index(out, "Supply:")
	iRenounce := strings.Index(out, "Renounce Ownership:")
	require.Greater(t, iToken, -1)
	assert.Less(t, iToken, iSupply)
	assert.Less(t, iSupply, iRenounce)
}

func TestKeyValueBlockNoTitleNoPairs(t *testing.T) {
	assert.NotEmpty(t, KeyValueBlock("", nil))
}

func TestNewTable(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Name", Width: 10}, {Title: "Address", Width: 14}})
	assert.Len(t, tbl.Columns, 2)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, -1, tbl.SelIdx)

	tbl.AddRow(Row{"deployer", "0xf39F…2266"})
	assert.Len(t, tbl.Rows, 1)
}

func TestTableRender(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Name", Width: 10}, {Title: "Type", Width: 10}})
	tbl.AddRow(Row{"deployer", "signing"})
	tbl.AddRow(Row{"watcher"}) // short row renders blank cells
	tbl.SelIdx = 0

	out := tbl.Render()
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "──────────")
	assert.Less(t, strings.Index(out, "deployer"), strings.Index(out, "watcher"))
	assert.Contains(t, out, "signing")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab   ", fit("ab", 5))
	assert.Equal(t, "abcde", fit("abcde", 5))
	assert.Equal(t, "abcd…", fit("abcdefgh", 5))
	assert.Equal(t, 5, lipgloss.Width(fit("0x12…", 5)))
	assert.Equal(t, "", fit("abc", 0))
}
