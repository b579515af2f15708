package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. ColorChain is the VinuChain brand blue.
var (
	ColorSuccess   = lipgloss.Color("#00D26A")
	ColorWarning   = lipgloss.Color("#FFB800")
	ColorError     = lipgloss.Color("#FF4444")
	ColorAddress   = lipgloss.Color("#00B4D8")
	ColorValue     = lipgloss.Color("#FFFFFF")
	ColorMeta      = lipgloss.Color("#555555")
	ColorBorder    = lipgloss.Color("#1E3A5F")
	ColorChain     = lipgloss.Color("#2F7DF6")
	ColorHighlight = lipgloss.Color("#F15BB5")
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleChain   = lipgloss.NewStyle().Foreground(ColorChain).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorChain).
			Bold(true).
			MarginBottom(1)

	StyleFocused = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
)

// Banner returns the vinutoken banner.
func Banner(version string) string {
	title := StyleChain.Render("◆ vinutoken")
	tagline := StyleMeta.Render("  Token creator for VinuChain  ·  " + version)
	return title + "\n" + tagline + "\n"
}

// marked returns a formatter that prefixes msg with glyph in style.
func marked(style lipgloss.Style, glyph string) func(string) string {
	return func(msg string) string { return style.Render(glyph + " " + msg) }
}

// Status line formatters.
var (
	Success = marked(StyleSuccess, "✓")
	Warn    = marked(StyleWarning, "⚠")
	Err     = marked(StyleError, "✗")
	Info    = marked(StyleAddress, "ℹ")
	Hint    = marked(StyleMeta, "→")
)

// Plain formatters for addresses and hashes, amounts, labels and chain names.
var (
	Addr      = StyleAddress.Render
	Val       = StyleValue.Render
	Meta      = StyleMeta.Render
	ChainName = StyleChain.Render
)

// TruncateAddr shortens an address for display: 0x1234…5678.
func TruncateAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// Steps renders a numbered list.
func Steps(title string, steps []string) string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(title) + "\n")
	for i, s := range steps {
		sb.WriteString(StyleMeta.Render(fmt.Sprintf("%d. ", i+1)) + s + "\n")
	}
	return sb.String()
}
