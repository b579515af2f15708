package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormattersCarryPrefix(t *testing.T) {
	cases := map[string]struct {
		fn     func(string) string
		prefix string
	}{
		"Success": {Success, "✓"},
		"Warn":    {Warn, "⚠"},
		"Err":     {Err, "✗"},
		"Info":    {Info, "ℹ"},
		"Hint":    {Hint, "→"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out := tc.fn("deployed")
			assert.Contains(t, out, tc.prefix)
			assert.Contains(t, out, "deployed")
		})
	}
}

func TestPlainFormattersKeepText(t *testing.T) {
	for name, fn := range map[string]func(...string) string{
		"Addr":      Addr,
		"Val":       Val,
		"Meta":      Meta,
		"ChainName": ChainName,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, fn("VinuChain"), "VinuChain")
		})
	}
}

func TestInfoDiffersFromHint(t *testing.T) {
	assert.NotEqual(t, Info("x"), Hint("x"))
}

func TestTruncateAddr(t *testing.T) {
	assert.Equal(t, "", TruncateAddr(""))
	assert.Equal(t, "0x1234", TruncateAddr("0x1234"))
	assert.Equal(t, "0x12345678", TruncateAddr("0x12345678"))
	assert.Equal(t, "0xf39F…2266", TruncateAddr("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
}

func TestBanner(t *testing.T) {
	b := Banner("v0.3.0")
	assert.Contains(t, b, "vinutoken")
	assert.Contains(t, b, "v0.3.0")
}

func TestStepsNumbered(t *testing.T) {
	out := Steps("Verify", []string{"Open the explorer", "Submit"})
	assert.Contains(t, out, "Verify")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "Open the explorer")
	assert.Contains(t, out, "2. ")
}
