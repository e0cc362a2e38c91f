package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/heldback/pkg/heldback"
)

// TestPrintHeldBack tests the behavior of PrintHeldBack.
//
// It verifies:
//   - Holders are printed in sorted order
//   - Names are padded to the widest holder name
//   - Each violation renders as name@version {compat}
func TestPrintHeldBack(t *testing.T) {
	m := heldback.HoldMap{
		"Zeta": {{Name: "B", MaxVersion: "2.0.0", Compat: "1.*"}},
		"Alphabet": {
			{Name: "B", MaxVersion: "2.0.0", Compat: "1.*"},
			{Name: "C", MaxVersion: "3.1.0", Compat: "^2"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintHeldBack(&buf, m, Options{}))

	expected := "Alphabet  B@2.0.0 {1.*}  C@3.1.0 {^2}\n" +
		"Zeta      B@2.0.0 {1.*}\n"
	assert.Equal(t, expected, buf.String())
}

// TestPrintHeldBackEmpty tests the behavior of PrintHeldBack with no
// holders.
//
// It verifies:
//   - An empty map produces no output
func TestPrintHeldBackEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHeldBack(&buf, nil, Options{}))
	assert.Empty(t, buf.String())
}

// TestPrintHeldBackColor tests the behavior of the color mode.
//
// It verifies:
//   - Holder names are bold, versions cyan, bounds dimmed
//   - Padding is computed from the plain name, not the colored one
func TestPrintHeldBackColor(t *testing.T) {
	m := heldback.HoldMap{
		"A": {{Name: "B", MaxVersion: "2.0.0", Compat: "1.*"}},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintHeldBack(&buf, m, Options{Color: true}))

	out := buf.String()
	assert.Contains(t, out, colorBold+"A"+colorReset)
	assert.Contains(t, out, colorCyan+"2.0.0"+colorReset)
	assert.Contains(t, out, colorDim+"{1.*}"+colorReset)
}

// TestPadding tests the behavior of padding.
//
// It verifies:
//   - Shorter names receive the width difference in spaces
//   - Names at or above the width receive nothing
func TestPadding(t *testing.T) {
	assert.Equal(t, "   ", padding("ab", 5))
	assert.Equal(t, "", padding("abcde", 5))
	assert.Equal(t, "", padding("abcdef", 5))
}
