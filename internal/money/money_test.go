package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDecoratedAmount(t *testing.T) {
	require.Equal(t, 1234.5, Parse("$1,234.5"))
	require.Equal(t, 500.0, Parse("$500"))
	require.Equal(t, 1200.75, Parse("RWF 1,200.75"))
	require.Equal(t, -45.0, Parse("-45"))
}

func TestParseDirtyInput(t *testing.T) {
	require.Equal(t, 0.0, Parse(""))
	require.Equal(t, 0.0, Parse("N/A"))
	require.Equal(t, 0.0, Parse("--"))
	require.Equal(t, 0.0, Parse("1.2.3.4-"))
}

func TestParseChecked(t *testing.T) {
	v, ok := ParseChecked("$1,234.50")
	require.True(t, ok)
	require.Equal(t, 1234.5, v)

	// Empty is a valid zero, decorated garbage is not.
	_, ok = ParseChecked("")
	require.True(t, ok)
	_, ok = ParseChecked("N/A")
	require.False(t, ok)
	_, ok = ParseChecked("--")
	require.False(t, ok)
}

func TestParsePtr(t *testing.T) {
	require.Equal(t, 0.0, ParsePtr(nil))
	s := "$300"
	require.Equal(t, 300.0, ParsePtr(&s))
}

func TestFormatRoundTrip(t *testing.T) {
	require.Equal(t, 1234.5, Format(Parse("$1,234.5")))
	require.Equal(t, 0.35, Format(0.345))
	require.Equal(t, 10.0, Format(10))
}

func TestSumAvoidsFloatDrift(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = 0.1
	}
	require.Equal(t, 1.0, Sum(values...))
}

func TestDisplay(t *testing.T) {
	require.Equal(t, "USD 1,234.50", Display(1234.5, "USD"))
	require.Equal(t, "500.00", Display(500, ""))
}
