package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundToCent(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{100.0, 100.0},
		{100.004, 100.0},
		{100.005, 100.01},
		{99.999, 100.0},
		{102.6171875, 102.62},
		{0.004999, 0.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, RoundToCent(tt.in), 1e-9, "RoundToCent(%v)", tt.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "100.00", FormatPrice(100))
	assert.Equal(t, "98.49", FormatPrice(98.49))
	assert.Equal(t, "103.00", FormatPrice(102.9999))
}

func TestLoadTickers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.txt")
	require.NoError(t, os.WriteFile(path, []byte("AAPL\n\nmsft\n  NVDA  \n\n"), 0o644))

	got, err := LoadTickers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, got)

	_, err = LoadTickers(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
