package progress

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSymbols(t *testing.T) {
	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode terminal": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii fallback": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestDetectTerminalCapabilities_NotATerminal(t *testing.T) {
	f := tempFile(t)

	caps := DetectTerminalCapabilities(f)
	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
	assert.Zero(t, caps.Width)

	assert.Equal(t, TerminalCapabilities{}, DetectTerminalCapabilities(nil))
}

func TestSpinner_DisabledWritesNothing(t *testing.T) {
	f := tempFile(t)
	sp := NewSpinner(f, TerminalCapabilities{}, "Fetching release")

	assert.False(t, sp.Enabled())
	sp.Start()
	sp.Success("done")
	sp.Fail("failed")
	assert.Empty(t, readAll(t, f))
}

func TestSpinner_NilFileIsDisabled(t *testing.T) {
	sp := NewSpinner(nil, TerminalCapabilities{IsTTY: true}, "Fetching release")
	assert.False(t, sp.Enabled())
	sp.Start()
	sp.Fail("failed")
}

func TestSpinner_EnabledOnNonTerminalFileStaysQuiet(t *testing.T) {
	f := tempFile(t)
	sp := NewSpinner(f, TerminalCapabilities{IsTTY: true, SupportsColor: true}, "Fetching release")

	assert.True(t, sp.Enabled())
	sp.Start()
	sp.Success("Found v4.0.0")
	assert.Empty(t, readAll(t, f), "the spinner library only draws on real terminals")
}

func tempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "progress")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func readAll(t *testing.T, f *os.File) string {
	t.Helper()
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	return string(data)
}
