package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the terminal behind a stream supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols holds the glyphs used for progress output.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int // index into spinner.CharSets
}

var (
	unicodeSymbols = ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14} // braille dots
	asciiSymbols   = ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9} // | / - \
)

// DetectTerminalCapabilities inspects f and the NO_COLOR and
// RELEASE_NOTES_ASCII variables. A nil or redirected f has no capabilities.
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return TerminalCapabilities{}
	}

	caps := TerminalCapabilities{
		IsTTY:           true,
		SupportsColor:   os.Getenv("NO_COLOR") == "",
		SupportsUnicode: os.Getenv("RELEASE_NOTES_ASCII") != "1",
	}
	if w, _, err := term.GetSize(int(f.Fd())); err == nil {
		caps.Width = w
	}
	return caps
}

// SelectSymbols picks Unicode glyphs when the terminal supports them.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return unicodeSymbols
	}
	return asciiSymbols
}
