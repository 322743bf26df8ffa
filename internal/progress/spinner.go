package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerDelay = 100 * time.Millisecond

// Spinner shows activity while a blocking call runs. A disabled Spinner
// prints nothing, so callers never need to branch on the terminal.
type Spinner struct {
	s       *spinner.Spinner
	symbols ProgressSymbols
	enabled bool
}

// NewSpinner creates a spinner writing to f. It is only enabled when caps
// describes an interactive terminal.
func NewSpinner(f *os.File, caps TerminalCapabilities, message string) *Spinner {
	symbols := SelectSymbols(caps)
	sp := &Spinner{symbols: symbols, enabled: caps.IsTTY && f != nil}
	if !sp.enabled {
		return sp
	}

	sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerDelay, spinner.WithWriterFile(f))
	sp.s.Suffix = " " + message
	if caps.SupportsColor {
		_ = sp.s.Color("cyan")
	}
	return sp
}

// Enabled reports whether the spinner draws anything.
func (sp *Spinner) Enabled() bool {
	return sp.enabled
}

// Start begins animating.
func (sp *Spinner) Start() {
	if sp.enabled {
		sp.s.Start()
	}
}

// Success stops the spinner and leaves a checkmark line behind.
func (sp *Spinner) Success(message string) {
	sp.stop(fmt.Sprintf("%s %s\n", sp.symbols.Checkmark, message))
}

// Fail stops the spinner and leaves a failure line behind.
func (sp *Spinner) Fail(message string) {
	sp.stop(fmt.Sprintf("%s %s\n", sp.symbols.Failure, message))
}

func (sp *Spinner) stop(final string) {
	if !sp.enabled {
		return
	}
	sp.s.FinalMSG = final
	sp.s.Stop()
}
