package notify

import (
	"io"
	"os"

	"github.com/devantler-tech/vmprep/pkg/utils/timer"
)

// Printer routes messages to two streams: progress and results go to Out,
// warnings and errors go to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// NewPrinter returns a Printer writing to out and errOut. Nil writers fall
// back to os.Stdout and os.Stderr.
func NewPrinter(out, errOut io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}

	if errOut == nil {
		errOut = os.Stderr
	}

	return &Printer{Out: out, Err: errOut}
}

// Title writes a stage title.
func (p *Printer) Title(emoji, format string, args ...any) {
	Titlef(p.Out, emoji, format, args...)
}

// Activity writes a progress line.
func (p *Printer) Activity(format string, args ...any) {
	Activityf(p.Out, format, args...)
}

// Generate writes a file generation line.
func (p *Printer) Generate(format string, args ...any) {
	Generatef(p.Out, format, args...)
}

// Success writes a success line.
func (p *Printer) Success(format string, args ...any) {
	Successf(p.Out, format, args...)
}

// SuccessWithTimer writes a success line followed by tmr's readings.
func (p *Printer) SuccessWithTimer(tmr timer.Timer, format string, args ...any) {
	SuccessWithTimerf(p.Out, tmr, format, args...)
}

// Info writes an informational line.
func (p *Printer) Info(format string, args ...any) {
	Infof(p.Out, format, args...)
}

// Skip writes a line for a step that was left as is.
func (p *Printer) Skip(format string, args ...any) {
	Skipf(p.Out, format, args...)
}

// Warning writes a warning line to the error stream.
func (p *Printer) Warning(format string, args ...any) {
	Warningf(p.Err, format, args...)
}

// Error writes an error line to the error stream.
func (p *Printer) Error(format string, args ...any) {
	Errorf(p.Err, format, args...)
}
