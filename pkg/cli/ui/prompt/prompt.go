// Package prompt asks the operator for values that were not passed on the command line.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var (
	// ErrNonInteractive is returned when input is required but stdin is not a terminal.
	ErrNonInteractive = errors.New(
		"no network name given and stdin is not a terminal; run non-interactively as: vmprep <network-name>",
	)
	// ErrNoInput is returned when the operator closes the prompt without answering.
	ErrNoInput = errors.New("no network name entered")
)

// Prompter resolves a network name from an argument or a terminal prompt.
type Prompter struct {
	// IsTTY reports whether input comes from a terminal.
	IsTTY func() bool
	// In and Out carry the prompt. Nil means the process's stdin and stdout.
	In  io.Reader
	Out io.Writer
	// Context cancels a prompt that is still waiting for input.
	Context context.Context //nolint:containedctx // NetworkName has no context parameter
}

// NewPrompter returns a Prompter that prompts on stdin and out.
func NewPrompter(stdin *os.File, out io.Writer) *Prompter {
	if stdin == nil {
		stdin = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	return &Prompter{
		IsTTY: func() bool {
			return term.IsTerminal(int(stdin.Fd())) //nolint:gosec // file descriptors fit in int
		},
		In:      stdin,
		Out:     out,
		Context: context.Background(),
	}
}

// NetworkName returns arg when it is non-empty. Otherwise it prompts until a
// non-blank name is entered.
func (p *Prompter) NetworkName(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}

	if p.IsTTY == nil || !p.IsTTY() {
		return "", ErrNonInteractive
	}

	ctx := p.Context
	if ctx == nil {
		ctx = context.Background()
	}

	options := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		options = append(options, tea.WithInput(p.In))
	}

	if p.Out != nil {
		options = append(options, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(NewNetworkModel(), options...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled) {
			return "", ErrNoInput
		}

		return "", fmt.Errorf("failed to read network name: %w", err)
	}

	model, ok := final.(NetworkModel)
	if !ok {
		return "", ErrNoInput
	}

	name, entered := model.Name()
	if !entered {
		return "", ErrNoInput
	}

	return name, nil
}
