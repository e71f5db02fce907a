package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	networkPrompt = "Docker network name: "
	emptyNameHint = "network name cannot be empty"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(14)).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(11))
)

// NetworkModel is the bubbletea model behind the network name prompt. Enter
// on a blank line shows a hint and keeps the prompt open; esc, ctrl+c and
// ctrl+d give up.
type NetworkModel struct {
	input     textinput.Model
	hint      string
	name      string
	entered   bool
	cancelled bool
}

// NewNetworkModel returns a focused, empty prompt.
func NewNetworkModel() NetworkModel {
	input := textinput.New()
	input.Prompt = networkPrompt
	input.PromptStyle = promptStyle
	input.Placeholder = "my-network"
	input.Focus()

	return NetworkModel{input: input}
}

// Name returns the trimmed name and whether one was entered.
func (m NetworkModel) Name() (string, bool) {
	return m.name, m.entered
}

// Cancelled reports whether the operator closed the prompt.
func (m NetworkModel) Cancelled() bool {
	return m.cancelled
}

// Init starts the cursor blinking.
func (m NetworkModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles submit and cancel keys and forwards the rest to the input.
func (m NetworkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.hint = emptyNameHint
				m.input.Reset()

				return m, nil
			}

			m.name = name
			m.entered = true
			m.hint = ""

			return m, tea.Quit
		case "esc", "ctrl+c", "ctrl+d":
			m.cancelled = true

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// View renders the prompt line and, after a blank submit, the hint below it.
func (m NetworkModel) View() string {
	if m.entered || m.cancelled {
		return ""
	}

	if m.hint == "" {
		return m.input.View() + "\n"
	}

	return m.input.View() + "\n" + hintStyle.Render("⚠ "+m.hint) + "\n"
}
