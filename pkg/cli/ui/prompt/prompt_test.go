package prompt_test

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devantler-tech/vmprep/pkg/cli/ui/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typeText sends each rune in text as a KeyRunes message.
func typeText(m tea.Model, text string) tea.Model {
	for _, char := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{char}})
	}

	return m
}

func enter(m tea.Model) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func newPrompter(tty bool, input string) *prompt.Prompter {
	return &prompt.Prompter{
		IsTTY:   func() bool { return tty },
		In:      strings.NewReader(input),
		Out:     io.Discard,
		Context: context.Background(),
	}
}

func TestNetworkName_ArgumentWins(t *testing.T) {
	t.Parallel()

	p := newPrompter(true, "ignored\r")

	name, err := p.NetworkName("tpet-dev")

	require.NoError(t, err)
	assert.Equal(t, "tpet-dev", name)
}

func TestNetworkName_ArgumentIsVerbatim(t *testing.T) {
	t.Parallel()

	p := newPrompter(false, "")

	name, err := p.NetworkName(" spaced name ")

	require.NoError(t, err)
	assert.Equal(t, " spaced name ", name)
}

func TestNetworkName_NonInteractive(t *testing.T) {
	t.Parallel()

	p := newPrompter(false, "tpet-dev\r")

	_, err := p.NetworkName("")

	require.ErrorIs(t, err, prompt.ErrNonInteractive)
	assert.Contains(t, err.Error(), "run non-interactively as: vmprep <network-name>")
}

func TestNetworkName_ReadsFromTerminal(t *testing.T) {
	t.Parallel()

	p := newPrompter(true, "tpet-dev\r")

	name, err := p.NetworkName("")

	require.NoError(t, err)
	assert.Equal(t, "tpet-dev", name)
}

func TestNetworkName_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newPrompter(true, "")
	p.Context = ctx

	_, err := p.NetworkName("")

	require.ErrorIs(t, err, prompt.ErrNoInput)
}

func TestNetworkModel_SubmitsTrimmedName(t *testing.T) {
	t.Parallel()

	model := typeText(prompt.NewNetworkModel(), "  tpet-dev \t")

	model, cmd := enter(model)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	name, entered := model.(prompt.NetworkModel).Name()
	assert.True(t, entered)
	assert.Equal(t, "tpet-dev", name)
}

func TestNetworkModel_BlankSubmitKeepsPromptOpen(t *testing.T) {
	t.Parallel()

	model, cmd := enter(prompt.NewNetworkModel())

	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), "network name cannot be empty")

	model = typeText(model, "   ")
	model, cmd = enter(model)

	assert.Nil(t, cmd)
	_, entered := model.(prompt.NetworkModel).Name()
	assert.False(t, entered)

	model = typeText(model, "web")
	model, cmd = enter(model)

	require.NotNil(t, cmd)

	name, entered := model.(prompt.NetworkModel).Name()
	assert.True(t, entered)
	assert.Equal(t, "web", name)
	assert.NotContains(t, model.View(), "network name cannot be empty")
}

func TestNetworkModel_CancelKeys(t *testing.T) {
	t.Parallel()

	keys := map[string]tea.KeyMsg{
		"esc":    {Type: tea.KeyEsc},
		"ctrl+c": {Type: tea.KeyCtrlC},
		"ctrl+d": {Type: tea.KeyCtrlD},
	}

	for name, key := range keys {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			model := typeText(prompt.NewNetworkModel(), "half")

			model, cmd := model.Update(key)

			require.NotNil(t, cmd)
			assert.True(t, model.(prompt.NetworkModel).Cancelled())

			_, entered := model.(prompt.NetworkModel).Name()
			assert.False(t, entered)
		})
	}
}

func TestNetworkModel_ViewShowsPrompt(t *testing.T) {
	t.Parallel()

	model := typeText(prompt.NewNetworkModel(), "tpet")

	assert.Contains(t, model.View(), "Docker network name:")
	assert.Contains(t, model.View(), "tpet")
}
