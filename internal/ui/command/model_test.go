package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMsg_NameAndArgs(t *testing.T) {
	tests := []struct {
		in   CommandMsg
		name string
		args []string
	}{
		{"gifts", "gifts", nil},
		{"New Gift", "new", []string{"Gift"}},
		{"  year   2024 ", "year", []string{"2024"}},
		{"", "", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.in.Name(), string(tt.in))
		assert.Equal(t, tt.args, tt.in.Args(), string(tt.in))
	}
}

func TestModel_EnterEmitsCommand(t *testing.T) {
	m := New(80, 20)
	for _, r := range "reports" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg("reports"), cmd())
	assert.Equal(t, "", m.input.Value())
}

func TestModel_EnterOnBlankIsNoop(t *testing.T) {
	m := New(80, 20)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestNames_MatchCommands(t *testing.T) {
	names := Names()
	require.Len(t, names, len(Commands))
	assert.Contains(t, names, "new gift")
	assert.Contains(t, names, "year")
}
