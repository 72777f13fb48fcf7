package editor_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitcraft/commitcraft/internal/adapters/inbound/editor"
	"github.com/commitcraft/commitcraft/internal/domain"
)

func draftMessage(t *testing.T) (domain.CommitMessage, domain.Config) {
	t.Helper()
	cfg := domain.DefaultConfig()
	msg := domain.CommitMessage{
		Subject: "Add login page",
		Sections: []domain.Section{
			{Name: "References", Heading: "# References [Required]", Body: "Closes #42"},
			{Name: "Changes Overview", Heading: "# Changes Overview [Required]", Body: "New login form."},
		},
	}
	return msg, cfg
}

func update(t *testing.T, m editor.Model, msg tea.Msg) editor.Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(editor.Model)
	require.True(t, ok)
	return out
}

func TestNew_MessageRoundTrip(t *testing.T) {
	msg, cfg := draftMessage(t)

	m := editor.New(msg, cfg)
	assert.Equal(t, msg, m.Message())
	assert.False(t, m.Saved())
}

func TestUpdate_TabCyclesThroughFields(t *testing.T) {
	msg, cfg := draftMessage(t)
	m := editor.New(msg, cfg)

	tab := tea.KeyMsg{Type: tea.KeyTab}
	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}

	// Subject -> References -> Changes Overview -> wraps back to Subject.
	m = update(t, m, tab)
	m = update(t, m, tab)
	m = update(t, m, tab)
	m = update(t, m, shiftTab)

	// Focus changes must not alter the message.
	assert.Equal(t, msg, m.Message())
}

func TestUpdate_TypingEditsSubject(t *testing.T) {
	msg, cfg := draftMessage(t)
	m := editor.New(msg, cfg)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Equal(t, "Add login pages", m.Message().Subject)
}

func TestUpdate_ValidationFooterTracksEdits(t *testing.T) {
	msg, cfg := draftMessage(t)
	m := editor.New(msg, cfg)
	assert.Contains(t, m.View(), "message is valid")

	// A trailing full stop breaks the subject rule.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(".")})
	assert.Contains(t, m.View(), "full stop")
}

func TestUpdate_CtrlSMarksSaved(t *testing.T) {
	msg, cfg := draftMessage(t)
	m := editor.New(msg, cfg)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.Saved())
}

func TestUpdate_EscLeavesUnsaved(t *testing.T) {
	msg, cfg := draftMessage(t)
	m := editor.New(msg, cfg)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Saved())
}

func TestView_ShowsTabsAndActiveSection(t *testing.T) {
	msg, cfg := draftMessage(t)
	m := editor.New(msg, cfg)

	view := m.View()
	assert.Contains(t, view, "Subject")
	assert.Contains(t, view, "References")
	assert.Contains(t, view, "Changes Overview")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "# References [Required]")
}
