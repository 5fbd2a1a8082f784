package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nikki/internal/adapters/tui/styles"
	"nikki/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
	schema domain.Schema
}

// NewHelpModel creates a new help view model
func NewHelpModel(schema domain.Schema) *HelpModel {
	return &HelpModel{schema: schema}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToRecordsMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Nikki Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Daily diary kept in a spreadsheet"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Records"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("n", "Write a new entry"))
	b.WriteString(helpLine("d", "Delete every entry of the selected day"))
	b.WriteString(helpLine("e", "Export entries to a CSV file"))
	b.WriteString(helpLine("y", "Copy entries as CSV to the clipboard"))
	b.WriteString(helpLine("r", "Reload from the sheet"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Entry form"))
	b.WriteString("\n")
	b.WriteString(helpLine("tab / enter", "Next field"))
	b.WriteString(helpLine("shift+tab", "Previous field"))
	b.WriteString(helpLine("esc", "Cancel"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Columns"))
	b.WriteString("\n")
	for _, f := range m.schema.Fields {
		b.WriteString(styles.MutedText.Render("  " + padRight(f.Name, 12) + string(f.Type)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

// padRight pads s to length display cells
func padRight(s string, length int) string {
	w := lipgloss.Width(s)
	if w >= length {
		return s
	}
	return s + strings.Repeat(" ", length-w)
}
