package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"nikki/internal/adapters/filesystem"
	"nikki/internal/adapters/tui/styles"
	"nikki/internal/application"
	"nikki/internal/application/commands"
	"nikki/internal/domain"
)

// ExportModel asks for a file name and writes the CSV export there
type ExportModel struct {
	ViewState
	diary *application.Diary
	form  *InputForm
}

// NewExportModel creates a new export view
func NewExportModel(diary *application.Diary) *ExportModel {
	return &ExportModel{diary: diary}
}

// Init resets the path to the default file name
func (m *ExportModel) Init() tea.Cmd {
	m.ClearMessage()
	field := NewInputField("File", domain.ExportFileName, 255)
	m.form = NewInputForm(field)
	m.form.SetValue(0, domain.ExportFileName)
	return m.form.Init()
}

// Update handles messages for the export view
func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToRecordsMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			path := m.form.Value(0)
			if path == "" {
				m.SetMessage("file name is required", true)
				return m, nil
			}
			return m, func() tea.Msg { return m.doExport(path) }
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *ExportModel) doExport(path string) tea.Msg {
	result, err := commands.NewExportCommand(m.diary).Execute(context.Background())
	if err != nil {
		return ErrMsg{Err: err}
	}
	if err := filesystem.WriteExport(path, result.Data); err != nil {
		return ErrMsg{Err: err}
	}
	return DoneMsg{Message: fmt.Sprintf("Exported %d entries to %s", result.Entries, path)}
}

// View renders the export view
func (m *ExportModel) View() string {
	if m.form == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Export CSV"))
	b.WriteString("\n\n")
	b.WriteString(m.form.RenderField(0))
	b.WriteString("\n\n")
	if msg := m.RenderMessage(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}
	b.WriteString(m.form.RenderHelp("export"))

	return styles.App.Render(b.String())
}
