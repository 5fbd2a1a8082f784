package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nikki/internal/adapters/tui/styles"
	"nikki/internal/application"
	"nikki/internal/application/commands"
	"nikki/internal/domain"
)

// RecordsKeyMap defines key bindings for the records view
type RecordsKeyMap struct {
	New    key.Binding
	Delete key.Binding
	Export key.Binding
	Copy   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var RecordsKeys = RecordsKeyMap{
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new entry"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d", "delete day"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export csv"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy csv"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

const (
	minColumnWidth = 4
	maxColumnWidth = 24
	// chrome is the number of lines taken by title, status and padding
	chrome = 9
)

// copyToClipboard is swapped out in tests
var copyToClipboard = clipboard.WriteAll

// RecordsModel lists past entries in a table
type RecordsModel struct {
	ViewState
	diary  *application.Diary
	set    domain.RecordSet
	table  table.Model
	loaded bool
	keyCol int
	satCol int
	satMax int
}

// NewRecordsModel creates a new records view
func NewRecordsModel(diary *application.Diary) *RecordsModel {
	t := table.New(table.WithFocused(true))
	s := table.DefaultStyles()
	s.Header = styles.TableHeader
	s.Cell = styles.TableCell
	s.Selected = styles.TableSelected
	t.SetStyles(s)

	return &RecordsModel{
		diary: diary,
		table: t,
	}
}

// Init loads the records
func (m *RecordsModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload returns a command that re-reads the sheet
func (m *RecordsModel) Reload() tea.Cmd {
	return func() tea.Msg {
		set, err := commands.NewListCommand(m.diary).Execute(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return RecordsLoadedMsg{Set: set}
	}
}

// SetRecords replaces the table content
func (m *RecordsModel) SetRecords(set domain.RecordSet) {
	m.set = set
	m.loaded = true

	schema := m.diary.Schema()
	m.keyCol = max(set.Column(schema.Key().Name), 0)
	m.satCol = -1
	for _, f := range schema.Fields {
		if f.Type == domain.FieldBoundedInt {
			m.satCol = set.Column(f.Name)
			m.satMax = f.Max
			break
		}
	}

	rows := set.Strings()
	m.table.SetRows(nil)
	m.table.SetColumns(buildColumns(set.Columns, rows))
	m.table.SetRows(buildRows(rows))
	if len(rows) > 0 {
		m.table.GotoBottom()
	} else {
		m.table.SetCursor(0)
	}
}

// SelectedKey returns the date of the highlighted row
func (m *RecordsModel) SelectedKey() (string, bool) {
	row := m.table.SelectedRow()
	if row == nil || m.keyCol >= len(row) {
		return "", false
	}
	return row[m.keyCol], row[m.keyCol] != ""
}

// countKey returns how many loaded entries share key
func (m *RecordsModel) countKey(key string) int {
	n := 0
	for _, rec := range m.set.Records {
		if m.keyCol < len(rec) && domain.SameKey(rec[m.keyCol].String(), key) {
			n++
		}
	}
	return n
}

// SetSize updates the view and table dimensions
func (m *RecordsModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.table.SetWidth(max(width-4, 20))
	m.table.SetHeight(max(height-chrome, 3))
}

// Update handles messages for the records view
func (m *RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordsLoadedMsg:
		m.SetRecords(msg.Set)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		switch {
		case key.Matches(msg, RecordsKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, RecordsKeys.New):
			return m, func() tea.Msg { return SwitchToEntryMsg{} }
		case key.Matches(msg, RecordsKeys.Delete):
			k, ok := m.SelectedKey()
			if !ok {
				m.SetMessage("No entry selected", true)
				return m, nil
			}
			n := m.countKey(k)
			return m, func() tea.Msg { return SwitchToDeleteMsg{Key: k, Entries: n} }
		case key.Matches(msg, RecordsKeys.Export):
			return m, func() tea.Msg { return SwitchToExportMsg{} }
		case key.Matches(msg, RecordsKeys.Copy):
			m.copyCSV()
			return m, nil
		case key.Matches(msg, RecordsKeys.Reload):
			return m, m.Reload()
		case key.Matches(msg, RecordsKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *RecordsModel) copyCSV() {
	data := domain.ExportCSV(m.set, m.diary.Schema())
	if err := copyToClipboard(string(data)); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %d entries as CSV", m.set.Len()), false)
}

// View renders the records view
func (m *RecordsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Nikki"))
	b.WriteString("\n")

	switch {
	case !m.loaded:
		b.WriteString(styles.MutedText.Render("Loading..."))
	case m.set.Len() == 0:
		b.WriteString(styles.Subtitle.Render("No past entries."))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Press n to write the first one."))
	default:
		b.WriteString(m.renderSummary())
		b.WriteString("\n\n")
		b.WriteString(m.table.View())
	}
	b.WriteString("\n\n")

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBar())

	return styles.App.Render(b.String())
}

// renderSummary shows the entry count and the latest satisfaction score
func (m *RecordsModel) renderSummary() string {
	s := styles.MutedText.Render(fmt.Sprintf("%d entries", m.set.Len()))
	if m.satCol < 0 || m.set.Len() == 0 {
		return s
	}
	last := m.set.Records[m.set.Len()-1]
	f, ok := last[m.satCol].Float()
	if !ok {
		return s
	}
	score := int(f)
	sat := lipgloss.NewStyle().Foreground(styles.SatisfactionColor(score, m.satMax)).Bold(true)
	return s + styles.MutedText.Render("  latest ") + sat.Render(fmt.Sprintf("%s %d", m.set.Columns[m.satCol], score))
}

func (m *RecordsModel) renderStatusBar() string {
	bindings := []key.Binding{
		RecordsKeys.New, RecordsKeys.Delete, RecordsKeys.Export,
		RecordsKeys.Copy, RecordsKeys.Reload, RecordsKeys.Help, RecordsKeys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// buildColumns sizes each column to its widest cell within bounds
func buildColumns(headers []string, rows [][]string) []table.Column {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		w := lipgloss.Width(h)
		for _, r := range rows {
			if i < len(r) {
				w = max(w, lipgloss.Width(r[i]))
			}
		}
		cols[i] = table.Column{Title: h, Width: min(max(w, minColumnWidth), maxColumnWidth)}
	}
	return cols
}

func buildRows(rows [][]string) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(r)
	}
	return out
}
