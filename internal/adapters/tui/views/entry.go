package views

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"nikki/internal/adapters/tui/styles"
	"nikki/internal/application"
	"nikki/internal/application/commands"
	"nikki/internal/domain"
)

// fieldsPerGroup is how many fields share one page of the entry form
const fieldsPerGroup = 4

// entryValues holds the widget-bound values of one form, one slot per field.
// The slices are never resized once a form points into them.
type entryValues struct {
	schema domain.Schema
	text   []string
	flags  []bool
}

func newEntryValues(schema domain.Schema, today string) *entryValues {
	v := &entryValues{
		schema: schema,
		text:   make([]string, len(schema.Fields)),
		flags:  make([]bool, len(schema.Fields)),
	}
	for i, f := range schema.Fields {
		switch f.Type {
		case domain.FieldDate:
			v.text[i] = today
		case domain.FieldFlag:
			v.flags[i] = f.Default == "1"
		case domain.FieldBoundedInt:
			v.text[i] = f.Default
			if v.text[i] == "" {
				v.text[i] = strconv.Itoa(f.Min)
			}
		case domain.FieldEnum:
			v.text[i] = f.Default
			if v.text[i] == "" && len(f.Options) > 0 {
				v.text[i] = f.Options[0]
			}
		default:
			v.text[i] = f.Default
		}
	}
	return v
}

// Values returns the row in schema order, flags as "1" or "0"
func (v *entryValues) Values() []string {
	out := make([]string, len(v.schema.Fields))
	for i, f := range v.schema.Fields {
		if f.Type == domain.FieldFlag {
			out[i] = "0"
			if v.flags[i] {
				out[i] = "1"
			}
			continue
		}
		out[i] = v.text[i]
	}
	return out
}

// field builds the widget for schema field i
func (v *entryValues) field(i int) huh.Field {
	f := v.schema.Fields[i]
	validate := func(s string) error { return application.ValidateValue(f, s) }

	switch f.Type {
	case domain.FieldBoundedInt:
		opts := make([]string, 0, f.Max-f.Min+1)
		for n := f.Min; n <= f.Max; n++ {
			opts = append(opts, strconv.Itoa(n))
		}
		return huh.NewSelect[string]().
			Title(f.Name).
			Description(fmt.Sprintf("%d (worst) to %d (best)", f.Min, f.Max)).
			Options(huh.NewOptions(opts...)...).
			Inline(true).
			Value(&v.text[i])

	case domain.FieldEnum:
		return huh.NewSelect[string]().
			Title(f.Name).
			Options(huh.NewOptions(f.Options...)...).
			Height(8).
			Value(&v.text[i])

	case domain.FieldFlag:
		return huh.NewConfirm().
			Title(f.Name).
			Affirmative("Yes").
			Negative("No").
			Value(&v.flags[i])

	case domain.FieldText:
		return huh.NewText().
			Title(f.Name).
			Lines(3).
			Value(&v.text[i])

	case domain.FieldDate:
		return huh.NewInput().
			Title(f.Name).
			Placeholder("YYYY-MM-DD").
			Value(&v.text[i]).
			Validate(validate)

	case domain.FieldTime:
		return huh.NewInput().
			Title(f.Name).
			Placeholder("HH:MM").
			Value(&v.text[i]).
			Validate(validate)

	case domain.FieldMinutes:
		return huh.NewInput().
			Title(f.Name).
			Description("Minutes, in steps of 5").
			Placeholder("0").
			Value(&v.text[i]).
			Validate(validate)

	default:
		return huh.NewInput().
			Title(f.Name).
			Value(&v.text[i]).
			Validate(validate)
	}
}

// newEntryForm lays the schema fields out over groups
func newEntryForm(v *entryValues) *huh.Form {
	var groups []*huh.Group
	for start := 0; start < len(v.schema.Fields); start += fieldsPerGroup {
		end := min(start+fieldsPerGroup, len(v.schema.Fields))
		fields := make([]huh.Field, 0, end-start)
		for i := start; i < end; i++ {
			fields = append(fields, v.field(i))
		}
		groups = append(groups, huh.NewGroup(fields...))
	}
	return huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
}

// EntryModel is the new-entry form
type EntryModel struct {
	ViewState
	diary  *application.Diary
	values *entryValues
	form   *huh.Form
}

// NewEntryModel creates a new entry view
func NewEntryModel(diary *application.Diary) *EntryModel {
	return &EntryModel{diary: diary}
}

// Init builds a fresh form with today's date and the field defaults
func (m *EntryModel) Init() tea.Cmd {
	m.ClearMessage()
	m.values = newEntryValues(m.diary.Schema(), domain.Today())
	m.form = newEntryForm(m.values)
	return m.form.Init()
}

// Update handles messages for the entry view
func (m *EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return SwitchToRecordsMsg{} }
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		values := m.values.Values()
		m.form = nil
		return m, func() tea.Msg { return m.save(values) }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return SwitchToRecordsMsg{} }
	}
	return m, cmd
}

func (m *EntryModel) save(values []string) tea.Msg {
	result, err := commands.NewAddCommand(m.diary, values).Execute(context.Background())
	if err != nil {
		return ErrMsg{Err: err}
	}
	return DoneMsg{Message: result.Message}
}

// View renders the entry form
func (m *EntryModel) View() string {
	if m.form == nil {
		return styles.App.Render(styles.MutedText.Render("Saving..."))
	}
	title := styles.Title.Render(fmt.Sprintf("New Entry (schema v%d)", m.diary.Schema().Version))
	help := styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel")
	return styles.App.Render(title + "\n" + m.form.View() + "\n" + help)
}
