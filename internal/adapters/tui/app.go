package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"nikki/internal/adapters/tui/views"
	"nikki/internal/application"
	"nikki/internal/logger"
)

// ViewState represents the current view
type ViewState int

const (
	ViewRecords ViewState = iota
	ViewEntry
	ViewDelete
	ViewExport
	ViewHelp
)

// App is the main TUI application model
type App struct {
	diary *application.Diary

	state   ViewState
	records *views.RecordsModel
	entry   *views.EntryModel
	remove  *views.DeleteModel
	export  *views.ExportModel
	help    *views.HelpModel

	// fatal is set when an error ends the program
	fatal error

	width  int
	height int
}

// NewApp creates a new TUI application. Rows a failed delete could not store
// are written to recoveryDir.
func NewApp(diary *application.Diary, recoveryDir string) *App {
	return &App{
		diary:   diary,
		state:   ViewRecords,
		records: views.NewRecordsModel(diary),
		entry:   views.NewEntryModel(diary),
		remove:  views.NewDeleteModel(diary, recoveryDir),
		export:  views.NewExportModel(diary),
		help:    views.NewHelpModel(diary.Schema()),
	}
}

// Err returns the error that ended the program, if any
func (a *App) Err() error {
	return a.fatal
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.records.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.records.SetSize(msg.Width, msg.Height)
		a.entry.SetSize(msg.Width, msg.Height)
		a.remove.SetSize(msg.Width, msg.Height)
		a.export.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToEntryMsg:
		a.state = ViewEntry
		return a, a.entry.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.remove.SetTarget(msg.Key, msg.Entries)
		return a, nil

	case views.SwitchToExportMsg:
		a.state = ViewExport
		return a, a.export.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToRecordsMsg:
		a.state = ViewRecords
		return a, nil

	// Results of writes
	case views.DoneMsg:
		a.state = ViewRecords
		a.records.SetMessage(msg.Message, false)
		logger.Debug("tui", "done", msg.Message)
		return a, a.records.Reload()

	case views.ErrMsg:
		logger.Error("tui operation failed", "error", msg.Err)
		if application.IsFatal(msg.Err) {
			a.fatal = msg.Err
			return a, tea.Quit
		}
		a.state = ViewRecords
		a.records.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.RecordsLoadedMsg:
		_, cmd := a.records.Update(msg)
		return a, cmd
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewRecords:
		_, cmd = a.records.Update(msg)
	case ViewEntry:
		_, cmd = a.entry.Update(msg)
	case ViewDelete:
		_, cmd = a.remove.Update(msg)
	case ViewExport:
		_, cmd = a.export.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewEntry:
		return a.entry.View()
	case ViewDelete:
		return a.remove.View()
	case ViewExport:
		return a.export.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.records.View()
	}
}
