package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nikki/internal/adapters/filesystem"
	"nikki/internal/adapters/tui/styles"
	"nikki/internal/application"
	"nikki/internal/application/commands"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	diary       *application.Diary
	recoveryDir string
}

// NewDeleteModel creates a delete view. Rows a failed rewrite could not
// store are saved under recoveryDir.
func NewDeleteModel(diary *application.Diary, recoveryDir string) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		diary:             diary,
		recoveryDir:       recoveryDir,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return SwitchToRecordsMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Key == "" {
		return ErrMsg{Err: fmt.Errorf("no entry selected")}
	}

	result, err := commands.NewDeleteCommand(m.diary, m.Key).Execute(context.Background())
	if err != nil {
		var rwErr *application.RewriteError
		if errors.As(err, &rwErr) {
			path, werr := filesystem.WriteRecovery(m.recoveryDir, rwErr, time.Now())
			if werr != nil {
				return ErrMsg{Err: fmt.Errorf("%w; saving unstored rows also failed: %v", err, werr)}
			}
			return ErrMsg{Err: fmt.Errorf("%w; unstored rows saved to %s", err, path)}
		}
		return ErrMsg{Err: err}
	}

	return DoneMsg{Message: result.Message}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Entries"))
	b.WriteString("\n\n")

	b.WriteString(styles.ErrorMsg.Render("This action cannot be undone!"))
	b.WriteString("\n\n")

	b.WriteString(RenderTargetInfo(m.Key, m.Entries, "Delete every entry for"))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("  The sheet is rewritten without these rows."))
	b.WriteString("\n\n")

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
