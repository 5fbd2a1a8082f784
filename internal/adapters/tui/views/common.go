package views

import (
	"nikki/internal/adapters/tui/styles"
	"nikki/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// RenderMessage renders the current message, or nothing
func (s *ViewState) RenderMessage() string {
	if s.Message == "" {
		return ""
	}
	if s.MessageErr {
		return styles.ErrorMsg.Render(s.Message)
	}
	return styles.Success.Render(s.Message)
}

// View switching messages

type SwitchToRecordsMsg struct{}

type SwitchToEntryMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToExportMsg struct{}

// SwitchToDeleteMsg asks for confirmation before deleting every entry of Key
type SwitchToDeleteMsg struct {
	Key     string
	Entries int
}

// RecordsLoadedMsg carries a fresh read of the sheet
type RecordsLoadedMsg struct {
	Set domain.RecordSet
}

// ErrMsg reports a failed operation. Fatal errors end the program.
type ErrMsg struct {
	Err error
}

// DoneMsg reports a finished write and sends the user back to the records
type DoneMsg struct {
	Message string
}
