package ports

// Editor lets the user change text in an external editor
type Editor interface {
	// Edit opens initial in the user's editor and returns the saved text.
	// pattern names the temporary file, as in os.CreateTemp.
	Edit(initial []byte, pattern string) ([]byte, error)
}
