package ports

// CredentialStore persists service-account key material outside the
// repository (e.g. the OS keyring)
type CredentialStore interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Delete() error
}
