package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"nikki/internal/ports"
)

const (
	// KeyringService is the keyring service name credentials are stored under
	KeyringService = "nikki"
	// KeyringUser is the keyring account name for the service-account JSON
	KeyringUser = "service-account"
)

var (
	// ErrNotFound is returned when no credentials are stored in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Keyring implements ports.CredentialStore on the OS keyring
type Keyring struct {
	Service string
	User    string
}

// Ensure Keyring implements CredentialStore
var _ ports.CredentialStore = (*Keyring)(nil)

// NewKeyring returns a store using the default service and user names
func NewKeyring() *Keyring {
	return &Keyring{Service: KeyringService, User: KeyringUser}
}

// Load returns the stored service-account JSON
func (k *Keyring) Load() ([]byte, error) {
	secret, err := keyring.Get(k.Service, k.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return []byte(secret), nil
}

// Save stores service-account JSON after checking it parses
func (k *Keyring) Save(data []byte) error {
	if _, err := Parse(data); err != nil {
		return err
	}
	if err := keyring.Set(k.Service, k.User, string(data)); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the stored credentials
func (k *Keyring) Delete() error {
	if err := keyring.Delete(k.Service, k.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// FromStore loads and parses credentials from a store
func FromStore(store ports.CredentialStore) (*ServiceAccount, error) {
	data, err := store.Load()
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
