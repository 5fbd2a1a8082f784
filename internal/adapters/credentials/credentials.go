package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ServiceAccount is the subset of a Google service-account key file the
// diary needs. Unknown fields are preserved in Raw.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`

	raw map[string]any
}

// NormalizePrivateKey turns escaped "\n" sequences into real newlines.
// Secrets pasted through environment variables or TOML stores usually carry
// the key with its newlines escaped.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// Parse decodes service-account JSON and normalizes the private key
func Parse(data []byte) (*ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("decoding service account: %w", err)
	}
	if err := json.Unmarshal(data, &sa.raw); err != nil {
		return nil, fmt.Errorf("decoding service account: %w", err)
	}
	if sa.raw == nil {
		return nil, errors.New("service account document is empty")
	}

	sa.PrivateKey = NormalizePrivateKey(sa.PrivateKey)
	sa.raw["private_key"] = sa.PrivateKey

	if err := sa.Validate(); err != nil {
		return nil, err
	}
	return &sa, nil
}

// Validate checks the fields required to authenticate
func (sa *ServiceAccount) Validate() error {
	if strings.TrimSpace(sa.PrivateKey) == "" {
		return errors.New("service account has no private_key")
	}
	if !strings.Contains(sa.PrivateKey, "-----BEGIN") {
		return errors.New("service account private_key is not PEM encoded")
	}
	if strings.TrimSpace(sa.ClientEmail) == "" {
		return errors.New("service account has no client_email")
	}
	return nil
}

// JSON re-encodes the account, with the normalized key, for client libraries
func (sa *ServiceAccount) JSON() ([]byte, error) {
	if sa.raw != nil {
		return json.Marshal(sa.raw)
	}
	return json.Marshal(sa)
}

// FromFile reads a service-account key file
func FromFile(path string) (*ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	return Parse(data)
}
