// Package credential stores the remembered login in the system keyring so a
// restart can sign the user back in without prompting.
package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "smarttodo"

const (
	keyUsername = "remembered-username"
	keyPassword = "remembered-password"
)

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/smarttodo/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("smarttodo-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// SaveLogin remembers the credentials of a successful login.
func SaveLogin(username, password string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	if err := ring.Set(keyring.Item{Key: keyUsername, Data: []byte(username)}); err != nil {
		return fmt.Errorf("saving remembered username: %w", err)
	}
	if err := ring.Set(keyring.Item{Key: keyPassword, Data: []byte(password)}); err != nil {
		return fmt.Errorf("saving remembered password: %w", err)
	}
	return nil
}

// LoadLogin returns the remembered credentials, or ok=false when none are
// stored.
func LoadLogin() (username, password string, ok bool) {
	ring, err := openKeyring()
	if err != nil {
		return "", "", false
	}

	u, err := ring.Get(keyUsername)
	if err != nil {
		return "", "", false
	}
	p, err := ring.Get(keyPassword)
	if err != nil {
		return "", "", false
	}
	return string(u.Data), string(p.Data), true
}

// ClearLogin forgets any remembered credentials. Missing entries are not an
// error.
func ClearLogin() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	if err := ring.Remove(keyUsername); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("clearing remembered username: %w", err)
	}
	if err := ring.Remove(keyPassword); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("clearing remembered password: %w", err)
	}
	return nil
}
