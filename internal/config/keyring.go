// internal/config/keyring.go
package config

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "ezchat"

// SecretStore holds small secrets outside the config file
type SecretStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// KeyringStore keeps secrets in the system keyring
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the ezchat keyring service
func NewKeyringStore() (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &KeyringStore{ring: ring}, nil
}

func (k *KeyringStore) Set(key, value string) error {
	return k.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "ezchat " + key,
	})
}

func (k *KeyringStore) Get(key string) (string, error) {
	item, err := k.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("secret not found: %s: %w", key, err)
	}
	return string(item.Data), nil
}

// Secrets opens the store used for the master key. Tests replace it.
var Secrets = func() (SecretStore, error) {
	return NewKeyringStore()
}
