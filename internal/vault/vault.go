// Package vault persists the credential mapping as a single
// authenticated-encrypted blob on disk.
package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/facevault/facevault/internal/common"
	"github.com/facevault/facevault/internal/cryptox"
	"github.com/facevault/facevault/internal/filex"
	"github.com/facevault/facevault/internal/models"
)

// Store reads and writes the encrypted vault file. The file is replaced
// atomically on save; a crash mid-write never leaves a torn blob behind.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Encrypt serializes the mapping to JSON and seals it under key.
func Encrypt(v models.Vault, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vault: %w", err)
	}
	return cryptox.Seal(plaintext, key)
}

// Decrypt opens a sealed blob and decodes the mapping. Authentication
// failure surfaces as common.ErrVaultCorruptOrWrongKey; by design a
// wrong key and a corrupted file are indistinguishable.
func Decrypt(blob []byte, key []byte) (models.Vault, error) {
	plaintext, err := cryptox.Open(blob, key)
	if err != nil {
		return nil, err
	}
	var v models.Vault
	if err := json.Unmarshal(plaintext, &v); err != nil {
		return nil, common.ErrVaultCorruptOrWrongKey
	}
	if v == nil {
		v = models.Vault{}
	}
	return v, nil
}

// Load reads and decrypts the vault file. A missing file is a first run
// and yields an empty mapping.
func (s *Store) Load(ctx context.Context, key []byte) (models.Vault, error) {
	blob, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Vault{}, nil
		}
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}
	return Decrypt(blob, key)
}

// Save encrypts the mapping and atomically replaces the vault file.
func (s *Store) Save(ctx context.Context, v models.Vault, key []byte) error {
	blob, err := Encrypt(v, key)
	if err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(s.path, blob, 0o600); err != nil {
		return fmt.Errorf("failed to write vault file: %w", err)
	}
	return nil
}

// Exists reports whether a vault file has been created yet.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
