// Package cryptox implements the key-derivation and authenticated
// encryption primitives protecting the vault.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"

	"github.com/facevault/facevault/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the size of the derived vault key in bytes (AES-256).
	KeySize = 32

	// SaltSize is the size of the master-key derivation salt in bytes.
	SaltSize = 32

	nonceSize = 12
)

// DeriveMasterKey derives the 32-byte vault key from a passphrase and a
// persisted salt using Argon2id. The function is deterministic: the same
// (passphrase, salt) pair always yields the same key.
func DeriveMasterKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// MakeVerifier returns the one-way verifier stored on disk for passphrase
// checks. Only the verifier is ever persisted, never the key itself.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// Seal encrypts plaintext with AES-256-GCM under key and returns a
// self-contained blob with the random nonce prepended.
func Seal(plaintext []byte, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(nonceSize)
	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// Open decrypts a blob produced by Seal. Tampering, truncation and a
// wrong key are indistinguishable: all surface as
// common.ErrVaultCorruptOrWrongKey.
func Open(blob []byte, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < nonceSize {
		return nil, common.ErrVaultCorruptOrWrongKey
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrVaultCorruptOrWrongKey
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aesgcm, nil
}
