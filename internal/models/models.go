// Package models defines the persisted data types shared by the stores
// and the authentication services.
package models

import (
	"time"

	"github.com/facevault/facevault/internal/vision"
)

// Credential is one vault record value: an opaque username/password pair
// keyed by service name inside the encrypted vault blob.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Vault is the decrypted credential mapping. Service names are
// case-sensitive and unique.
type Vault map[string]Credential

// FaceSample is one registered face embedding. ImagePath optionally
// points at the frame saved for audit at registration time.
type FaceSample struct {
	ID        string
	Embedding vision.Embedding
	ImagePath string
	CreatedAt time.Time
}

// PinCredential is the salted, iterated hash of the quick-unlock PIN.
// A stored credential is what "PIN enabled" means; deleting it disables
// the PIN.
type PinCredential struct {
	Hash      []byte
	Salt      []byte
	CreatedAt time.Time
}

// MasterSecret is the persisted passphrase verification record. It is
// written exactly once, on first successful use, and replaced only by an
// explicit reset. The vault key itself is never stored.
type MasterSecret struct {
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
