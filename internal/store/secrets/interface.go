package secrets

import (
	"context"

	"github.com/facevault/facevault/internal/models"
)

// Repository persists the master-secret record (derivation salt and
// passphrase verifier). The passphrase service enforces write-once
// bootstrap semantics on top of this interface.
type Repository interface {
	// Get returns the stored record, or nil before first bootstrap.
	Get(ctx context.Context) (*models.MasterSecret, error)

	// Save stores the record.
	Save(ctx context.Context, s *models.MasterSecret) error

	// Delete removes the record (explicit reset only).
	Delete(ctx context.Context) error
}
