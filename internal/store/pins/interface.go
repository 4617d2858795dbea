package pins

import (
	"context"

	"github.com/facevault/facevault/internal/models"
)

// Repository persists the quick-PIN credential. The credential row
// existing is the single source of truth for "PIN enabled".
type Repository interface {
	// Get returns the stored credential, or nil if no PIN is configured.
	Get(ctx context.Context) (*models.PinCredential, error)

	// Save stores the credential, replacing any previous one.
	Save(ctx context.Context, c *models.PinCredential) error

	// Delete removes the credential, disabling the PIN.
	Delete(ctx context.Context) error
}
