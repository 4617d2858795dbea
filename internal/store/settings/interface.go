package settings

import (
	"context"

	"github.com/facevault/facevault/internal/models"
)

// Repository persists the single process-wide AuthSettings row.
type Repository interface {
	// Get returns the stored settings, or nil if none were saved yet.
	Get(ctx context.Context) (*models.AuthSettings, error)

	// Save upserts the settings row.
	Save(ctx context.Context, s *models.AuthSettings) error

	// Clear removes the settings row, reverting to defaults on next load.
	Clear(ctx context.Context) error
}
