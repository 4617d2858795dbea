package faces

import (
	"context"

	"github.com/facevault/facevault/internal/models"
)

// Repository stores the enrolled face embedding samples (the face
// profile). Samples only ever accumulate through registration and are
// cleared wholesale by a reset.
type Repository interface {
	// Add appends one registered sample to the profile.
	Add(ctx context.Context, sample *models.FaceSample) error

	// GetAll returns all samples in registration order.
	GetAll(ctx context.Context) ([]models.FaceSample, error)

	// Count returns the number of registered samples.
	Count(ctx context.Context) (int, error)

	// Clear removes every sample.
	Clear(ctx context.Context) error
}
