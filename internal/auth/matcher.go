package auth

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/facevault/facevault/internal/common"
	"github.com/facevault/facevault/internal/filex"
	"github.com/facevault/facevault/internal/logging"
	"github.com/facevault/facevault/internal/models"
	"github.com/facevault/facevault/internal/store/faces"
	"github.com/facevault/facevault/internal/vision"
	"github.com/google/uuid"
)

// Matcher registers face samples and scores frames against the enrolled
// profile.
//
// Confidence is clamp((1 - minDistance) * 100, 0, 100) over the minimum
// embedding distance to any enrolled sample. The formula is fixed:
// stored user thresholds are calibrated against it.
type Matcher struct {
	detector vision.Detector
	faces    faces.Repository
	log      logging.Logger

	// imageDir, when non-empty, receives a raw copy of each registration
	// frame for audit. Write failures are ignored like any best-effort
	// audit artifact.
	imageDir string
}

func NewMatcher(detector vision.Detector, repo faces.Repository, imageDir string, log logging.Logger) *Matcher {
	return &Matcher{
		detector: detector,
		faces:    repo,
		imageDir: imageDir,
		log:      log.With("component", "matcher"),
	}
}

// Registered reports whether at least one face sample is enrolled.
func (m *Matcher) Registered(ctx context.Context) (bool, error) {
	n, err := m.faces.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SampleCount returns the number of enrolled samples.
func (m *Matcher) SampleCount(ctx context.Context) (int, error) {
	return m.faces.Count(ctx)
}

// Register enrolls the face in the frame as a new profile sample. The
// frame must contain exactly one detectable face. Returns the new sample
// count.
func (m *Matcher) Register(ctx context.Context, frame vision.Frame) (int, error) {
	embedding, err := m.detectAndEncode(frame)
	if err != nil {
		return 0, err
	}

	n, err := m.faces.Count(ctx)
	if err != nil {
		return 0, err
	}

	sample := &models.FaceSample{
		ID:        uuid.NewString(),
		Embedding: embedding,
		ImagePath: m.saveRegistrationImage(ctx, frame, n+1),
		CreatedAt: time.Now().UTC(),
	}
	if err := m.faces.Add(ctx, sample); err != nil {
		return 0, fmt.Errorf("save face sample: %w", err)
	}

	m.log.Info(ctx, "face sample registered", "samples", n+1)
	return n + 1, nil
}

// Match scores the frame against the enrolled profile and returns a
// confidence percentage in [0,100]. With no enrolled samples it fails
// with common.ErrNotRegistered before the detector is even invoked.
func (m *Matcher) Match(ctx context.Context, frame vision.Frame) (float64, error) {
	samples, err := m.faces.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, common.ErrNotRegistered
	}

	embedding, err := m.detectAndEncode(frame)
	if err != nil {
		return 0, err
	}

	minDist := math.Inf(1)
	for _, s := range samples {
		if d := vision.Distance(s.Embedding, embedding); d < minDist {
			minDist = d
		}
	}

	confidence := (1 - minDist) * 100
	confidence = math.Max(0, math.Min(100, confidence))
	return confidence, nil
}

func (m *Matcher) detectAndEncode(frame vision.Frame) (vision.Embedding, error) {
	if m.detector == nil {
		return nil, common.ErrDetectorUnavailable
	}

	locations, err := m.detector.Locations(frame)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrEncodingFailed, err)
	}
	if len(locations) == 0 {
		return nil, common.ErrNoFaceDetected
	}
	if len(locations) > 1 {
		return nil, common.ErrMultipleFacesDetected
	}

	embedding, err := m.detector.Encode(frame, locations[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrEncodingFailed, err)
	}
	if len(embedding) == 0 {
		return nil, common.ErrEncodingFailed
	}
	return embedding, nil
}

func (m *Matcher) saveRegistrationImage(ctx context.Context, frame vision.Frame, n int) string {
	if m.imageDir == "" || len(frame.Pixels) == 0 {
		return ""
	}
	path := filepath.Join(m.imageDir, fmt.Sprintf("registration_%d.raw", n))
	if err := filex.WriteFileAtomic(path, frame.Pixels, 0o600); err != nil {
		m.log.Warn(ctx, "could not save registration image", "error", err)
		return ""
	}
	return path
}
