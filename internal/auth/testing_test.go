package auth

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/facevault/facevault/internal/logging"
	"github.com/facevault/facevault/internal/store"
	"github.com/facevault/facevault/internal/vision"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testLogger() logging.Logger {
	return logging.NewDefault(slog.LevelError)
}

// eyeAt builds a six-point eye contour whose aspect ratio is h/4 over a
// 4px horizontal axis, so h=1.2 reads as open (0.3) and h=0.4 as
// closed (0.1).
func eyeAt(h float64) []vision.Point {
	return []vision.Point{
		{X: 0, Y: 0},
		{X: 1, Y: -h / 2},
		{X: 3, Y: -h / 2},
		{X: 4, Y: 0},
		{X: 3, Y: h / 2},
		{X: 1, Y: h / 2},
	}
}

func faceAt(h float64) vision.FaceLandmarks {
	return vision.FaceLandmarks{LeftEye: eyeAt(h), RightEye: eyeAt(h)}
}

const (
	earOpen   = 1.2 // EAR 0.3
	earClosed = 0.4 // EAR 0.1
)

// ---- fake detector ----

// fakeDetector implements vision.Detector for unit tests. Zero value
// reports no faces; fields override individual calls.
type fakeDetector struct {
	boxes    []vision.Box
	boxesErr error

	embedding vision.Embedding
	encodeErr error
	// encodeFn, when set, wins over embedding. Lets tests derive the
	// embedding from the frame content.
	encodeFn func(frame vision.Frame, box vision.Box) (vision.Embedding, error)

	landmarks    []vision.FaceLandmarks
	landmarksErr error

	locationCalls int
}

func (f *fakeDetector) Locations(frame vision.Frame) ([]vision.Box, error) {
	f.locationCalls++
	return f.boxes, f.boxesErr
}

func (f *fakeDetector) Encode(frame vision.Frame, box vision.Box) (vision.Embedding, error) {
	if f.encodeFn != nil {
		return f.encodeFn(frame, box)
	}
	return f.embedding, f.encodeErr
}

func (f *fakeDetector) Landmarks(frame vision.Frame) ([]vision.FaceLandmarks, error) {
	if f.landmarksErr != nil {
		return nil, f.landmarksErr
	}
	return f.landmarks, nil
}

func oneFace() []vision.Box {
	return []vision.Box{{Top: 0, Right: 10, Bottom: 10, Left: 0}}
}

// pixelEmbedding derives a unit-scale embedding from the frame pixels,
// so identical frames are at distance 0 and different frames are not.
func pixelEmbedding(frame vision.Frame, _ vision.Box) (vision.Embedding, error) {
	e := make(vision.Embedding, len(frame.Pixels))
	for i, p := range frame.Pixels {
		e[i] = float64(p) / 255
	}
	return e, nil
}
