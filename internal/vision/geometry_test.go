package vision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistance_Identical(t *testing.T) {
	e := Embedding{0.1, 0.2, 0.3}
	require.Equal(t, 0.0, Distance(e, e))
}

func TestDistance_Known(t *testing.T) {
	a := Embedding{0, 0}
	b := Embedding{3, 4}
	require.InDelta(t, 5.0, Distance(a, b), 1e-9)
}

func TestDistance_DimensionMismatch(t *testing.T) {
	a := Embedding{1, 2}
	b := Embedding{1, 2, 3}
	require.True(t, math.IsInf(Distance(a, b), 1))
}

// openEye and closedEye model the six-point eye contour at different
// degrees of openness over the same 4px horizontal axis.
func eyeWithHeight(h float64) []Point {
	return []Point{
		{0, 0},       // outer corner
		{1, -h / 2},  // top 1
		{3, -h / 2},  // top 2
		{4, 0},       // inner corner
		{3, h / 2},   // bottom 2
		{1, h / 2},   // bottom 1
	}
}

func TestEyeAspectRatio_OpenVsClosed(t *testing.T) {
	open := EyeAspectRatio(eyeWithHeight(2.4))
	closed := EyeAspectRatio(eyeWithHeight(0.4))

	require.Greater(t, open, 0.25)
	require.Less(t, closed, 0.1)
	require.Greater(t, open, closed)
}

func TestEyeAspectRatio_TooFewPoints(t *testing.T) {
	require.Equal(t, 0.0, EyeAspectRatio([]Point{{0, 0}, {1, 1}}))
}

func TestEyeAspectRatio_DegenerateAxis(t *testing.T) {
	pts := []Point{{0, 0}, {0, 1}, {0, 2}, {0, 0}, {0, -2}, {0, -1}}
	require.Equal(t, 0.0, EyeAspectRatio(pts))
}
