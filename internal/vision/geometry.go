package vision

import "math"

// Distance returns the Euclidean distance between two embeddings.
// Vectors of different dimensions are maximally distant.
func Distance(a, b Embedding) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// EyeAspectRatio computes the openness metric of one eye from its six
// contour points: (|p1-p5| + |p2-p4|) / (2*|p0-p3|). The ratio drops
// toward zero as the eyelid closes. Fewer than six points or a
// degenerate horizontal axis yields 0.
func EyeAspectRatio(eye []Point) float64 {
	if len(eye) < 6 {
		return 0
	}
	a := dist(eye[1], eye[5])
	b := dist(eye[2], eye[4])
	c := dist(eye[0], eye[3])
	if c <= 0 {
		return 0
	}
	return (a + b) / (2 * c)
}

func dist(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}
