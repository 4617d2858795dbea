// Package vision defines the frame model and the face-detection
// capability the authentication core depends on. The actual detector is
// an external collaborator (camera pipeline, ML runtime); the core only
// needs bounding boxes, fixed-length embeddings and eye landmarks.
package vision

// Point is a 2D coordinate in frame pixel space.
type Point struct {
	X float64
	Y float64
}

// Box is a face bounding box within a frame.
type Box struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Embedding is a fixed-dimension face descriptor vector.
type Embedding []float64

// FaceLandmarks holds the eye contour points of one detected face.
// Each eye needs at least six points for the aspect-ratio metric,
// ordered [outer corner, top 1, top 2, inner corner, bottom 2, bottom 1].
type FaceLandmarks struct {
	LeftEye  []Point
	RightEye []Point
}

// Frame is a rectangular pixel buffer handed to the core by value for a
// single evaluation. The core must not retain it past the call.
type Frame struct {
	Width  int
	Height int
	Pixels []byte
}

// Detector is the face-detection capability required by registration,
// matching and liveness. Implementations wrap whatever vision backend
// the host application ships.
type Detector interface {
	// Locations returns the bounding boxes of all faces in the frame.
	Locations(frame Frame) ([]Box, error)

	// Encode computes the embedding of the face inside the given box.
	Encode(frame Frame, box Box) (Embedding, error)

	// Landmarks returns eye landmarks for each face in the frame, in the
	// same order as Locations.
	Landmarks(frame Frame) ([]FaceLandmarks, error)
}
