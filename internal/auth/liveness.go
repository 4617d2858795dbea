package auth

import (
	"context"
	"fmt"

	"github.com/facevault/facevault/internal/logging"
	"github.com/facevault/facevault/internal/vision"
)

// earThreshold is the averaged eye-aspect-ratio below which the eyes are
// considered closed. Must stay in sync with enrolled-user expectations;
// changing it changes what counts as a blink.
const earThreshold = 0.22

type eyeState int

const (
	eyeOpen eyeState = iota
	eyeClosed
)

// LivenessResult is the outcome of evaluating one frame.
type LivenessResult struct {
	// Verified is true once enough blinks have been observed, when
	// liveness is disabled, or when an internal vision error forced the
	// check to fail open.
	Verified bool

	// BlinkCount is the number of full blinks seen this session.
	BlinkCount int

	// Remaining is how many more blinks are needed (0 when verified).
	Remaining int

	// FailedOpen marks results produced by the fail-open path so callers
	// can audit them distinguishably from a real blink sequence.
	FailedOpen bool

	Message string
}

// LivenessDetector is the per-attempt blink state machine. A full blink
// is a close-then-open transition of the averaged eye aspect ratio
// across earThreshold. Once verified, the session stays verified until
// Reset.
//
// Liveness is a soft anti-spoofing signal, not the authorization
// authority: unexpected vision failures fail open rather than deny
// access, but such results never set the sticky verified flag, so the
// PIN fast path stays closed.
type LivenessDetector struct {
	detector vision.Detector
	log      logging.Logger

	enabled  bool
	required int

	blinkCount int
	state      eyeState
	verified   bool
}

func NewLivenessDetector(detector vision.Detector, enabled bool, blinksRequired int, log logging.Logger) *LivenessDetector {
	return &LivenessDetector{
		detector: detector,
		log:      log.With("component", "liveness"),
		enabled:  enabled,
		required: blinksRequired,
		state:    eyeOpen,
	}
}

// Configure updates the policy. Takes effect immediately; progress of
// the current session is kept.
func (d *LivenessDetector) Configure(enabled bool, blinksRequired int) {
	d.enabled = enabled
	d.required = blinksRequired
}

// Verified reports the sticky session state. Disabled liveness is always
// verified.
func (d *LivenessDetector) Verified() bool {
	return !d.enabled || d.verified
}

// BlinkCount returns the number of full blinks seen this session.
func (d *LivenessDetector) BlinkCount() int {
	return d.blinkCount
}

// Reset clears the session: blink count, eye state and verified flag.
// Called at the start of every authentication attempt and after lockout
// recovery.
func (d *LivenessDetector) Reset() {
	d.blinkCount = 0
	d.state = eyeOpen
	d.verified = false
}

// CheckFrame consumes one frame. Inconclusive frames (no face, no eye
// landmarks) report not-verified without resetting progress. Internal
// detector failures fail open.
func (d *LivenessDetector) CheckFrame(ctx context.Context, frame vision.Frame) LivenessResult {
	if !d.enabled {
		return LivenessResult{Verified: true, Message: "Liveness disabled"}
	}
	if d.verified {
		return LivenessResult{Verified: true, BlinkCount: d.blinkCount, Message: "Already verified"}
	}
	if d.detector == nil {
		return d.failOpen(ctx, "no detector available")
	}

	landmarksList, err := d.detector.Landmarks(frame)
	if err != nil {
		return d.failOpen(ctx, err.Error())
	}
	if len(landmarksList) == 0 {
		return d.inconclusive("No face for liveness")
	}

	landmarks := landmarksList[0]
	if len(landmarks.LeftEye) < 6 || len(landmarks.RightEye) < 6 {
		return d.inconclusive("Eyes not detected")
	}

	leftEAR := vision.EyeAspectRatio(landmarks.LeftEye)
	rightEAR := vision.EyeAspectRatio(landmarks.RightEye)
	avgEAR := (leftEAR + rightEAR) / 2

	// Close-then-open is one blink. Sustained closure does not count
	// twice.
	if avgEAR < earThreshold {
		if d.state == eyeOpen {
			d.state = eyeClosed
		}
	} else {
		if d.state == eyeClosed {
			d.state = eyeOpen
			d.blinkCount++
			d.log.Debug(ctx, "blink detected", "count", d.blinkCount, "required", d.required)
		}
	}

	if d.blinkCount >= d.required {
		d.verified = true
		return LivenessResult{
			Verified:   true,
			BlinkCount: d.blinkCount,
			Message:    fmt.Sprintf("Liveness verified! (%d blinks)", d.blinkCount),
		}
	}

	remaining := d.required - d.blinkCount
	return LivenessResult{
		BlinkCount: d.blinkCount,
		Remaining:  remaining,
		Message:    fmt.Sprintf("Blink %d more time(s)", remaining),
	}
}

func (d *LivenessDetector) inconclusive(msg string) LivenessResult {
	return LivenessResult{
		BlinkCount: d.blinkCount,
		Remaining:  d.required - d.blinkCount,
		Message:    msg,
	}
}

func (d *LivenessDetector) failOpen(ctx context.Context, reason string) LivenessResult {
	d.log.Warn(ctx, "liveness check failed open", "reason", reason)
	return LivenessResult{
		Verified:   true,
		BlinkCount: d.blinkCount,
		FailedOpen: true,
		Message:    "Liveness check skipped: " + reason,
	}
}
