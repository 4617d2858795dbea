package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/facevault/facevault/internal/audit"
	"github.com/facevault/facevault/internal/common"
	"github.com/facevault/facevault/internal/logging"
	"github.com/facevault/facevault/internal/models"
	"github.com/facevault/facevault/internal/store/settings"
	"github.com/facevault/facevault/internal/vision"
)

// State of the authentication attempt.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingLiveness State = "awaiting_liveness"
	StateAwaitingMatch    State = "awaiting_match"
	StateVerified         State = "verified"
	StateLockedOut        State = "locked_out"
)

// MatchOutcome is the decision produced for one frame.
type MatchOutcome struct {
	// Success is true when liveness is satisfied and confidence reached
	// the threshold.
	Success bool

	// Confidence percentage in [0,100]. Zero while liveness is still
	// outstanding (matching has not been attempted yet).
	Confidence float64

	// CanUsePin is true only when confidence reached the PIN-unlock
	// threshold, liveness is verified, and a PIN is configured. It opens
	// the fast path: the UI may accept the PIN instead of the full
	// passphrase for the subsequent unlock step.
	CanUsePin bool

	// Blink progress, populated while liveness gates matching.
	BlinkCount      int
	BlinksRemaining int

	RemainingAttempts int
	State             State
	Message           string
}

// Orchestrator ties liveness, face matching, PIN availability and the
// lockout policy into per-frame authorization decisions.
//
// Ordering guarantee: while liveness is enabled and not yet verified,
// the matcher is never invoked. Once locked out, the matcher is never
// invoked until an explicit ResetAttempts (switching to the passphrase
// fallback); lockout never clears by timeout.
type Orchestrator struct {
	settings     models.AuthSettings
	settingsRepo settings.Repository
	liveness     *LivenessDetector
	matcher      *Matcher
	pin          *PinService
	auditLog     audit.Log
	log          logging.Logger

	attempts int
	state    State
}

func NewOrchestrator(
	cfg models.AuthSettings,
	settingsRepo settings.Repository,
	liveness *LivenessDetector,
	matcher *Matcher,
	pin *PinService,
	auditLog audit.Log,
	log logging.Logger,
) *Orchestrator {
	return &Orchestrator{
		settings:     cfg,
		settingsRepo: settingsRepo,
		liveness:     liveness,
		matcher:      matcher,
		pin:          pin,
		auditLog:     auditLog,
		log:          log.With("component", "orchestrator"),
		state:        StateIdle,
	}
}

// ProcessFrame consumes one captured frame and advances the attempt.
//
// Returns common.ErrLockedOut without invoking the matcher when the
// attempt ceiling has been reached. Detection errors (no face, multiple
// faces, encoding failure) are returned as errors and do not burn an
// attempt; the caller retries on the next frame.
func (o *Orchestrator) ProcessFrame(ctx context.Context, frame vision.Frame) (*MatchOutcome, error) {
	if o.state == StateLockedOut {
		return nil, common.ErrLockedOut
	}

	if o.settings.LivenessEnabled && !o.liveness.Verified() {
		res := o.liveness.CheckFrame(ctx, frame)
		if res.FailedOpen {
			o.auditFailOpen(ctx)
		}
		if !res.Verified {
			o.state = StateAwaitingLiveness
			return &MatchOutcome{
				BlinkCount:        res.BlinkCount,
				BlinksRemaining:   res.Remaining,
				RemainingAttempts: o.RemainingAttempts(),
				State:             o.state,
				Message:           res.Message,
			}, nil
		}
	}

	o.state = StateAwaitingMatch

	confidence, err := o.matcher.Match(ctx, frame)
	if err != nil {
		return nil, err
	}

	threshold := o.settings.ConfidenceThreshold * 100
	pinThreshold := o.settings.PinUnlockThreshold * 100

	pinEnabled, err := o.pin.Enabled(ctx)
	if err != nil {
		o.log.Warn(ctx, "could not read pin status", "error", err)
		pinEnabled = false
	}

	canUsePin := confidence >= pinThreshold && o.liveness.Verified() && pinEnabled
	success := confidence >= threshold

	o.auditAttempt(ctx, success, canUsePin, confidence, threshold)

	if success {
		o.attempts = 0
		o.state = StateVerified
		msg := fmt.Sprintf("Verified (%.0f%%)", confidence)
		if canUsePin {
			msg = fmt.Sprintf("Verified (%.0f%%) - PIN unlock available!", confidence)
		}
		return &MatchOutcome{
			Success:           true,
			Confidence:        confidence,
			CanUsePin:         canUsePin,
			RemainingAttempts: o.settings.MaxAttempts,
			State:             o.state,
			Message:           msg,
		}, nil
	}

	o.attempts++
	if o.attempts >= o.settings.MaxAttempts {
		o.state = StateLockedOut
		o.log.Warn(ctx, "biometric attempts exhausted", "attempts", o.attempts)
	}

	remaining := o.RemainingAttempts()
	return &MatchOutcome{
		Confidence:        confidence,
		RemainingAttempts: remaining,
		State:             o.state,
		Message: fmt.Sprintf("Low: %.0f%% (need %.0f%%) - %d left",
			confidence, threshold, remaining),
	}, nil
}

// CheckLiveness evaluates a single frame for liveness only, without
// advancing to matching. Fail-open results are audited.
func (o *Orchestrator) CheckLiveness(ctx context.Context, frame vision.Frame) LivenessResult {
	res := o.liveness.CheckFrame(ctx, frame)
	if res.FailedOpen {
		o.auditFailOpen(ctx)
	}
	return res
}

// MatchConfidence scores a frame without burning an attempt or writing
// an audit entry. Diagnostic use only.
func (o *Orchestrator) MatchConfidence(ctx context.Context, frame vision.Frame) (float64, error) {
	return o.matcher.Match(ctx, frame)
}

// ResetAttempts abandons the current attempt: clears the failure
// counter and the liveness session and returns to Idle. This is the only
// way out of LockedOut.
func (o *Orchestrator) ResetAttempts() {
	o.attempts = 0
	o.liveness.Reset()
	o.state = StateIdle
}

// LockedOut reports whether the attempt ceiling has been reached.
func (o *Orchestrator) LockedOut() bool {
	return o.state == StateLockedOut
}

// RemainingAttempts returns how many consecutive failures are left
// before lockout.
func (o *Orchestrator) RemainingAttempts() int {
	if r := o.settings.MaxAttempts - o.attempts; r > 0 {
		return r
	}
	return 0
}

// State returns the current attempt state.
func (o *Orchestrator) State() State {
	return o.state
}

// Settings returns a snapshot of the active policy.
func (o *Orchestrator) Settings() models.AuthSettings {
	return o.settings
}

// SetConfidenceThreshold sets the match threshold (fraction in [0,1])
// and persists immediately.
func (o *Orchestrator) SetConfidenceThreshold(ctx context.Context, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("confidence threshold must be in [0,1], got %v", v)
	}
	o.settings.ConfidenceThreshold = v
	return o.persistSettings(ctx)
}

// SetPinUnlockThreshold sets the fast-path threshold (fraction in [0,1])
// and persists immediately.
func (o *Orchestrator) SetPinUnlockThreshold(ctx context.Context, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("pin unlock threshold must be in [0,1], got %v", v)
	}
	o.settings.PinUnlockThreshold = v
	return o.persistSettings(ctx)
}

// SetMaxAttempts sets the lockout ceiling (minimum 1) and persists
// immediately.
func (o *Orchestrator) SetMaxAttempts(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", n)
	}
	o.settings.MaxAttempts = n
	return o.persistSettings(ctx)
}

// SetLivenessEnabled toggles the liveness factor and persists
// immediately.
func (o *Orchestrator) SetLivenessEnabled(ctx context.Context, enabled bool) error {
	o.settings.LivenessEnabled = enabled
	o.liveness.Configure(enabled, o.settings.BlinksRequired)
	return o.persistSettings(ctx)
}

// SetBlinksRequired sets the blink requirement, clamped to 1..5, and
// persists immediately.
func (o *Orchestrator) SetBlinksRequired(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	if n > 5 {
		n = 5
	}
	o.settings.BlinksRequired = n
	o.liveness.Configure(o.settings.LivenessEnabled, n)
	return o.persistSettings(ctx)
}

func (o *Orchestrator) persistSettings(ctx context.Context) error {
	if err := o.settingsRepo.Save(ctx, &o.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (o *Orchestrator) auditAttempt(ctx context.Context, success, canUsePin bool, confidence, threshold float64) {
	outcome := audit.OutcomeFailure
	if success {
		outcome = audit.OutcomeSuccess
	}
	path := audit.PathPassphrase
	if canUsePin {
		path = audit.PathPin
	}
	e := audit.Entry{
		Timestamp:  time.Now(),
		Outcome:    outcome,
		UnlockPath: path,
		Confidence: confidence,
		Threshold:  threshold,
	}
	if err := o.auditLog.Append(ctx, e); err != nil {
		o.log.Warn(ctx, "could not append audit entry", "error", err)
	}
}

func (o *Orchestrator) auditFailOpen(ctx context.Context) {
	e := audit.Entry{
		Timestamp:  time.Now(),
		Outcome:    audit.OutcomeSkipped,
		UnlockPath: audit.PathPassphrase,
		Threshold:  o.settings.ConfidenceThreshold * 100,
	}
	if err := o.auditLog.Append(ctx, e); err != nil {
		o.log.Warn(ctx, "could not append audit entry", "error", err)
	}
}
