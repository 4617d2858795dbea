// Package common defines shared constants and sentinel errors used across
// FaceVault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input validation errors. Reported to the caller, no state mutated.
	ErrEmptyPassphrase = errors.New("passphrase must not be empty")
	ErrPinNotDigits    = errors.New("PIN must contain only digits")
	ErrPinBadLength    = errors.New("PIN must be 4-6 digits")

	// Detection errors. Retried by the caller on the next frame, never fatal.
	ErrNoFaceDetected        = errors.New("no face detected")
	ErrMultipleFacesDetected = errors.New("multiple faces detected")
	ErrEncodingFailed        = errors.New("face encoding failed")
	ErrEyesNotDetected       = errors.New("eyes not detected")
	ErrDetectorUnavailable   = errors.New("face detector not available")

	// Authentication failures. Counted toward lockout where applicable.
	ErrNotRegistered = errors.New("no face registered")
	ErrLowConfidence = errors.New("confidence below threshold")
	ErrIncorrectPin  = errors.New("incorrect PIN")
	ErrPinNotEnabled = errors.New("quick PIN not enabled")
	ErrLockedOut     = errors.New("too many failed attempts")

	// Integrity errors. Fatal to the current unlock attempt, never to the
	// process; indistinguishable by design from a wrong key.
	ErrVaultCorruptOrWrongKey = errors.New("incorrect master passphrase or corrupted vault")
)
