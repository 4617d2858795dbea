package models

// Named security levels for the match-confidence threshold.
const (
	SecurityLow      = 0.50
	SecurityMedium   = 0.60
	SecurityHigh     = 0.70
	SecurityFaceOnly = 0.80
	SecurityMaximum  = 0.90
)

// AuthSettings holds the process-wide authentication policy. Thresholds
// are fractions in [0,1]; the matcher reports confidence as a percentage
// of the same scale.
type AuthSettings struct {
	ConfidenceThreshold float64
	PinUnlockThreshold  float64
	MaxAttempts         int
	LivenessEnabled     bool
	BlinksRequired      int
}

// DefaultAuthSettings returns the policy used before the user changes
// anything: medium confidence, high bar for the PIN fast path, three
// attempts, two blinks.
func DefaultAuthSettings() AuthSettings {
	return AuthSettings{
		ConfidenceThreshold: SecurityMedium,
		PinUnlockThreshold:  SecurityFaceOnly,
		MaxAttempts:         3,
		LivenessEnabled:     true,
		BlinksRequired:      2,
	}
}

// SecurityLevelName maps the confidence threshold to a human label.
func (s AuthSettings) SecurityLevelName() string {
	switch {
	case s.ConfidenceThreshold >= SecurityMaximum:
		return "Maximum"
	case s.ConfidenceThreshold >= SecurityFaceOnly:
		return "High"
	case s.ConfidenceThreshold >= SecurityHigh:
		return "Medium-High"
	case s.ConfidenceThreshold >= SecurityMedium:
		return "Medium"
	default:
		return "Low"
	}
}
