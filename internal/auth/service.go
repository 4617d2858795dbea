package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/facevault/facevault/internal/audit"
	"github.com/facevault/facevault/internal/logging"
	"github.com/facevault/facevault/internal/models"
	"github.com/facevault/facevault/internal/store"
	"github.com/facevault/facevault/internal/vault"
	"github.com/facevault/facevault/internal/vision"
)

// Options configures the file locations and the optional vision backend
// of a Service.
type Options struct {
	VaultPath    string
	AuditLogPath string

	// ImageDir receives registration audit images when non-empty.
	ImageDir string

	// Detector may be nil; face registration and matching then fail with
	// a detection error while the passphrase path stays fully usable.
	Detector vision.Detector
}

// Service is the UI-facing surface of the authentication core. A single
// Service owns one authentication session at a time; methods are meant
// to be called from one goroutine, once per captured frame.
type Service struct {
	Passphrase   *PassphraseService
	Pin          *PinService
	Matcher      *Matcher
	Liveness     *LivenessDetector
	Orchestrator *Orchestrator

	st       *store.Store
	vault    *vault.Store
	auditLog audit.Log
	imageDir string
	log      logging.Logger
}

// Status is the settings-and-session snapshot exposed to the UI.
type Status struct {
	FaceRegistered     bool
	FaceSamples        int
	PinEnabled         bool
	LivenessEnabled    bool
	LivenessVerified   bool
	BlinksDone         int
	BlinksRequired     int
	SecurityLevel      float64
	SecurityName       string
	PinUnlockThreshold float64
	MaxAttempts        int
	RemainingAttempts  int
	LockedOut          bool
	Bootstrapped       bool
	VaultExists        bool
}

// NewService wires the authentication components on top of the given
// store. Settings are loaded from the store, falling back to defaults
// before the user has changed anything.
func NewService(ctx context.Context, st *store.Store, opts Options, log logging.Logger) (*Service, error) {
	cfg := models.DefaultAuthSettings()
	if saved, err := st.Settings.Get(ctx); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	} else if saved != nil {
		cfg = *saved
	}

	auditLog := audit.NewFileLog(opts.AuditLogPath)

	passphrase := NewPassphraseService(st.Secrets, log)
	pin := NewPinService(st.Pins, log)
	matcher := NewMatcher(opts.Detector, st.Faces, opts.ImageDir, log)
	liveness := NewLivenessDetector(opts.Detector, cfg.LivenessEnabled, cfg.BlinksRequired, log)
	orchestrator := NewOrchestrator(cfg, st.Settings, liveness, matcher, pin, auditLog, log)

	return &Service{
		Passphrase:   passphrase,
		Pin:          pin,
		Matcher:      matcher,
		Liveness:     liveness,
		Orchestrator: orchestrator,
		st:           st,
		vault:        vault.NewStore(opts.VaultPath),
		auditLog:     auditLog,
		imageDir:     opts.ImageDir,
		log:          log.With("component", "auth"),
	}, nil
}

// VerifyPassphrase checks (or on first use, bootstraps) the master
// passphrase.
func (s *Service) VerifyPassphrase(ctx context.Context, passphrase []byte) (bool, error) {
	return s.Passphrase.Verify(ctx, passphrase)
}

// DeriveKey derives the vault key from the passphrase.
func (s *Service) DeriveKey(ctx context.Context, passphrase []byte) ([]byte, error) {
	return s.Passphrase.DeriveKey(ctx, passphrase)
}

// LoadVault decrypts the persisted credential mapping.
func (s *Service) LoadVault(ctx context.Context, key []byte) (models.Vault, error) {
	return s.vault.Load(ctx, key)
}

// SaveVault encrypts and atomically persists the credential mapping.
func (s *Service) SaveVault(ctx context.Context, v models.Vault, key []byte) error {
	return s.vault.Save(ctx, v, key)
}

// RegisterFace enrolls a new face sample from the frame.
func (s *Service) RegisterFace(ctx context.Context, frame vision.Frame) (int, error) {
	return s.Matcher.Register(ctx, frame)
}

// MatchFace advances the authentication attempt with one frame.
func (s *Service) MatchFace(ctx context.Context, frame vision.Frame) (*MatchOutcome, error) {
	return s.Orchestrator.ProcessFrame(ctx, frame)
}

// CheckLiveness evaluates one frame for blink liveness only.
func (s *Service) CheckLiveness(ctx context.Context, frame vision.Frame) LivenessResult {
	return s.Orchestrator.CheckLiveness(ctx, frame)
}

// SetupPin validates and stores a quick-unlock PIN.
func (s *Service) SetupPin(ctx context.Context, pin string) error {
	return s.Pin.Setup(ctx, pin)
}

// VerifyPin checks a submitted PIN against the stored credential.
func (s *Service) VerifyPin(ctx context.Context, pin string) error {
	return s.Pin.Verify(ctx, pin)
}

// DisablePin removes the PIN credential.
func (s *Service) DisablePin(ctx context.Context) error {
	return s.Pin.Disable(ctx)
}

// ResetAttempts abandons the current biometric attempt and clears the
// lockout. The caller is expected to fall back to the passphrase flow.
func (s *Service) ResetAttempts() {
	s.Orchestrator.ResetAttempts()
}

// AuthHistory returns the last limit audit log lines, oldest first.
func (s *Service) AuthHistory(ctx context.Context, limit int) ([]string, error) {
	return s.auditLog.Tail(ctx, limit)
}

// Status assembles the settings/session snapshot for the UI.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	samples, err := s.Matcher.SampleCount(ctx)
	if err != nil {
		return nil, err
	}
	pinEnabled, err := s.Pin.Enabled(ctx)
	if err != nil {
		return nil, err
	}
	bootstrapped, err := s.Passphrase.Bootstrapped(ctx)
	if err != nil {
		return nil, err
	}

	cfg := s.Orchestrator.Settings()
	return &Status{
		FaceRegistered:     samples > 0,
		FaceSamples:        samples,
		PinEnabled:         pinEnabled,
		LivenessEnabled:    cfg.LivenessEnabled,
		LivenessVerified:   s.Liveness.Verified(),
		BlinksDone:         s.Liveness.BlinkCount(),
		BlinksRequired:     cfg.BlinksRequired,
		SecurityLevel:      cfg.ConfidenceThreshold,
		SecurityName:       cfg.SecurityLevelName(),
		PinUnlockThreshold: cfg.PinUnlockThreshold * 100,
		MaxAttempts:        cfg.MaxAttempts,
		RemainingAttempts:  s.Orchestrator.RemainingAttempts(),
		LockedOut:          s.Orchestrator.LockedOut(),
		Bootstrapped:       bootstrapped,
		VaultExists:        s.vault.Exists(),
	}, nil
}

// ResetFaceData deletes every enrolled sample and any saved
// registration images. The vault and passphrase are untouched.
func (s *Service) ResetFaceData(ctx context.Context) error {
	if err := s.st.Faces.Clear(ctx); err != nil {
		return err
	}
	s.removeRegistrationImages(ctx)
	s.log.Info(ctx, "face data reset")
	return nil
}

// ResetAll wipes every authentication artifact: face data, PIN,
// settings, audit log and the passphrase verifier. The encrypted vault
// file itself is never deleted.
func (s *Service) ResetAll(ctx context.Context) error {
	if err := s.ResetFaceData(ctx); err != nil {
		return err
	}
	if err := s.Pin.Disable(ctx); err != nil {
		return err
	}
	if err := s.st.Settings.Clear(ctx); err != nil {
		return err
	}
	if err := s.auditLog.Truncate(ctx); err != nil {
		return err
	}
	if err := s.Passphrase.Reset(ctx); err != nil {
		return err
	}

	s.Orchestrator.ResetAttempts()
	cfg := models.DefaultAuthSettings()
	s.Orchestrator.settings = cfg
	s.Liveness.Configure(cfg.LivenessEnabled, cfg.BlinksRequired)

	s.log.Info(ctx, "all authentication data reset")
	return nil
}

func (s *Service) removeRegistrationImages(ctx context.Context) {
	if s.imageDir == "" {
		return
	}
	matches, err := filepath.Glob(filepath.Join(s.imageDir, "registration_*.raw"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			s.log.Warn(ctx, "could not remove registration image", "path", m, "error", err)
		}
	}
}
