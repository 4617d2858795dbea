package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/facevault/facevault/internal/common"
	"github.com/facevault/facevault/internal/logging"
	"github.com/facevault/facevault/internal/models"
	"github.com/facevault/facevault/internal/store/pins"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pinMinLen     = 4
	pinMaxLen     = 6
	pinSaltSize   = 16
	pinIterations = 100_000
	pinHashSize   = 32
)

// PinService manages the quick-unlock PIN: a short numeric code that,
// after a high-confidence face match, substitutes for the passphrase
// prompt in the UI flow. The PIN never derives or wraps the vault key.
type PinService struct {
	pins pins.Repository
	log  logging.Logger
}

func NewPinService(repo pins.Repository, log logging.Logger) *PinService {
	return &PinService{pins: repo, log: log.With("component", "pin")}
}

// Setup validates and stores a new PIN, replacing any previous one.
// The PIN must be 4-6 characters, all digits. Nothing is written when
// validation fails.
func (s *PinService) Setup(ctx context.Context, pin string) error {
	if err := validatePin(pin); err != nil {
		return err
	}

	salt := common.GenerateRandByteArray(pinSaltSize)
	cred := &models.PinCredential{
		Hash:      hashPin(pin, salt),
		Salt:      salt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.pins.Save(ctx, cred); err != nil {
		return fmt.Errorf("save pin credential: %w", err)
	}

	s.log.Info(ctx, "quick PIN configured")
	return nil
}

// Verify recomputes the stored hash for the submitted PIN and compares
// in constant time. Returns common.ErrPinNotEnabled when no PIN is
// configured and common.ErrIncorrectPin on mismatch.
func (s *PinService) Verify(ctx context.Context, pin string) error {
	cred, err := s.pins.Get(ctx)
	if err != nil {
		return fmt.Errorf("load pin credential: %w", err)
	}
	if cred == nil {
		return common.ErrPinNotEnabled
	}

	candidate := hashPin(pin, cred.Salt)
	if subtle.ConstantTimeCompare(cred.Hash, candidate) != 1 {
		return common.ErrIncorrectPin
	}
	return nil
}

// Disable deletes the stored credential. Irreversible without re-setup.
func (s *PinService) Disable(ctx context.Context) error {
	if err := s.pins.Delete(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "quick PIN disabled")
	return nil
}

// Enabled reports whether a PIN credential is configured.
func (s *PinService) Enabled(ctx context.Context) (bool, error) {
	cred, err := s.pins.Get(ctx)
	if err != nil {
		return false, err
	}
	return cred != nil, nil
}

func validatePin(pin string) error {
	for _, r := range pin {
		if r < '0' || r > '9' {
			return common.ErrPinNotDigits
		}
	}
	if len(pin) < pinMinLen || len(pin) > pinMaxLen {
		return common.ErrPinBadLength
	}
	return nil
}

func hashPin(pin string, salt []byte) []byte {
	return pbkdf2.Key([]byte(pin), salt, pinIterations, pinHashSize, sha256.New)
}
