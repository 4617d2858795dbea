// Package auth implements the authentication core: passphrase
// verification and key derivation, quick-PIN verification, blink-based
// liveness, face matching, and the orchestrator that combines them into
// an authorization decision.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/facevault/facevault/internal/common"
	"github.com/facevault/facevault/internal/cryptox"
	"github.com/facevault/facevault/internal/logging"
	"github.com/facevault/facevault/internal/models"
	"github.com/facevault/facevault/internal/store/secrets"
)

// PassphraseService derives the vault key from the master passphrase and
// verifies passphrases against the stored verifier.
//
// Bootstrap semantics: the first passphrase ever verified becomes
// canonical. No separate "set up master passphrase" step exists; the
// verifier record is written once and replaced only by an explicit
// reset.
type PassphraseService struct {
	secrets secrets.Repository
	log     logging.Logger
}

func NewPassphraseService(repo secrets.Repository, log logging.Logger) *PassphraseService {
	return &PassphraseService{secrets: repo, log: log.With("component", "passphrase")}
}

// Bootstrapped reports whether a verifier record exists yet. A UI can
// use this to render an explicit first-run screen instead of silently
// trusting the first attempt.
func (p *PassphraseService) Bootstrapped(ctx context.Context) (bool, error) {
	rec, err := p.secrets.Get(ctx)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// Verify checks the passphrase against the stored verifier. On the very
// first call it stores a verifier derived from the given passphrase and
// returns true. A wrong passphrase is a normal false outcome, not an
// error.
func (p *PassphraseService) Verify(ctx context.Context, passphrase []byte) (bool, error) {
	if len(passphrase) == 0 {
		return false, common.ErrEmptyPassphrase
	}

	rec, err := p.secrets.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("load master secret: %w", err)
	}
	if rec == nil {
		key, err := p.bootstrap(ctx, passphrase)
		if err != nil {
			return false, err
		}
		common.WipeByteArray(key)
		return true, nil
	}

	key := cryptox.DeriveMasterKey(passphrase, rec.Salt)
	defer common.WipeByteArray(key)
	candidate := cryptox.MakeVerifier(key)

	return subtle.ConstantTimeCompare(rec.Verifier, candidate) == 1, nil
}

// DeriveKey returns the 32-byte vault key for the passphrase. The key is
// derivable only from the passphrase; it is never persisted. If no
// verifier record exists yet, DeriveKey bootstraps one from the given
// passphrase, mirroring Verify.
func (p *PassphraseService) DeriveKey(ctx context.Context, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, common.ErrEmptyPassphrase
	}

	rec, err := p.secrets.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load master secret: %w", err)
	}
	if rec == nil {
		return p.bootstrap(ctx, passphrase)
	}
	return cryptox.DeriveMasterKey(passphrase, rec.Salt), nil
}

// Reset deletes the verifier record. The next passphrase verified
// becomes the new canonical one. Used only by a full reset.
func (p *PassphraseService) Reset(ctx context.Context) error {
	return p.secrets.Delete(ctx)
}

func (p *PassphraseService) bootstrap(ctx context.Context, passphrase []byte) ([]byte, error) {
	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	key := cryptox.DeriveMasterKey(passphrase, salt)

	rec := &models.MasterSecret{
		Salt:      salt,
		Verifier:  cryptox.MakeVerifier(key),
		CreatedAt: time.Now().UTC(),
	}
	if err := p.secrets.Save(ctx, rec); err != nil {
		common.WipeByteArray(key)
		return nil, fmt.Errorf("save master secret: %w", err)
	}

	p.log.Info(ctx, "master passphrase bootstrapped")
	return key, nil
}
