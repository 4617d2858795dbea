package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/facevault/facevault/internal/common"
)

// Unlock prompts for the master passphrase, verifies it and decrypts the
// vault. On first ever use the entered passphrase becomes canonical.
func (a *App) Unlock(ctx context.Context) error {
	if a.isUnlocked() {
		fmt.Fprintln(a.out, "Already unlocked")
		return nil
	}

	bootstrapped, err := a.svc.Passphrase.Bootstrapped(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	prompt := "Enter master passphrase: "
	if !bootstrapped {
		prompt = "Choose a master passphrase (first use): "
	}

	passphrase, err := GetSecret(prompt, a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(passphrase)

	valid, err := a.svc.VerifyPassphrase(ctx, passphrase)
	if err != nil {
		if errors.Is(err, common.ErrEmptyPassphrase) {
			fmt.Fprintln(a.out, "Passphrase must not be empty")
			return nil
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if !valid {
		fmt.Fprintln(a.out, "Incorrect passphrase")
		return nil
	}

	key, err := a.svc.DeriveKey(ctx, passphrase)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	vault, err := a.svc.LoadVault(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrVaultCorruptOrWrongKey) {
			fmt.Fprintln(a.out, "Vault file is corrupt or was written with a different passphrase")
		} else {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		common.WipeByteArray(key)
		return err
	}

	a.masterKey = key
	a.vault = vault
	a.svc.ResetAttempts()
	fmt.Fprintf(a.out, "Vault unlocked (%d entries)\n", len(vault))
	return nil
}

// Lock wipes the session key and the decrypted entries.
func (a *App) Lock(ctx context.Context) error {
	if !a.isUnlocked() {
		fmt.Fprintln(a.out, "Already locked")
		return nil
	}
	common.WipeByteArray(a.masterKey)
	a.masterKey = nil
	a.vault = nil
	a.svc.ResetAttempts()
	fmt.Fprintln(a.out, "Locked")
	return nil
}
