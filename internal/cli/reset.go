package cli

import (
	"context"
	"fmt"
)

// ResetFace deletes the enrolled face samples after confirmation. The
// vault and the passphrase are untouched.
func (a *App) ResetFace(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Delete all enrolled face data? Type YES to confirm", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if answer != "YES" {
		fmt.Fprintln(a.out, "Aborted")
		return nil
	}

	if err := a.svc.ResetFaceData(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	a.svc.ResetAttempts()
	fmt.Fprintln(a.out, "Face data deleted")
	return nil
}

// ResetAll wipes face data, PIN, settings, audit history and the
// passphrase verifier after confirmation. The encrypted vault file stays
// on disk; without the old passphrase its contents are unrecoverable.
func (a *App) ResetAll(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader,
		"Reset ALL authentication data (face, PIN, settings, history, passphrase)? Type YES to confirm", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if answer != "YES" {
		fmt.Fprintln(a.out, "Aborted")
		return nil
	}

	if err := a.svc.ResetAll(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "All authentication data reset. The next passphrase entered becomes canonical.")
	fmt.Fprintln(a.out, "Note: the old vault file can only be read with the old passphrase.")
	return nil
}
