package cli

import (
	"context"
	"fmt"
)

// Status prints the authentication and vault snapshot.
func (a *App) Status(ctx context.Context) error {
	st, err := a.svc.Status(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Vault file:        %v\n", st.VaultExists)
	fmt.Fprintf(a.out, "Passphrase set:    %v\n", st.Bootstrapped)
	fmt.Fprintf(a.out, "Face registered:   %v (%d samples)\n", st.FaceRegistered, st.FaceSamples)
	fmt.Fprintf(a.out, "PIN enabled:       %v\n", st.PinEnabled)
	fmt.Fprintf(a.out, "Security level:    %.2f (%s)\n", st.SecurityLevel, st.SecurityName)
	fmt.Fprintf(a.out, "Liveness:          enabled=%v verified=%v blinks=%d/%d\n",
		st.LivenessEnabled, st.LivenessVerified, st.BlinksDone, st.BlinksRequired)
	fmt.Fprintf(a.out, "Attempts:          %d/%d remaining\n", st.RemainingAttempts, st.MaxAttempts)
	if st.LockedOut {
		fmt.Fprintln(a.out, "LOCKED OUT: use the passphrase and 'resetface' or wait for an explicit reset")
	}
	return nil
}

// History prints the most recent authentication attempts, oldest first.
func (a *App) History(ctx context.Context) error {
	lines, err := a.svc.AuthHistory(ctx, 20)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "No authentication attempts recorded")
		return nil
	}
	for _, line := range lines {
		fmt.Fprintln(a.out, " ", line)
	}
	return nil
}
