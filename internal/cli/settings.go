package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Settings shows or changes the authentication policy.
//
// Without arguments the current policy is printed. With arguments the
// form is "settings <name> <value>", where name is one of level,
// pinlevel, attempts, liveness, blinks.
func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cfg := a.svc.Orchestrator.Settings()
		fmt.Fprintf(a.out, "Security level:       %.2f (%s)\n", cfg.ConfidenceThreshold, cfg.SecurityLevelName())
		fmt.Fprintf(a.out, "PIN unlock threshold: %.2f\n", cfg.PinUnlockThreshold)
		fmt.Fprintf(a.out, "Max attempts:         %d\n", cfg.MaxAttempts)
		fmt.Fprintf(a.out, "Liveness enabled:     %v\n", cfg.LivenessEnabled)
		fmt.Fprintf(a.out, "Blinks required:      %d\n", cfg.BlinksRequired)
		return nil
	}

	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: settings <level|pinlevel|attempts|liveness|blinks> <value>")
		return nil
	}

	name, value := args[0], args[1]
	var err error

	switch name {
	case "level":
		var v float64
		if v, err = strconv.ParseFloat(value, 64); err == nil {
			err = a.svc.Orchestrator.SetConfidenceThreshold(ctx, v)
		}
	case "pinlevel":
		var v float64
		if v, err = strconv.ParseFloat(value, 64); err == nil {
			err = a.svc.Orchestrator.SetPinUnlockThreshold(ctx, v)
		}
	case "attempts":
		var n int
		if n, err = strconv.Atoi(value); err == nil {
			err = a.svc.Orchestrator.SetMaxAttempts(ctx, n)
		}
	case "liveness":
		var b bool
		if b, err = strconv.ParseBool(value); err == nil {
			err = a.svc.Orchestrator.SetLivenessEnabled(ctx, b)
		}
	case "blinks":
		var n int
		if n, err = strconv.Atoi(value); err == nil {
			err = a.svc.Orchestrator.SetBlinksRequired(ctx, n)
		}
	default:
		fmt.Fprintf(a.out, "Unknown setting %q\n", name)
		return nil
	}

	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Set %s = %s\n", name, value)
	return nil
}
