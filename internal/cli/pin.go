package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/facevault/facevault/internal/common"
)

// Pin dispatches the pin subcommands: setup, verify, disable.
func (a *App) Pin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: pin setup|verify|disable")
		return nil
	}

	switch args[0] {
	case "setup":
		return a.pinSetup(ctx)
	case "verify":
		return a.pinVerify(ctx)
	case "disable":
		return a.pinDisable(ctx)
	default:
		fmt.Fprintln(a.out, "Usage: pin setup|verify|disable")
		return nil
	}
}

func (a *App) pinSetup(ctx context.Context) error {
	pin, err := GetSecret("Choose a PIN (4-6 digits): ", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(pin)

	if err := a.svc.SetupPin(ctx, string(pin)); err != nil {
		switch {
		case errors.Is(err, common.ErrPinBadLength):
			fmt.Fprintln(a.out, "PIN must be 4 to 6 digits long")
		case errors.Is(err, common.ErrPinNotDigits):
			fmt.Fprintln(a.out, "PIN must contain digits only")
		default:
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		return err
	}
	fmt.Fprintln(a.out, "PIN enabled")
	return nil
}

func (a *App) pinVerify(ctx context.Context) error {
	pin, err := GetSecret("Enter PIN: ", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(pin)

	if err := a.svc.VerifyPin(ctx, string(pin)); err != nil {
		switch {
		case errors.Is(err, common.ErrPinNotEnabled):
			fmt.Fprintln(a.out, "No PIN is configured")
		case errors.Is(err, common.ErrIncorrectPin):
			fmt.Fprintln(a.out, "Incorrect PIN")
		default:
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		return err
	}
	fmt.Fprintln(a.out, "PIN OK")
	return nil
}

func (a *App) pinDisable(ctx context.Context) error {
	if err := a.svc.DisablePin(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "PIN disabled")
	return nil
}
