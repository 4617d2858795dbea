package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/facevault/facevault/internal/common"
	"github.com/facevault/facevault/internal/models"
)

// AddEntry prompts for a named credential and persists the vault.
// An existing entry with the same name is overwritten.
func (a *App) AddEntry(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Entry name (e.g. github)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "Entry name must not be empty")
		return nil
	}

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := GetSecret("Password: ", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(password)

	a.vault[name] = models.Credential{Username: username, Password: string(password)}

	if err := a.svc.SaveVault(ctx, a.vault, a.masterKey); err != nil {
		fmt.Fprintf(a.out, "error saving vault: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Saved %q\n", name)
	return nil
}

// ListEntries prints the stored entry names, sorted.
func (a *App) ListEntries(ctx context.Context) error {
	if len(a.vault) == 0 {
		fmt.Fprintln(a.out, "Vault is empty")
		return nil
	}

	names := make([]string, 0, len(a.vault))
	for name := range a.vault {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(a.out, "  %s (%s)\n", name, a.vault[name].Username)
	}
	return nil
}

// ShowEntry prints one credential, password included.
func (a *App) ShowEntry(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <name>")
		return nil
	}

	cred, ok := a.vault[args[0]]
	if !ok {
		fmt.Fprintf(a.out, "No entry %q\n", args[0])
		return nil
	}
	fmt.Fprintf(a.out, "Username: %s\nPassword: %s\n", cred.Username, cred.Password)
	return nil
}

// DeleteEntry removes one credential and persists the vault.
func (a *App) DeleteEntry(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <name>")
		return nil
	}

	if _, ok := a.vault[args[0]]; !ok {
		fmt.Fprintf(a.out, "No entry %q\n", args[0])
		return nil
	}
	delete(a.vault, args[0])

	if err := a.svc.SaveVault(ctx, a.vault, a.masterKey); err != nil {
		fmt.Fprintf(a.out, "error saving vault: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted %q\n", args[0])
	return nil
}
