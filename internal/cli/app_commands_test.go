package cli

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/facevault/facevault/internal/auth"
	"github.com/facevault/facevault/internal/common"
	"github.com/facevault/facevault/internal/config"
	"github.com/facevault/facevault/internal/logging"
	"github.com/facevault/facevault/internal/store"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{DataDir: t.TempDir(), LogLevel: "error"}
	cfg.Normalize()

	st, err := store.Open(ctx, cfg.DBPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	log := logging.NewDefault(slog.LevelError)
	svc, err := auth.NewService(ctx, st, auth.Options{
		VaultPath:    cfg.VaultPath,
		AuditLogPath: cfg.AuditLogPath,
		ImageDir:     cfg.ImageDir,
	}, log)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &App{
		config: cfg,
		svc:    svc,
		st:     st,
		log:    log,
		reader: bufio.NewReader(strings.NewReader("")),
		out:    out,
	}, out
}

// stubSecrets replaces the terminal password reader with a queue of
// canned values for the duration of the test.
func stubSecrets(t *testing.T, secrets ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	i := 0
	readPassword = func(int) ([]byte, error) {
		require.Less(t, i, len(secrets), "unexpected extra secret prompt")
		s := secrets[i]
		i++
		return []byte(s), nil
	}
}

func (a *App) setInput(s string) {
	a.reader = bufio.NewReader(strings.NewReader(s))
}

func TestApp_UnlockBootstrapAndEntryRoundTrip(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubSecrets(t, "master pass", "hunter2", "master pass")

	require.NoError(t, app.Unlock(ctx))
	require.True(t, app.isUnlocked())
	require.Contains(t, out.String(), "Vault unlocked (0 entries)")

	app.setInput("github\nalice\n")
	require.NoError(t, app.AddEntry(ctx))
	require.Contains(t, out.String(), `Saved "github"`)

	out.Reset()
	require.NoError(t, app.ListEntries(ctx))
	require.Contains(t, out.String(), "github (alice)")

	out.Reset()
	require.NoError(t, app.ShowEntry(ctx, []string{"github"}))
	require.Contains(t, out.String(), "Username: alice")
	require.Contains(t, out.String(), "Password: hunter2")

	require.NoError(t, app.Lock(ctx))
	require.False(t, app.isUnlocked())

	// The entry survives lock/unlock through the encrypted file.
	out.Reset()
	require.NoError(t, app.Unlock(ctx))
	require.Contains(t, out.String(), "Vault unlocked (1 entries)")
}

func TestApp_UnlockWrongPassphrase(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubSecrets(t, "canonical", "wrong")

	require.NoError(t, app.Unlock(ctx))
	require.NoError(t, app.Lock(ctx))

	out.Reset()
	require.NoError(t, app.Unlock(ctx))
	require.Contains(t, out.String(), "Incorrect passphrase")
	require.False(t, app.isUnlocked())
}

func TestApp_DeleteEntry(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubSecrets(t, "master pass", "pw")

	require.NoError(t, app.Unlock(ctx))
	app.setInput("mail\nbob\n")
	require.NoError(t, app.AddEntry(ctx))

	out.Reset()
	require.NoError(t, app.DeleteEntry(ctx, []string{"nosuch"}))
	require.Contains(t, out.String(), `No entry "nosuch"`)

	require.NoError(t, app.DeleteEntry(ctx, []string{"mail"}))
	require.Contains(t, out.String(), `Deleted "mail"`)

	loaded, err := app.svc.LoadVault(ctx, app.masterKey)
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestApp_PinCommands(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubSecrets(t, "master pass", "12", "1234", "1234", "9999")

	require.NoError(t, app.Unlock(ctx))

	err := app.Pin(ctx, []string{"setup"})
	require.ErrorIs(t, err, common.ErrPinBadLength)
	require.Contains(t, out.String(), "PIN must be 4 to 6 digits long")

	out.Reset()
	require.NoError(t, app.Pin(ctx, []string{"setup"}))
	require.Contains(t, out.String(), "PIN enabled")

	out.Reset()
	require.NoError(t, app.Pin(ctx, []string{"verify"}))
	require.Contains(t, out.String(), "PIN OK")

	out.Reset()
	err = app.Pin(ctx, []string{"verify"})
	require.ErrorIs(t, err, common.ErrIncorrectPin)
	require.Contains(t, out.String(), "Incorrect PIN")

	out.Reset()
	require.NoError(t, app.Pin(ctx, []string{"disable"}))
	require.Contains(t, out.String(), "PIN disabled")
}

func TestApp_SettingsShowAndSet(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubSecrets(t, "master pass")
	require.NoError(t, app.Unlock(ctx))

	require.NoError(t, app.Settings(ctx, nil))
	require.Contains(t, out.String(), "Security level:")
	require.Contains(t, out.String(), "Medium")

	out.Reset()
	require.NoError(t, app.Settings(ctx, []string{"level", "0.7"}))
	require.Contains(t, out.String(), "Set level = 0.7")
	require.Equal(t, 0.7, app.svc.Orchestrator.Settings().ConfidenceThreshold)

	out.Reset()
	require.Error(t, app.Settings(ctx, []string{"level", "2"}))

	out.Reset()
	require.NoError(t, app.Settings(ctx, []string{"unknown", "1"}))
	require.Contains(t, out.String(), `Unknown setting "unknown"`)
}

func TestApp_ResetAllRequiresConfirmation(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubSecrets(t, "master pass")
	require.NoError(t, app.Unlock(ctx))

	app.setInput("no\n")
	require.NoError(t, app.ResetAll(ctx))
	require.Contains(t, out.String(), "Aborted")

	ok, err := app.svc.Passphrase.Bootstrapped(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	app.setInput("YES\n")
	require.NoError(t, app.ResetAll(ctx))

	ok, err = app.svc.Passphrase.Bootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
