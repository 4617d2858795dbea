package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/facevault/facevault/internal/auth"
	"github.com/facevault/facevault/internal/config"
	"github.com/facevault/facevault/internal/filex"
	"github.com/facevault/facevault/internal/logging"
	"github.com/facevault/facevault/internal/models"
	"github.com/facevault/facevault/internal/store"
	"github.com/facevault/facevault/internal/vision"

	_ "modernc.org/sqlite"
)

// App is the interactive FaceVault client. It holds the unlocked session
// state: the derived vault key and the decrypted credential mapping,
// both discarded on Lock.
type App struct {
	config *config.Config
	svc    *auth.Service
	st     *store.Store
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	masterKey []byte
	vault     models.Vault
}

// NewApp prepares the data directory, opens the store and wires the
// authentication service. detector may be nil; the passphrase flow works
// without a vision backend.
func NewApp(ctx context.Context, cfg *config.Config, detector vision.Detector) (*App, error) {
	if err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}
	if err := filex.EnsureDir(cfg.ImageDir); err != nil {
		return nil, fmt.Errorf("prepare image dir: %w", err)
	}

	log := logging.NewDefault(parseLogLevel(cfg.LogLevel))

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc, err := auth.NewService(ctx, st, auth.Options{
		VaultPath:    cfg.VaultPath,
		AuditLogPath: cfg.AuditLogPath,
		ImageDir:     cfg.ImageDir,
		Detector:     detector,
	}, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &App{
		config: cfg,
		svc:    svc,
		st:     st,
		log:    log.With("component", "cli"),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.st.Close()
	a.Root(ctx)
}

func (a *App) isUnlocked() bool {
	return a.masterKey != nil
}

func (a *App) getStatus() string {
	if a.isUnlocked() {
		return "(unlocked)"
	}
	return "(locked)"
}
