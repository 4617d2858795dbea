package audit

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newLog(t *testing.T) *FileLog {
	t.Helper()
	return NewFileLog(filepath.Join(t.TempDir(), "auth_log.txt"))
}

func TestEntry_String(t *testing.T) {
	e := Entry{
		Timestamp:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Outcome:    OutcomeSuccess,
		UnlockPath: PathPin,
		Confidence: 87.25,
		Threshold:  60,
	}
	require.Equal(t, "2026-03-14 09:26:53 | OK | PIN | 87.2% | min:60%", e.String())
}

func TestTail_MissingFile(t *testing.T) {
	l := newLog(t)
	lines, err := l.Tail(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestAppendTail_KeepsOrderAndLimit(t *testing.T) {
	l := newLog(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		e := Entry{
			Timestamp:  time.Date(2026, 1, 1, 12, 0, i, 0, time.UTC),
			Outcome:    OutcomeFailure,
			UnlockPath: PathPassphrase,
			Confidence: float64(40 + i),
			Threshold:  60,
		}
		require.NoError(t, l.Append(ctx, e))
	}

	lines, err := l.Tail(ctx, 3)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], fmt.Sprintf("%.1f%%", 42.0))
	require.Contains(t, lines[2], fmt.Sprintf("%.1f%%", 44.0))

	all, err := l.Tail(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestTruncate(t *testing.T) {
	l := newLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, Entry{Timestamp: time.Now(), Outcome: OutcomeSkipped, UnlockPath: PathPassphrase}))
	require.NoError(t, l.Truncate(ctx))
	// Truncating twice is fine.
	require.NoError(t, l.Truncate(ctx))

	lines, err := l.Tail(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, lines)
}
