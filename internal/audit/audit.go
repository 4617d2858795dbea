// Package audit implements the append-only authentication attempt log.
// The log is a plain text file with one line per match attempt; it is
// never rewritten, only truncated by a full reset.
package audit

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"
)

// Outcome of a single match attempt.
type Outcome string

const (
	// OutcomeSuccess records a match at or above the threshold.
	OutcomeSuccess Outcome = "OK"
	// OutcomeFailure records a match below the threshold.
	OutcomeFailure Outcome = "FAIL"
	// OutcomeSkipped records a liveness check that failed open because of
	// an internal vision error. Kept distinguishable from a verified
	// blink sequence on purpose.
	OutcomeSkipped Outcome = "SKIP"
)

// Unlock paths recorded per attempt.
const (
	PathPin        = "PIN"
	PathPassphrase = "PASS"
)

// Entry is one logged attempt. Confidence and Threshold are percentages.
type Entry struct {
	Timestamp  time.Time
	Outcome    Outcome
	UnlockPath string
	Confidence float64
	Threshold  float64
}

func (e Entry) String() string {
	return fmt.Sprintf("%s | %s | %s | %.1f%% | min:%.0f%%",
		e.Timestamp.Format("2006-01-02 15:04:05"), e.Outcome, e.UnlockPath,
		e.Confidence, e.Threshold)
}

// Log records and replays authentication attempts.
type Log interface {
	// Append writes one entry to the end of the log.
	Append(ctx context.Context, e Entry) error

	// Tail returns the last limit lines, oldest first. A missing log file
	// yields an empty slice.
	Tail(ctx context.Context, limit int) ([]string, error)

	// Truncate deletes the log. Used only by a full reset.
	Truncate(ctx context.Context) error
}

// FileLog is the file-backed Log implementation.
type FileLog struct {
	path string
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

func (l *FileLog) Append(ctx context.Context, e Entry) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, e.String()); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (l *FileLog) Tail(ctx context.Context, limit int) ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines, nil
}

func (l *FileLog) Truncate(ctx context.Context) error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to truncate audit log: %w", err)
	}
	return nil
}
