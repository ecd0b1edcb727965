package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"fv-go/internal/vault"
)

// LogFilename is the shared log file under the vault root.
const LogFilename = "file_manager.log"

// fvHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<user>\t<message>\t<key=value ...>
type fvHandler struct {
	w     io.Writer
	user  string
	attrs []slog.Attr
}

func (h *fvHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *fvHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")
	level := r.Level.String()

	_, err := fmt.Fprintf(h.w, "%s\t%s\t%s\t%s", ts, level, h.user, r.Message)
	if err != nil {
		return err
	}

	// Write pre-set attrs.
	for _, a := range h.attrs {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
	}

	// Write per-record attrs.
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
		return true
	})

	_, err = fmt.Fprintln(h.w)
	return err
}

func (h *fvHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &fvHandler{
		w:     h.w,
		user:  h.user,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *fvHandler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger that writes to both the shared log
// file under rootDir and stderr. The log file records events for every user,
// so it gets the same owner-only treatment as vault files.
// Returns the slog.Logger and the open log file (for cleanup).
func newLogger(rootDir string, user string, securer vault.Securer) (*slog.Logger, *os.File, error) {
	logPath := filepath.Join(rootDir, LogFilename)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	if err := securer.SecureFile(logPath); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("securing log file: %w", err)
	}

	w := io.MultiWriter(f, os.Stderr)
	handler := &fvHandler{w: w, user: user}
	return slog.New(handler), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the vault.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
