package arena_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

var (
	errWrongOwner = errors.New("value overwritten by another worker")
	errDuplicate  = errors.New("handle issued twice")
)

func captureLogs(t *testing.T, level slog.Level, f func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})))
	defer slog.SetDefault(old)
	f()
	return buf.String()
}
