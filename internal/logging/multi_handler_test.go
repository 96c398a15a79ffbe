package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	level   slog.Level
	err     error
	handled []slog.Record
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.handled = append(h.handled, record)
	return h.err
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerRespectsSinkLevels(t *testing.T) {
	stdout := &recordingHandler{level: slog.LevelInfo}
	pg := &recordingHandler{level: slog.LevelError}
	m := NewMultiHandler(stdout, pg)
	ctx := context.Background()

	require.True(t, m.Enabled(ctx, slog.LevelInfo))
	require.False(t, m.Enabled(ctx, slog.LevelDebug))

	info := slog.NewRecord(time.Now(), slog.LevelInfo, "routine", 0)
	require.NoError(t, m.Handle(ctx, info))
	require.Len(t, stdout.handled, 1)
	require.Empty(t, pg.handled, "info must not reach the error-only sink")

	errRec := slog.NewRecord(time.Now(), slog.LevelError, "broken", 0)
	require.NoError(t, m.Handle(ctx, errRec))
	require.Len(t, stdout.handled, 2)
	require.Len(t, pg.handled, 1)
}

func TestMultiHandlerDeliversPastFailingSink(t *testing.T) {
	failing := &recordingHandler{level: slog.LevelInfo, err: errors.New("sink down")}
	healthy := &recordingHandler{level: slog.LevelInfo}
	m := NewMultiHandler(failing, healthy)

	record := slog.NewRecord(time.Now(), slog.LevelError, "broken", 0)
	err := m.Handle(context.Background(), record)
	require.Error(t, err)
	require.Len(t, healthy.handled, 1, "one failing sink must not block the rest")
}
