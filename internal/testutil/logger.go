package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

// NewBufferLogger returns a slog logger backed by a buffer and the buffer for assertions.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return logger, &buf
}

// NewJSONBufferLogger is NewBufferLogger with a JSON handler at debug level, for field-level assertions.
func NewJSONBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

// LogEntries decodes one JSON object per line written by a NewJSONBufferLogger logger.
func LogEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", sc.Text(), err)
		}
		entries = append(entries, entry)
	}
	return entries
}

// FindLogEntry returns the first entry with the given msg.
func FindLogEntry(entries []map[string]any, msg string) (map[string]any, bool) {
	for _, e := range entries {
		if e[slog.MessageKey] == msg {
			return e, true
		}
	}
	return nil, false
}
