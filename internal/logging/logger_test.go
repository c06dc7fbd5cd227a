package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output carries service fields", func(t *testing.T) {
		t.Parallel()

		l, err := New(Config{Level: "debug", Format: "json"}, "osintkit", "test")
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		var buf bytes.Buffer
		l.SetOutput(&buf)
		l.WithField("scan_id", "s1").Info("hello")

		var line map[string]any
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("invalid json log line %q: %v", buf.String(), err)
		}
		if line["message"] != "hello" || line["service"] != "osintkit" || line["scan_id"] != "s1" {
			t.Errorf("unexpected log line %v", line)
		}
		if l.GetLevel() != logrus.DebugLevel {
			t.Errorf("level = %s", l.GetLevel())
		}
	})

	t.Run("bad level falls back to info", func(t *testing.T) {
		t.Parallel()

		l, err := New(Config{Level: "loud"}, "osintkit", "test")
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if l.GetLevel() != logrus.InfoLevel {
			t.Errorf("level = %s", l.GetLevel())
		}
	})

	t.Run("file sink is created", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "logs", "osintkit.log")
		l, err := New(Config{Format: "text", File: path}, "osintkit", "test")
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		l.Info("to file")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("log file not written: %v", err)
		}
	})
}
