package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestManagerWritesFileAndChannel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "forkrebase.log")

	m, err := NewManager(Config{
		FilePath:       logPath,
		MaxSizeMB:      1,
		MaxBackups:     1,
		MaxAgeDays:     1,
		ChannelBufSize: 10,
		Level:          "debug",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()

	m.For("git").Infow("fetched remote", "remote", "upstream")
	_ = m.Sync()

	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file was not created: %v", err)
	}

	select {
	case entry := <-m.Entries():
		if entry.Scope != "git" {
			t.Errorf("scope = %q, want git", entry.Scope)
		}
		if entry.Message != "fetched remote" {
			t.Errorf("message = %q", entry.Message)
		}
		if entry.Fields["remote"] != "upstream" {
			t.Errorf("fields = %v", entry.Fields)
		}
	default:
		t.Error("no log entry received on channel")
	}
}

func TestManagerRequiresFilePath(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatal("expected error for empty FilePath")
	}
}

func TestChannelSinkDropsOldestWhenFull(t *testing.T) {
	sink := NewChannelSink(1)

	line := func(msg string) []byte {
		return []byte(`{"level":"info","logger":"app","msg":"` + msg + `"}`)
	}
	if _, err := sink.Write(line("first")); err != nil {
		t.Fatal(err)
	}
	if _, err := sink.Write(line("second")); err != nil {
		t.Fatal(err)
	}

	entry := <-sink.Entries()
	if entry.Message != "second" {
		t.Errorf("kept %q, want the newest entry", entry.Message)
	}
}

func TestChannelSinkClosedWrite(t *testing.T) {
	sink := NewChannelSink(1)
	_ = sink.Close()
	_ = sink.Close() // idempotent

	if _, err := sink.Write([]byte(`{"msg":"x"}`)); err == nil {
		t.Fatal("expected error writing to closed sink")
	}
}

func TestLogEntryString(t *testing.T) {
	entry := LogEntry{
		Timestamp: time.Date(2024, 3, 1, 9, 30, 5, 0, time.Local),
		Level:     "WARN",
		Scope:     "rebase",
		Message:   "step failed",
		Fields:    map[string]any{"fork": "widget"},
	}

	s := entry.String()
	for _, want := range []string{"09:30:05", "WARN", "[rebase]", "step failed", "fork=widget"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
