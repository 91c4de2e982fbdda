package notify

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rickgao/tweetstream/internal/connection"
)

func TestConsole_Notify(t *testing.T) {
	tests := []struct {
		name      string
		n         connection.Notification
		wantLabel string
		wantLevel string
	}{
		{
			name: "warning",
			n: connection.Notification{
				Severity: connection.SeverityWarning,
				Message:  "WARNING: Lost server connection, attempting to reconnect. Attempt number 3",
				Attempt:  3,
			},
			wantLabel: "Warning",
			wantLevel: "level=WARN",
		},
		{
			name: "success",
			n: connection.Notification{
				Severity: connection.SeveritySuccess,
				Message:  "Server connection recovered.",
			},
			wantLabel: "Success",
			wantLevel: "level=INFO",
		},
		{
			name: "danger",
			n: connection.Notification{
				Severity: connection.SeverityDanger,
				Message:  "The connection with the server was lost.",
				Attempt:  11,
			},
			wantLabel: "Danger",
			wantLevel: "level=ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			c := NewConsole(&out, logger)

			c.Notify(tt.n)

			printed := out.String()
			if !strings.Contains(printed, tt.wantLabel) {
				t.Errorf("output %q missing label %q", printed, tt.wantLabel)
			}
			if !strings.Contains(printed, tt.n.Message) {
				t.Errorf("output %q missing message", printed)
			}
			if !strings.Contains(logs.String(), tt.wantLevel) {
				t.Errorf("log %q missing %s", logs.String(), tt.wantLevel)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("closed") }

func TestConsole_WriteFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	c := NewConsole(failingWriter{}, slog.New(slog.NewTextHandler(&logs, nil)))

	c.Notify(connection.Notification{Severity: connection.SeveritySuccess, Message: "ok"})

	if !strings.Contains(logs.String(), "notification write failed") {
		t.Errorf("expected write failure in log, got %q", logs.String())
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(2)

	if _, ok := r.Last(); ok {
		t.Error("Last on empty recorder should report false")
	}

	r.Notify(connection.Notification{Message: "a"})
	r.Notify(connection.Notification{Message: "b"})
	r.Notify(connection.Notification{Message: "c"})

	history := r.History()
	if len(history) != 2 || history[0].Message != "b" || history[1].Message != "c" {
		t.Errorf("History = %+v, want [b c]", history)
	}

	last, ok := r.Last()
	if !ok || last.Message != "c" {
		t.Errorf("Last = %+v, %v", last, ok)
	}
}

func TestMulti(t *testing.T) {
	a := NewRecorder(5)
	b := NewRecorder(5)
	m := Multi{a, nil, b}

	m.Notify(connection.Notification{Message: "x"})

	if len(a.History()) != 1 || len(b.History()) != 1 {
		t.Errorf("expected both recorders notified, got %d and %d", len(a.History()), len(b.History()))
	}
}
