package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rickgao/tweetstream/internal/connection"
)

var severityStyles = map[connection.Severity]lipgloss.Style{
	connection.SeverityWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	connection.SeveritySuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	connection.SeverityDanger:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
}

// Console prints notifications and mirrors them to the logger.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	logger *slog.Logger
	title  cases.Caser
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		w:      w,
		logger: logger,
		title:  cases.Title(language.English),
	}
}

// Notify prints n. Write failures are logged, never returned.
func (c *Console) Notify(n connection.Notification) {
	c.mu.Lock()
	// cases.Caser keeps state and is not safe for concurrent use.
	label := c.title.String(string(n.Severity))
	if style, ok := severityStyles[n.Severity]; ok {
		label = style.Render(label)
	}
	_, err := fmt.Fprintf(c.w, "[%s] %s\n", label, n.Message)
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("notification write failed", "error", err)
	}

	c.logger.Log(context.Background(), levelFor(n.Severity), "notification",
		"severity", n.Severity,
		"message", n.Message,
		"attempt", n.Attempt,
	)
}

func levelFor(sev connection.Severity) slog.Level {
	switch sev {
	case connection.SeverityWarning:
		return slog.LevelWarn
	case connection.SeverityDanger:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
