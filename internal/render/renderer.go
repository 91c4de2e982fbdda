package render

import (
	"io"
	"log/slog"
	"time"

	"github.com/rickgao/tweetstream/internal/connection"
)

// Renderer implements connection.Renderer on top of a Feed and an optional Console.
type Renderer struct {
	feed    *Feed
	console *Console
	loc     *time.Location
	logger  *slog.Logger
	now     func() time.Time
}

// NewRenderer creates a Renderer. A nil out disables console output;
// a nil loc uses time.Local.
func NewRenderer(feed *Feed, out io.Writer, loc *time.Location, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	r := &Renderer{
		feed:   feed,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
	if out != nil {
		r.console = NewConsole(out)
	}
	return r
}

// Display renders ev and inserts it at the top of the feed.
func (r *Renderer) Display(ev connection.Event) {
	p := BuildPanel(ParseTweet(ev), r.loc, r.now())
	r.feed.Prepend(p)

	if r.console != nil {
		if err := r.console.Write(p); err != nil {
			r.logger.Warn("console write failed", "error", err)
		}
	}

	r.logger.Debug("tweet displayed", "id", p.ID, "author", p.Author)
}

// Feed returns the document the renderer inserts into.
func (r *Renderer) Feed() *Feed {
	return r.feed
}
