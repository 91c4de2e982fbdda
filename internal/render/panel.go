package render

import (
	"time"

	"github.com/google/uuid"
)

// Panel is one rendered tweet as inserted into the Feed.
type Panel struct {
	ID         uuid.UUID `json:"id"`
	Author     string    `json:"author"`
	Heading    string    `json:"heading"` // "@author - timestamp"
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

// BuildPanel formats a tweet into a Panel.
func BuildPanel(t Tweet, loc *time.Location, receivedAt time.Time) Panel {
	return Panel{
		ID:         uuid.New(),
		Author:     t.Author,
		Heading:    "@" + t.Author + " - " + FormatTimestamp(t.Created, loc),
		Body:       t.Text,
		ReceivedAt: receivedAt,
	}
}
