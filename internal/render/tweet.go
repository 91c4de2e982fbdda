package render

import (
	"fmt"
	"time"

	"github.com/rickgao/tweetstream/internal/connection"
)

// TwitterDateLayout is the creation date layout used by the stream, e.g.
// "Wed Aug 27 13:08:45 +0000 2008".
const TwitterDateLayout = time.RubyDate

// Tweet is the display view of one stream event.
type Tweet struct {
	Author  string `json:"author"`
	Created string `json:"created"` // Raw creation date as sent by the server
	Text    string `json:"text"`
}

// ParseTweet reads the tweet fields of an event. Missing or non-string
// fields are left empty.
func ParseTweet(ev connection.Event) Tweet {
	return Tweet{
		Author:  stringField(ev, "author"),
		Created: stringField(ev, "created"),
		Text:    stringField(ev, "text"),
	}
}

func stringField(ev connection.Event, key string) string {
	s, _ := ev[key].(string)
	return s
}

// FormatTimestamp renders a Twitter creation date as Y/M/D H:M:S in loc,
// without zero padding. Unparseable input is returned unchanged.
func FormatTimestamp(created string, loc *time.Location) string {
	t, err := time.Parse(TwitterDateLayout, created)
	if err != nil {
		return created
	}
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%d/%d/%d %d:%d:%d",
		t.Year(), int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second(),
	)
}
