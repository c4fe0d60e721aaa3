// Package urlstate keeps a shareable link in sync with the current query.
// Updates replace the link in place; no history entries are created.
package urlstate

import (
	"fmt"
	"net/url"
	"strings"
)

// QueryParam is the link parameter holding the query
const QueryParam = "q"

// Location is the shareable link of the widget
type Location struct {
	u *url.URL
}

// Parse builds a Location from a link such as http://localhost:3000/?q=tv
func Parse(raw string) (*Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty link")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid link %q: %w", raw, err)
	}
	return &Location{u: u}, nil
}

// Query returns the q parameter, used to seed the input on startup
func (l *Location) Query() string {
	return l.u.Query().Get(QueryParam)
}

// Replace sets q in place, dropping the parameter when q is empty. Other
// parameters are kept.
func (l *Location) Replace(q string) {
	params := l.u.Query()
	if q == "" {
		params.Del(QueryParam)
	} else {
		params.Set(QueryParam, q)
	}
	l.u.RawQuery = params.Encode()
}

// String returns the link
func (l *Location) String() string {
	return l.u.String()
}
