package httpapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rise-and-shine/agenda/calendar"
)

// Timestamp is a request date. It accepts RFC 3339 and zone-less local
// date-times, which are read as UTC. A missing or null date is the zero time.
type Timestamp struct {
	time.Time
}

//nolint:gochecknoglobals // accepted layouts, most specific first
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = calendar.NormalizeDate(parsed)
			return nil
		}
	}
	return fmt.Errorf("date %q must be RFC 3339 or YYYY-MM-DDTHH:MM[:SS]", s)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
