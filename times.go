package igtrade

import (
	"fmt"
	"strings"
	"time"
)

// timeFormats lists the timestamp layouts the platform uses, most common
// first. Position creation dates come as "2021/02/10 11:42:56:000" while
// price snapshots use "2021/02/10 22:00:00".
var timeFormats = []string{
	"2006/01/02 15:04:05.000",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// Time wraps time.Time to decode the timestamp formats used by the IG API.
type Time struct {
	time.Time
}

// UnmarshalJSON parses any of the platform's timestamp layouts. A JSON null
// or empty string leaves the time zero.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	// Creation dates write milliseconds after a third colon, which the
	// time package cannot parse. Rewrite that colon to a dot first.
	if n := len(s); n > 4 && s[n-4] == ':' && strings.Count(s, ":") == 3 {
		s = s[:n-4] + "." + s[n-3:]
	}
	for _, layout := range timeFormats {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

// MarshalJSON renders the time in the platform's long layout.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format("2006/01/02 15:04:05") + `"`), nil
}
