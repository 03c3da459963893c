package models

import (
	"encoding/json"
	"fmt"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05MST",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05-07:00",
}

// Timestamp is a session expiration. It is either pre-parsed, when built from
// an SDK response, or the raw string read back from a cache, in which case it
// is parsed on demand and marshalled back verbatim.
type Timestamp struct {
	t   time.Time
	raw string
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t}
}

func RawTimestamp(s string) Timestamp {
	return Timestamp{raw: s}
}

// Time returns the expiration in UTC.
func (ts Timestamp) Time() (time.Time, error) {
	if ts.raw == "" {
		if ts.t.IsZero() {
			return time.Time{}, fmt.Errorf("expiration not set")
		}
		return ts.t.UTC(), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts.raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised expiration format %q", ts.raw)
}

func (ts Timestamp) String() string {
	if ts.raw != "" {
		return ts.raw
	}
	return ts.t.UTC().Format(time.RFC3339)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expiration must be a string: %w", err)
	}
	*ts = Timestamp{raw: s}
	return nil
}
