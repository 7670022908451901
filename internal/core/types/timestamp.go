package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storeadmin/pkg/logger"
)

// Epoch is the neutral instant used for missing dates.
var Epoch = time.Unix(0, 0).UTC()

// timestampLayouts are the formats the backend is known to emit.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a time.Time that accepts the backend's date and date-time strings.
// Values without a zone are read in time.Local.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses s with the known layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON encodes as RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// UnmarshalJSON accepts any of the known layouts. Null, empty and
// unrecognized values decode to the zero Timestamp, which reads as Epoch.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Default().Debugw("timestamp is not a string, using epoch", "value", string(data))
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		logger.Default().Debugw("unrecognized timestamp, using epoch", "value", s)
		return nil
	}
	*t = parsed
	return nil
}

// InstantOr returns the wrapped instant, or Epoch when the value is absent or zero.
func InstantOr(o Opt[Timestamp]) time.Time {
	if ts, ok := o.Get(); ok && !ts.IsZero() {
		return ts.Time
	}
	return Epoch
}
