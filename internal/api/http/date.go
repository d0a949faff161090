package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// requestDate accepts a calendar date from an HTML date input ("2006-01-02", read
// as midnight UTC) or a full RFC 3339 timestamp.
type requestDate struct {
	time.Time
}

func (d *requestDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

// ptr returns nil for an absent date.
func (d *requestDate) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
