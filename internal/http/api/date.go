package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day on the wire ("2006-01-02"). RFC 3339 timestamps are
// accepted on input and truncated to their UTC day by the services.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	t, err := ParseDate(s)
	if err != nil {
		return err
	}

	d.Time = t

	return nil
}

func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}

	return t, nil
}
