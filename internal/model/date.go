package model

import (
	"encoding/json"
	"time"
)

const DateLayout = "2006-01-02"

// Date renders a timestamp as a calendar day, both in JSON and in views.
type Date struct {
	time.Time
}

func DateOf(t time.Time) Date {
	return Date{Time: t}
}

func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}

	return json.Marshal(d.String())
}
