package render

import (
	"strings"
	"time"
)

// Date format keys accepted by FormatDate.
const (
	DateFormatLong    = "long"
	DateFormatMedium  = "medium"
	DateFormatShort   = "short"
	DateFormatNumeric = "numeric"
	DateFormatISO     = "iso"
)

// Time format keys accepted by FormatTime.
const (
	TimeFormat12h = "12h"
	TimeFormat24h = "24h"
)

const (
	storedDateLayout = "2006-01-02"
	storedTimeLayout = "15:04"
)

var dateLayouts = map[string]string{
	DateFormatLong:    "Monday, January 2, 2006",
	DateFormatMedium:  "Jan 2, 2006",
	DateFormatShort:   "1/2/06",
	DateFormatNumeric: "01/02/2006",
	DateFormatISO:     "2006-01-02",
}

var timeLayouts = map[string]string{
	TimeFormat12h: "3:04 PM",
	TimeFormat24h: "15:04",
}

// FormatDate converts a stored YYYY-MM-DD date into a display string using the
// named format key. Unknown keys fall back to the medium format. Empty input is
// absent and returns nil; input that does not parse is returned trimmed as-is.
func FormatDate(date, key string) *string {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil
	}
	t, err := time.Parse(storedDateLayout, date)
	if err != nil {
		return &date
	}
	layout, ok := dateLayouts[key]
	if !ok {
		layout = dateLayouts[DateFormatMedium]
	}
	out := t.Format(layout)
	return &out
}

// FormatTime converts a stored HH:MM time into a display string. Unknown keys
// fall back to the 12-hour clock.
func FormatTime(clock, key string) *string {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return nil
	}
	t, err := time.Parse(storedTimeLayout, clock)
	if err != nil {
		return &clock
	}
	layout, ok := timeLayouts[key]
	if !ok {
		layout = timeLayouts[TimeFormat12h]
	}
	out := t.Format(layout)
	return &out
}
