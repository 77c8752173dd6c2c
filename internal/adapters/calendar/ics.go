// Package calendar writes invitation events as iCalendar (RFC 5545) files.
package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"openinvite/internal/domain"
)

const (
	prodID          = "-//OpenInvite//Invitations//EN"
	defaultDuration = 3 * time.Hour
	maxLineOctets   = 75

	dateLayout     = "20060102"
	dateTimeLayout = "20060102T150405"
)

// ErrNoDate is returned for events without a parseable date.
var ErrNoDate = errors.New("calendar event has no date")

type icsEncoder struct {
	now func() time.Time
}

// NewICSEncoder returns a CalendarEncoder producing a single-event VCALENDAR.
// Timed events are written in floating local time and last three hours; events
// without a time are all-day.
func NewICSEncoder() domain.CalendarEncoder {
	return &icsEncoder{now: time.Now}
}

func (e *icsEncoder) Encode(ev domain.CalendarEvent) ([]byte, error) {
	if ev.Date == nil {
		return nil, ErrNoDate
	}
	day, err := time.Parse("2006-01-02", strings.TrimSpace(*ev.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoDate, *ev.Date)
	}

	var b bytes.Buffer
	w := func(name, value string) { writeLine(&b, name+":"+value) }

	w("BEGIN", "VCALENDAR")
	w("VERSION", "2.0")
	w("PRODID", prodID)
	w("CALSCALE", "GREGORIAN")
	w("METHOD", "PUBLISH")
	w("BEGIN", "VEVENT")
	w("UID", escapeText(ev.UID))
	w("DTSTAMP", e.now().UTC().Format(dateTimeLayout)+"Z")

	if start, ok := startTime(day, ev.Time); ok {
		w("DTSTART", start.Format(dateTimeLayout))
		w("DTEND", start.Add(defaultDuration).Format(dateTimeLayout))
	} else {
		w("DTSTART;VALUE=DATE", day.Format(dateLayout))
		w("DTEND;VALUE=DATE", day.AddDate(0, 0, 1).Format(dateLayout))
	}

	w("SUMMARY", escapeText(ev.Title))
	if ev.Location != nil && strings.TrimSpace(*ev.Location) != "" {
		w("LOCATION", escapeText(*ev.Location))
	}
	if ev.Description != nil && strings.TrimSpace(*ev.Description) != "" {
		w("DESCRIPTION", escapeText(*ev.Description))
	}
	if ev.URL != "" {
		w("URL", ev.URL)
	}
	w("END", "VEVENT")
	w("END", "VCALENDAR")
	return b.Bytes(), nil
}

func startTime(day time.Time, clock *string) (time.Time, bool) {
	if clock == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", strings.TrimSpace(*clock))
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), true
}

func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
		"\r", `\n`,
	)
	return r.Replace(s)
}

// writeLine folds content lines longer than 75 octets without splitting a
// UTF-8 sequence and terminates each with CRLF.
func writeLine(b *bytes.Buffer, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// continuation lines carry a leading space
		limit = maxLineOctets - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}
