package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openinvite/internal/domain"
)

func str(s string) *string { return &s }

func fixedEncoder() *icsEncoder {
	return &icsEncoder{now: func() time.Time { return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC) }}
}

func TestICSEncoder_TimedEvent(t *testing.T) {
	out, err := fixedEncoder().Encode(domain.CalendarEvent{
		UID:         "guest-1@openinvite",
		Title:       "Rooftop Jam",
		Date:        str("2026-08-23"),
		Time:        str("21:00"),
		Location:    str("The Roof, Level 9; Main St"),
		Description: str("Bring snacks\nand friends"),
		URL:         "https://invite.example/i/tok",
	})
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\n"))
	assert.True(t, strings.HasSuffix(s, "END:VEVENT\r\nEND:VCALENDAR\r\n"))
	assert.Contains(t, s, "UID:guest-1@openinvite\r\n")
	assert.Contains(t, s, "DTSTAMP:20260601T080000Z\r\n")
	assert.Contains(t, s, "DTSTART:20260823T210000\r\n")
	assert.Contains(t, s, "DTEND:20260824T000000\r\n")
	assert.Contains(t, s, "SUMMARY:Rooftop Jam\r\n")
	assert.Contains(t, s, `LOCATION:The Roof\, Level 9\; Main St`+"\r\n")
	assert.Contains(t, s, `DESCRIPTION:Bring snacks\nand friends`+"\r\n")
	assert.Contains(t, s, "URL:https://invite.example/i/tok\r\n")
}

func TestICSEncoder_AllDay(t *testing.T) {
	tests := []struct {
		name  string
		clock *string
	}{
		{"no time", nil},
		{"free text time", str("after sunset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := fixedEncoder().Encode(domain.CalendarEvent{UID: "u", Title: "Picnic", Date: str("2026-12-31"), Time: tt.clock})
			require.NoError(t, err)
			s := string(out)
			assert.Contains(t, s, "DTSTART;VALUE=DATE:20261231\r\n")
			assert.Contains(t, s, "DTEND;VALUE=DATE:20270101\r\n")
			assert.NotContains(t, s, "LOCATION")
			assert.NotContains(t, s, "URL:")
		})
	}
}

func TestICSEncoder_RequiresDate(t *testing.T) {
	_, err := fixedEncoder().Encode(domain.CalendarEvent{Title: "x"})
	require.ErrorIs(t, err, ErrNoDate)

	_, err = fixedEncoder().Encode(domain.CalendarEvent{Title: "x", Date: str("sometime in May")})
	require.ErrorIs(t, err, ErrNoDate)
}

func TestICSEncoder_FoldsLongLines(t *testing.T) {
	title := strings.Repeat("é", 60)
	out, err := fixedEncoder().Encode(domain.CalendarEvent{UID: "u", Title: title, Date: str("2026-08-23")})
	require.NoError(t, err)

	var unfolded strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 75)
		if strings.HasPrefix(line, " ") {
			unfolded.WriteString(line[1:])
			continue
		}
		unfolded.WriteString("\n" + line)
	}
	assert.Contains(t, unfolded.String(), "\nSUMMARY:"+title)
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, `a\\b\;c\,d\ne`, escapeText("a\\b;c,d\r\ne"))
}
