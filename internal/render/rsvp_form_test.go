package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions = []RSVPOption{{RSVPYes, "Yes"}, {RSVPNo, "No"}, {RSVPMaybe, "Maybe"}}

func TestRenderRSVPForm_CountModes(t *testing.T) {
	tests := []struct {
		name    string
		mode    CountMode
		present []string
		absent  []string
	}{
		{"split", CountSplit, []string{`name="adults"`, `name="kids"`}, []string{`name="total"`}},
		{"total", CountTotal, []string{`name="total"`}, []string{`name="adults"`, `name="kids"`}},
		{"unknown mode counts total", CountMode("bogus"), []string{`name="total"`}, []string{`name="adults"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderRSVPForm(FormInput{Action: "/i/abc/rsvp", Options: testOptions, Mode: tt.mode, GuestName: "Ann"})
			require.NoError(t, err)
			for _, p := range tt.present {
				assert.Equal(t, 1, strings.Count(out, p), p)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
		})
	}
}

func TestRenderRSVPForm_OneRadioPerOption(t *testing.T) {
	out, err := RenderRSVPForm(FormInput{Options: testOptions, Mode: CountTotal})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, `type="radio"`))
	assert.NotContains(t, out, "checked")
}

func TestRenderRSVPForm_PrefillsPriorResponse(t *testing.T) {
	out, err := RenderRSVPForm(FormInput{
		Action:         "/i/abc/rsvp",
		Options:        testOptions,
		Mode:           CountSplit,
		GuestName:      "Ann",
		ExpectedAdults: Int(2),
		ExpectedKids:   Int(2),
		Prior:          &PriorResponse{Key: RSVPNo, Adults: Int(3), Message: "sorry"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `value="no" required checked`)
	assert.Equal(t, 1, strings.Count(out, "checked"))
	assert.Contains(t, out, `name="adults" min="0" value="3"`)
	assert.Contains(t, out, `name="kids" min="0" value="2"`)
	assert.Contains(t, out, ">sorry</textarea>")
	assert.Contains(t, out, `action="/i/abc/rsvp"`)
}

func TestRenderRSVPForm_SeedsExpectedTotal(t *testing.T) {
	out, err := RenderRSVPForm(FormInput{Options: testOptions, Mode: CountTotal, ExpectedTotal: Int(4)})
	require.NoError(t, err)
	assert.Contains(t, out, `name="total" min="0" value="4"`)
}

func TestRenderRSVPForm_OpenAndIdentified(t *testing.T) {
	open, err := RenderRSVPForm(FormInput{Options: testOptions, Mode: CountTotal, Open: true})
	require.NoError(t, err)
	assert.Contains(t, open, `name="guest_name" required`)
	assert.NotContains(t, open, "rsvp-guest")

	known, err := RenderRSVPForm(FormInput{Options: testOptions, Mode: CountTotal, GuestName: "Ann & <b>Bob</b>"})
	require.NoError(t, err)
	assert.NotContains(t, known, `name="guest_name"`)
	assert.Contains(t, known, `<p class="rsvp-guest">Ann &amp; &lt;b&gt;Bob&lt;/b&gt;</p>`)
}

func TestRenderRSVPForm_EscapesOptionsAndMessage(t *testing.T) {
	out, err := RenderRSVPForm(FormInput{
		Options: []RSVPOption{{`yes" onclick="x`, `<script>alert(1)</script>`}},
		Mode:    CountTotal,
		Prior:   &PriorResponse{Message: `</textarea><script>alert(2)</script>`},
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, `" onclick="x`)
}

func TestRenderRSVPForm_Disabled(t *testing.T) {
	out, err := RenderRSVPForm(FormInput{Options: testOptions, Mode: CountSplit, Disabled: true})
	require.NoError(t, err)
	assert.Contains(t, out, "<button type=\"submit\" disabled>")
}
