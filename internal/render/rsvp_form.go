package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// CountMode is the invitation-level policy for how attendance is counted.
type CountMode string

const (
	// CountSplit collects adults and kids separately.
	CountSplit CountMode = "split"
	// CountTotal collects a single head count.
	CountTotal CountMode = "total"
)

// Normalize maps unknown modes to CountTotal.
func (m CountMode) Normalize() CountMode {
	if m == CountSplit {
		return CountSplit
	}
	return CountTotal
}

// PriorResponse is a guest's saved answer, used to pre-fill the form on re-edit.
type PriorResponse struct {
	Key     string
	Adults  *int
	Kids    *int
	Total   *int
	Message string
}

// FormInput parameterizes RenderRSVPForm.
type FormInput struct {
	// Action is the URL the form posts to.
	Action  string
	Options []RSVPOption
	Mode    CountMode
	// Open renders a required guest name input instead of the guest's name.
	Open      bool
	GuestName string

	Prior          *PriorResponse
	ExpectedAdults *int
	ExpectedKids   *int
	ExpectedTotal  *int

	// Disabled renders inputs read-only; used by previews.
	Disabled bool
}

type formOption struct {
	Key     string
	Label   string
	Checked bool
}

type formView struct {
	Action    string
	Options   []formOption
	Split     bool
	Open      bool
	GuestName string
	Adults    *int
	Kids      *int
	Total     *int
	Message   string
	Disabled  bool
}

var rsvpFormTmpl = template.Must(template.New("rsvp_form").Parse(rsvpFormHTML))

const rsvpFormHTML = `<form class="rsvp-form" method="post" action="{{.Action}}">
{{- if .Open}}
<label class="rsvp-field">Your name <input type="text" name="guest_name" required maxlength="200"{{if .Disabled}} disabled{{end}}></label>
{{- else}}
<p class="rsvp-guest">{{.GuestName}}</p>
{{- end}}
<fieldset class="rsvp-options">
{{- range .Options}}
<label class="rsvp-option"><input type="radio" name="response" value="{{.Key}}" required{{if .Checked}} checked{{end}}{{if $.Disabled}} disabled{{end}}> {{.Label}}</label>
{{- end}}
</fieldset>
{{- if .Split}}
<label class="rsvp-field">Adults <input type="number" name="adults" min="0"{{with .Adults}} value="{{.}}"{{end}}{{if .Disabled}} disabled{{end}}></label>
<label class="rsvp-field">Kids <input type="number" name="kids" min="0"{{with .Kids}} value="{{.}}"{{end}}{{if .Disabled}} disabled{{end}}></label>
{{- else}}
<label class="rsvp-field">Guests <input type="number" name="total" min="0"{{with .Total}} value="{{.}}"{{end}}{{if .Disabled}} disabled{{end}}></label>
{{- end}}
<label class="rsvp-field">Message <textarea name="message" maxlength="2000"{{if .Disabled}} disabled{{end}}>{{.Message}}</textarea></label>
<button type="submit"{{if .Disabled}} disabled{{end}}>Send RSVP</button>
</form>`

// RenderRSVPForm returns the response form fragment. Every interpolated value
// is escaped by html/template; the result is trusted by the injector.
func RenderRSVPForm(in FormInput) (string, error) {
	view := formView{
		Action:    in.Action,
		Split:     in.Mode.Normalize() == CountSplit,
		Open:      in.Open,
		GuestName: in.GuestName,
		Disabled:  in.Disabled,
	}
	current := ""
	if in.Prior != nil {
		current = in.Prior.Key
		view.Message = in.Prior.Message
	}
	for _, opt := range in.Options {
		view.Options = append(view.Options, formOption{
			Key:     opt.Key,
			Label:   opt.Label,
			Checked: current != "" && opt.Key == current,
		})
	}
	view.Adults, view.Kids, view.Total = in.ExpectedAdults, in.ExpectedKids, in.ExpectedTotal
	if p := in.Prior; p != nil {
		view.Adults = firstSet(p.Adults, view.Adults)
		view.Kids = firstSet(p.Kids, view.Kids)
		view.Total = firstSet(p.Total, view.Total)
	}

	var buf bytes.Buffer
	if err := rsvpFormTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render rsvp form: %w", err)
	}
	return buf.String(), nil
}

func firstSet(a, b *int) *int {
	if a != nil {
		return a
	}
	return b
}
