package render

import "strconv"

// RSVP option keys with a dedicated label placeholder.
const (
	RSVPYes   = "yes"
	RSVPNo    = "no"
	RSVPMaybe = "maybe"
)

// RSVPOption is one choice offered to a guest, in display order.
type RSVPOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Record is the data spliced into a template. A nil field is absent and
// removes its placeholder element; a pointer to "" is present and empty.
type Record struct {
	Title string

	Date     *string
	Time     *string
	Location *string
	Address  *string

	MapLink      *string
	MapEmbed     *string
	RegistryLink *string

	Notes  *string
	Notes2 *string
	Notes3 *string

	HostNames   *string
	RSVPOptions []RSVPOption

	GuestName      *string
	GuestMessage   *string
	ExpectedAdults *int
	ExpectedKids   *int
	ExpectedTotal  *int

	ResponseForm *string
	CalendarLink *string
}

// OptionLabel returns the label of the option with the given key, or nil.
func (r *Record) OptionLabel(key string) *string {
	for _, opt := range r.RSVPOptions {
		if opt.Key == key {
			label := opt.Label
			return &label
		}
	}
	return nil
}

func intText(n *int) *string {
	if n == nil {
		return nil
	}
	s := strconv.Itoa(*n)
	return &s
}

// String returns a pointer to s. Convenience for building records.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }
