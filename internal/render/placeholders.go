package render

// Kind selects how a placeholder's value is written into its element.
type Kind int

const (
	// KindText replaces the element's content with escaped text.
	KindText Kind = iota
	// KindMultiline replaces the content with rendered lite markdown.
	KindMultiline
	// KindMap injects a sanitized embed, a link href or a synthesized map iframe.
	KindMap
	// KindLink injects an anchor to an external http(s) page.
	KindLink
	// KindCalendar injects an anchor to the calendar export.
	KindCalendar
	// KindFragment injects engine-generated HTML as-is.
	KindFragment
)

// Record fields addressable by a placeholder.
const (
	FieldTitle          = "title"
	FieldDate           = "date"
	FieldTime           = "time"
	FieldLocation       = "location"
	FieldAddress        = "address"
	FieldNotes          = "notes"
	FieldNotes2         = "notes2"
	FieldNotes3         = "notes3"
	FieldHostNames      = "host_names"
	FieldRSVPYesLabel   = "rsvp_yes_label"
	FieldRSVPNoLabel    = "rsvp_no_label"
	FieldRSVPMaybeLabel = "rsvp_maybe_label"
	FieldGuestName      = "guest_name"
	FieldGuestMessage   = "guest_message"
	FieldExpectedAdults = "expected_adults"
	FieldExpectedKids   = "expected_kids"
	FieldExpectedTotal  = "expected_total"
	FieldMap            = "map"
	FieldRegistry       = "registry"
	FieldResponse       = "response"
	FieldCalendar       = "calendar"
)

// Placeholder binds a record field to the element ID that marks where it goes.
type Placeholder struct {
	Field string
	Kind  Kind
	ID    string
}

// DefaultCatalog returns the placeholder IDs template authors write against.
// The IDs are a published contract and must not change.
func DefaultCatalog() []Placeholder {
	return []Placeholder{
		{FieldTitle, KindText, "title"},
		{FieldDate, KindText, "date"},
		{FieldTime, KindText, "time"},
		{FieldLocation, KindText, "location"},
		{FieldAddress, KindMultiline, "address"},
		{FieldNotes, KindMultiline, "notes"},
		{FieldNotes2, KindMultiline, "notes_2"},
		{FieldNotes3, KindMultiline, "notes_3"},
		{FieldHostNames, KindText, "host_names"},
		{FieldRSVPYesLabel, KindText, "rsvp_yes_label"},
		{FieldRSVPNoLabel, KindText, "rsvp_no_label"},
		{FieldRSVPMaybeLabel, KindText, "rsvp_maybe_label"},
		{FieldGuestName, KindText, "guest_name"},
		{FieldGuestMessage, KindMultiline, "guest_message"},
		{FieldExpectedAdults, KindText, "expected_adults"},
		{FieldExpectedKids, KindText, "expected_kids"},
		{FieldExpectedTotal, KindText, "expected_total"},
		{FieldMap, KindMap, "map_link"},
		{FieldRegistry, KindLink, "registry_link"},
		{FieldResponse, KindFragment, "response"},
		{FieldCalendar, KindCalendar, "calendar_link"},
	}
}

// value returns the record datum for field, or nil when absent. The map field
// is resolved by the injector from MapEmbed and MapLink together.
func (r *Record) value(field string) *string {
	switch field {
	case FieldTitle:
		return &r.Title
	case FieldDate:
		return r.Date
	case FieldTime:
		return r.Time
	case FieldLocation:
		return r.Location
	case FieldAddress:
		return r.Address
	case FieldNotes:
		return r.Notes
	case FieldNotes2:
		return r.Notes2
	case FieldNotes3:
		return r.Notes3
	case FieldHostNames:
		return r.HostNames
	case FieldRSVPYesLabel:
		return r.OptionLabel(RSVPYes)
	case FieldRSVPNoLabel:
		return r.OptionLabel(RSVPNo)
	case FieldRSVPMaybeLabel:
		return r.OptionLabel(RSVPMaybe)
	case FieldGuestName:
		return r.GuestName
	case FieldGuestMessage:
		return r.GuestMessage
	case FieldExpectedAdults:
		return intText(r.ExpectedAdults)
	case FieldExpectedKids:
		return intText(r.ExpectedKids)
	case FieldExpectedTotal:
		return intText(r.ExpectedTotal)
	case FieldMap:
		if r.MapEmbed != nil {
			return r.MapEmbed
		}
		return r.MapLink
	case FieldRegistry:
		return r.RegistryLink
	case FieldResponse:
		return r.ResponseForm
	case FieldCalendar:
		return r.CalendarLink
	}
	return nil
}
