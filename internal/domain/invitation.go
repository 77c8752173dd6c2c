package domain

import (
	"context"
	"time"
)

// Attendance count modes.
const (
	CountModeSplit = "split"
	CountModeTotal = "total"
)

// RSVPOption is one answer a guest may pick, in display order.
type RSVPOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DefaultRSVPOptions returns the yes/no/maybe set used when an invitation
// configures none.
func DefaultRSVPOptions() []RSVPOption {
	return []RSVPOption{
		{Key: "yes", Label: "Yes"},
		{Key: "no", Label: "No"},
		{Key: "maybe", Label: "Maybe"},
	}
}

// Invitation is a host's event together with the template that renders it.
// swagger:model Invitation
type Invitation struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`

	// EventDate is YYYY-MM-DD and EventTime is HH:MM. Both are optional.
	EventDate  *string `json:"event_date,omitempty"`
	EventTime  *string `json:"event_time,omitempty"`
	DateFormat string  `json:"date_format,omitempty"`
	TimeFormat string  `json:"time_format,omitempty"`

	LocationName *string  `json:"location_name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	MapLink      *string  `json:"map_link,omitempty"`
	MapEmbed     *string  `json:"map_embed,omitempty"`
	RegistryLink *string  `json:"registry_link,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	Notes2       *string  `json:"notes_2,omitempty"`
	Notes3       *string  `json:"notes_3,omitempty"`
	HostNames    []string `json:"host_names,omitempty"`

	TemplateURL     string       `json:"template_url"`
	CountMode       string       `json:"count_mode,omitempty"`
	RSVPOptions     []RSVPOption `json:"rsvp_options,omitempty"`
	RSVPEnabled     bool         `json:"rsvp_enabled"`
	OpenRSVPEnabled bool         `json:"open_rsvp_enabled"`
	OpenToken       *string      `json:"open_token,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Options returns the configured RSVP options, or the defaults when none are set.
func (i *Invitation) Options() []RSVPOption {
	if len(i.RSVPOptions) == 0 {
		return DefaultRSVPOptions()
	}
	return i.RSVPOptions
}

// OptionLabel returns the display label for key, or key itself when unknown.
func (i *Invitation) OptionLabel(key string) string {
	for _, o := range i.Options() {
		if o.Key == key {
			return o.Label
		}
	}
	return key
}

// HasOption reports whether key is one of the invitation's RSVP options.
func (i *Invitation) HasOption(key string) bool {
	for _, o := range i.Options() {
		if o.Key == key {
			return true
		}
	}
	return false
}

// Touchpoint is a named moment in an invitation's lifecycle (for example a
// save-the-date) that can override some of the invitation's fields.
type Touchpoint struct {
	ID           string  `json:"id"`
	InvitationID string  `json:"invitation_id"`
	Name         string  `json:"name"`
	Title        *string `json:"title,omitempty"`
	EventDate    *string `json:"event_date,omitempty"`
	EventTime    *string `json:"event_time,omitempty"`
	LocationName *string `json:"location_name,omitempty"`
	TemplateURL  *string `json:"template_url,omitempty"`
}

// Apply returns a copy of inv with every override set on t.
func (t *Touchpoint) Apply(inv Invitation) Invitation {
	if t == nil {
		return inv
	}
	if t.Title != nil {
		inv.Title = *t.Title
	}
	if t.EventDate != nil {
		inv.EventDate = t.EventDate
	}
	if t.EventTime != nil {
		inv.EventTime = t.EventTime
	}
	if t.LocationName != nil {
		inv.LocationName = t.LocationName
	}
	if t.TemplateURL != nil {
		inv.TemplateURL = *t.TemplateURL
	}
	return inv
}

// InvitationRepository defines read access to invitations and their touchpoints.
// Lookups return ErrNotFound when no row matches.
type InvitationRepository interface {
	GetByID(ctx context.Context, id string) (*Invitation, error)
	GetByOpenToken(ctx context.Context, openToken string) (*Invitation, error)
	GetTouchpoint(ctx context.Context, invitationID, name string) (*Touchpoint, error)
}
