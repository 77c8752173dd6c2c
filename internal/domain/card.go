package domain

import "context"

// Preview modes for host previews.
const (
	PreviewModeGuest = "guest"
	PreviewModeOpen  = "open"
)

// TemplateFetcher retrieves a host's raw template HTML.
type TemplateFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// CalendarEvent is the subset of an invitation exported to calendars.
type CalendarEvent struct {
	UID         string
	Title       string
	Date        *string
	Time        *string
	Location    *string
	Description *string
	URL         string
}

// CalendarEncoder serializes a CalendarEvent, e.g. as iCalendar.
type CalendarEncoder interface {
	Encode(ev CalendarEvent) ([]byte, error)
}

// CardService renders invitation cards for each place a card is shown.
type CardService interface {
	RenderGuest(ctx context.Context, guestToken, touchpoint string) (string, error)
	RenderOpen(ctx context.Context, openToken, touchpoint string) (string, error)
	RenderPreview(ctx context.Context, ownerID, invitationID, mode string) (string, error)
	RenderDraft(ctx context.Context, draft *Invitation) (string, error)
	RenderCalendar(ctx context.Context, guestToken string) (string, error)
	ExportCalendar(ctx context.Context, guestToken string) ([]byte, error)
}
