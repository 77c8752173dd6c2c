package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"openinvite/internal/delivery/http/helpers"
	"openinvite/internal/delivery/http/middleware"
	"openinvite/internal/domain"
)

// DraftPreviewRequest is the request body for POST /invitations/preview. It
// carries an unsaved invitation so hosts can see a card before saving.
type DraftPreviewRequest struct {
	Title        string              `json:"title"`
	EventDate    *string             `json:"event_date"`
	EventTime    *string             `json:"event_time"`
	DateFormat   string              `json:"date_format"`
	TimeFormat   string              `json:"time_format"`
	LocationName *string             `json:"location_name"`
	Address      *string             `json:"address"`
	MapLink      *string             `json:"map_link"`
	MapEmbed     *string             `json:"map_embed"`
	RegistryLink *string             `json:"registry_link"`
	Notes        *string             `json:"notes"`
	Notes2       *string             `json:"notes_2"`
	Notes3       *string             `json:"notes_3"`
	HostNames    []string            `json:"host_names"`
	TemplateURL  string              `json:"template_url"`
	CountMode    string              `json:"count_mode"`
	RSVPOptions  []domain.RSVPOption `json:"rsvp_options"`
	RSVPEnabled  bool                `json:"rsvp_enabled"`
}

// Validate implements Validator.
func (d DraftPreviewRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(d.TemplateURL) == "" {
		errs = append(errs, "template_url is required")
	}
	if d.CountMode != "" && d.CountMode != domain.CountModeSplit && d.CountMode != domain.CountModeTotal {
		errs = append(errs, `count_mode must be "split" or "total"`)
	}
	for _, o := range d.RSVPOptions {
		if strings.TrimSpace(o.Key) == "" || strings.TrimSpace(o.Label) == "" {
			errs = append(errs, "rsvp_options need a key and a label")
			break
		}
	}
	return errs
}

func (d DraftPreviewRequest) invitation(ownerID string) *domain.Invitation {
	return &domain.Invitation{
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(d.Title),
		EventDate:    d.EventDate,
		EventTime:    d.EventTime,
		DateFormat:   d.DateFormat,
		TimeFormat:   d.TimeFormat,
		LocationName: d.LocationName,
		Address:      d.Address,
		MapLink:      d.MapLink,
		MapEmbed:     d.MapEmbed,
		RegistryLink: d.RegistryLink,
		Notes:        d.Notes,
		Notes2:       d.Notes2,
		Notes3:       d.Notes3,
		HostNames:    d.HostNames,
		TemplateURL:  strings.TrimSpace(d.TemplateURL),
		CountMode:    d.CountMode,
		RSVPOptions:  d.RSVPOptions,
		RSVPEnabled:  d.RSVPEnabled,
	}
}

// CardController serves rendered invitation cards.
type CardController struct {
	Logger  *slog.Logger
	Service domain.CardService
}

func NewCardController(logger *slog.Logger, svc domain.CardService) *CardController {
	return &CardController{
		Logger:  logger,
		Service: svc,
	}
}

// GuestCard godoc
// @Summary Guest invitation card
// @Description Render the invitation for an identified guest, with their RSVP form prefilled from any earlier answer.
// @Tags cards
// @Produce html
// @Param token path string true "Guest token"
// @Param touchpoint query string false "Touchpoint name, e.g. save-the-date"
// @Success 200 {string} string "rendered card"
// @Failure 404 {string} string "static not-found page"
// @Failure 502 {string} string "static template-unavailable page"
// @Router /i/{token} [get]
func (c *CardController) GuestCard(w http.ResponseWriter, r *http.Request) {
	page, err := c.Service.RenderGuest(r.Context(), r.PathValue("token"), r.URL.Query().Get("touchpoint"))
	if err != nil {
		c.writePageError(w, r, err)
		return
	}
	helpers.WriteHTML(w, http.StatusOK, page)
}

// OpenCard godoc
// @Summary Open-RSVP invitation card
// @Description Render the invitation for a visitor of a shareable open link. The form asks for the visitor's name.
// @Tags cards
// @Produce html
// @Param openToken path string true "Open link token"
// @Param touchpoint query string false "Touchpoint name"
// @Success 200 {string} string "rendered card"
// @Failure 404 {string} string "static not-found page"
// @Failure 502 {string} string "static template-unavailable page"
// @Router /o/{openToken} [get]
func (c *CardController) OpenCard(w http.ResponseWriter, r *http.Request) {
	page, err := c.Service.RenderOpen(r.Context(), r.PathValue("openToken"), r.URL.Query().Get("touchpoint"))
	if err != nil {
		c.writePageError(w, r, err)
		return
	}
	helpers.WriteHTML(w, http.StatusOK, page)
}

// CalendarCard godoc
// @Summary Calendar export card
// @Description Render the card shown alongside a calendar export. It has no RSVP form.
// @Tags cards
// @Produce html
// @Param token path string true "Guest token"
// @Success 200 {string} string "rendered card"
// @Failure 404 {string} string "static not-found page"
// @Failure 502 {string} string "static template-unavailable page"
// @Router /i/{token}/calendar [get]
func (c *CardController) CalendarCard(w http.ResponseWriter, r *http.Request) {
	page, err := c.Service.RenderCalendar(r.Context(), r.PathValue("token"))
	if err != nil {
		c.writePageError(w, r, err)
		return
	}
	helpers.WriteHTML(w, http.StatusOK, page)
}

// CalendarICS godoc
// @Summary Download calendar event
// @Description Download the event as an iCalendar file. Returns 404 when the invitation has no date.
// @Tags cards
// @Produce text/calendar
// @Param token path string true "Guest token"
// @Success 200 {string} string "iCalendar document"
// @Failure 404 {string} string "static not-found page"
// @Router /i/{token}/calendar.ics [get]
func (c *CardController) CalendarICS(w http.ResponseWriter, r *http.Request) {
	ics, err := c.Service.ExportCalendar(r.Context(), r.PathValue("token"))
	if err != nil {
		c.writePageError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="invitation.ics"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(ics)
}

// Preview godoc
// @Summary Preview a saved invitation
// @Description Render a saved invitation as a guest (mode=guest, default) or an open-link visitor (mode=open) would see it. Forms are disabled.
// @Tags invitations
// @Produce html
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID"
// @Param mode query string false "guest or open"
// @Success 200 {string} string "rendered card"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /invitations/{invitationID}/preview [get]
func (c *CardController) Preview(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.HostIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	page, err := c.Service.RenderPreview(r.Context(), hostID, r.PathValue("invitationID"), r.URL.Query().Get("mode"))
	if err != nil {
		c.writeJSONError(w, r, err)
		return
	}
	helpers.WriteHTML(w, http.StatusOK, page)
}

// Draft godoc
// @Summary Preview an unsaved invitation
// @Description Render an invitation from the request body without saving it. The RSVP form, when enabled, is disabled.
// @Tags invitations
// @Accept json
// @Produce html
// @Security BearerAuth
// @Param body body DraftPreviewRequest true "Draft invitation"
// @Success 200 {string} string "rendered card"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /invitations/preview [post]
func (c *CardController) Draft(w http.ResponseWriter, r *http.Request) {
	hostID, ok := middleware.HostIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req DraftPreviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	page, err := c.Service.RenderDraft(r.Context(), req.invitation(hostID))
	if err != nil {
		c.writeJSONError(w, r, err)
		return
	}
	helpers.WriteHTML(w, http.StatusOK, page)
}

// writePageError answers a guest-facing request with a static page.
func (c *CardController) writePageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteStaticPage(w, http.StatusNotFound, helpers.PageNotFound)
	case errors.Is(err, domain.ErrTemplateUnavailable):
		c.Logger.WarnContext(r.Context(), "template unavailable", "method", r.Method, "err", err)
		helpers.WriteStaticPage(w, http.StatusBadGateway, helpers.PageTemplateUnavailable)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "err", err)
		helpers.WriteStaticPage(w, http.StatusInternalServerError, helpers.PageServerError)
	}
}

// writeJSONError answers a host request with the JSON envelope.
func (c *CardController) writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not your invitation")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
	case errors.Is(err, domain.ErrTemplateUnavailable):
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeBadGateway, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
