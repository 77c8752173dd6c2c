package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"openinvite/internal/domain"
	"openinvite/internal/render"
)

// previewGuestName stands in for the guest in host previews.
const previewGuestName = "Guest Name"

type formKind int

const (
	formNone formKind = iota
	formIdentified
	formOpen
)

// cardView describes who is looking at a card and how they may answer.
type cardView struct {
	guest        *domain.Guest
	prior        *domain.Response
	form         formKind
	action       string
	disabled     bool
	calendarLink *string
}

type cardService struct {
	invitationRepo domain.InvitationRepository
	guestRepo      domain.GuestRepository
	responseRepo   domain.ResponseRepository
	fetcher        domain.TemplateFetcher
	calendar       domain.CalendarEncoder
	engine         *render.Engine
	baseURL        string
	contextTimeout time.Duration
	logger         *slog.Logger
}

// NewCardService returns the CardService. baseURL is the public origin used for
// calendar links, without a trailing slash.
func NewCardService(
	invitationRepo domain.InvitationRepository,
	guestRepo domain.GuestRepository,
	responseRepo domain.ResponseRepository,
	fetcher domain.TemplateFetcher,
	calendar domain.CalendarEncoder,
	engine *render.Engine,
	baseURL string,
	timeout time.Duration,
	logger *slog.Logger,
) domain.CardService {
	return &cardService{
		invitationRepo: invitationRepo,
		guestRepo:      guestRepo,
		responseRepo:   responseRepo,
		fetcher:        fetcher,
		calendar:       calendar,
		engine:         engine,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		contextTimeout: timeout,
		logger:         logger,
	}
}

func (s *cardService) RenderGuest(ctx context.Context, guestToken, touchpoint string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	guest, inv, err := s.loadGuest(ctx, guestToken)
	if err != nil {
		return "", err
	}
	if inv, err = s.applyTouchpoint(ctx, inv, touchpoint); err != nil {
		return "", err
	}
	prior, err := s.responseRepo.GetByGuestID(ctx, guest.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("get response: %w", err)
		}
		prior = nil
	}
	return s.render(ctx, inv, cardView{
		guest:        guest,
		prior:        prior,
		form:         formIdentified,
		action:       "/i/" + url.PathEscape(guestToken) + "/rsvp",
		calendarLink: s.calendarLink(inv, guestToken),
	})
}

func (s *cardService) RenderOpen(ctx context.Context, openToken, touchpoint string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.loadOpen(ctx, openToken)
	if err != nil {
		return "", err
	}
	if inv, err = s.applyTouchpoint(ctx, inv, touchpoint); err != nil {
		return "", err
	}
	return s.render(ctx, inv, cardView{
		form:   formOpen,
		action: "/o/" + url.PathEscape(openToken) + "/rsvp",
	})
}

func (s *cardService) RenderPreview(ctx context.Context, ownerID, invitationID, mode string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	view, err := previewView(mode)
	if err != nil {
		return "", err
	}
	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get invitation: %w", err)
	}
	if inv.OwnerID != ownerID {
		return "", domain.ErrForbidden
	}
	return s.render(ctx, inv, view)
}

func (s *cardService) RenderDraft(ctx context.Context, draft *domain.Invitation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if draft == nil || strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.TemplateURL) == "" {
		return "", fmt.Errorf("%w: title and template_url are required", domain.ErrInvalidInput)
	}
	view, _ := previewView(domain.PreviewModeGuest)
	return s.render(ctx, draft, view)
}

func (s *cardService) RenderCalendar(ctx context.Context, guestToken string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	guest, inv, err := s.loadGuest(ctx, guestToken)
	if err != nil {
		return "", err
	}
	return s.render(ctx, inv, cardView{
		guest:        guest,
		form:         formNone,
		calendarLink: s.calendarLink(inv, guestToken),
	})
}

func (s *cardService) ExportCalendar(ctx context.Context, guestToken string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	guest, inv, err := s.loadGuest(ctx, guestToken)
	if err != nil {
		return nil, err
	}
	if present(inv.EventDate) == nil {
		return nil, fmt.Errorf("%w: invitation has no date", domain.ErrNotFound)
	}
	ics, err := s.calendar.Encode(domain.CalendarEvent{
		UID:         guest.ID + "@openinvite",
		Title:       inv.Title,
		Date:        inv.EventDate,
		Time:        present(inv.EventTime),
		Location:    joinLocation(inv),
		Description: present(inv.Notes),
		URL:         s.baseURL + "/i/" + url.PathEscape(guestToken),
	})
	if err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return ics, nil
}

func (s *cardService) loadGuest(ctx context.Context, token string) (*domain.Guest, *domain.Invitation, error) {
	guest, err := s.guestRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get guest: %w", err)
	}
	inv, err := s.invitationRepo.GetByID(ctx, guest.InvitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get invitation: %w", err)
	}
	return guest, inv, nil
}

func (s *cardService) loadOpen(ctx context.Context, openToken string) (*domain.Invitation, error) {
	inv, err := s.invitationRepo.GetByOpenToken(ctx, openToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if !inv.OpenRSVPEnabled {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// applyTouchpoint returns inv with the named touchpoint's overrides. An
// unknown touchpoint leaves the invitation as is.
func (s *cardService) applyTouchpoint(ctx context.Context, inv *domain.Invitation, name string) (*domain.Invitation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return inv, nil
	}
	tp, err := s.invitationRepo.GetTouchpoint(ctx, inv.ID, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.DebugContext(ctx, "unknown touchpoint", "invitation_id", inv.ID, "touchpoint", name)
			return inv, nil
		}
		return nil, fmt.Errorf("get touchpoint: %w", err)
	}
	applied := tp.Apply(*inv)
	return &applied, nil
}

func (s *cardService) calendarLink(inv *domain.Invitation, guestToken string) *string {
	if present(inv.EventDate) == nil {
		return nil
	}
	link := s.baseURL + "/i/" + url.PathEscape(guestToken) + "/calendar.ics"
	return &link
}

func (s *cardService) render(ctx context.Context, inv *domain.Invitation, view cardView) (string, error) {
	rec, err := buildRecord(inv, view)
	if err != nil {
		return "", err
	}
	raw, err := s.fetcher.Fetch(ctx, inv.TemplateURL)
	if err != nil {
		s.logger.WarnContext(ctx, "template fetch failed", "invitation_id", inv.ID, "err", err)
		return "", fmt.Errorf("%w: %v", domain.ErrTemplateUnavailable, err)
	}
	return s.engine.Render(raw, rec), nil
}

func previewView(mode string) (cardView, error) {
	switch mode {
	case "", domain.PreviewModeGuest:
		return cardView{
			guest:    &domain.Guest{Name: previewGuestName},
			form:     formIdentified,
			disabled: true,
		}, nil
	case domain.PreviewModeOpen:
		return cardView{form: formOpen, disabled: true}, nil
	default:
		return cardView{}, fmt.Errorf("%w: unknown preview mode %q", domain.ErrInvalidInput, mode)
	}
}

// buildRecord maps an invitation and view onto the render record. Blank
// optional fields count as absent.
func buildRecord(inv *domain.Invitation, view cardView) (render.Record, error) {
	rec := render.Record{
		Title:        inv.Title,
		Location:     present(inv.LocationName),
		Address:      present(inv.Address),
		MapLink:      present(inv.MapLink),
		MapEmbed:     present(inv.MapEmbed),
		RegistryLink: present(inv.RegistryLink),
		Notes:        present(inv.Notes),
		Notes2:       present(inv.Notes2),
		Notes3:       present(inv.Notes3),
		HostNames:    joinHostNames(inv.HostNames),
		CalendarLink: view.calendarLink,
	}
	if d := present(inv.EventDate); d != nil {
		rec.Date = render.FormatDate(*d, inv.DateFormat)
	}
	if t := present(inv.EventTime); t != nil {
		rec.Time = render.FormatTime(*t, inv.TimeFormat)
	}

	options := inv.Options()
	rec.RSVPOptions = make([]render.RSVPOption, len(options))
	for i, o := range options {
		rec.RSVPOptions[i] = render.RSVPOption{Key: o.Key, Label: o.Label}
	}

	if g := view.guest; g != nil {
		name := g.Name
		rec.GuestName = &name
		rec.ExpectedAdults = g.ExpectedAdults
		rec.ExpectedKids = g.ExpectedKids
		rec.ExpectedTotal = g.ExpectedTotal
	}
	if view.prior != nil && strings.TrimSpace(view.prior.Message) != "" {
		msg := view.prior.Message
		rec.GuestMessage = &msg
	}

	if view.form == formNone || !inv.RSVPEnabled {
		return rec, nil
	}
	in := render.FormInput{
		Action:         view.action,
		Options:        rec.RSVPOptions,
		Mode:           render.CountMode(inv.CountMode).Normalize(),
		Open:           view.form == formOpen,
		ExpectedAdults: rec.ExpectedAdults,
		ExpectedKids:   rec.ExpectedKids,
		ExpectedTotal:  rec.ExpectedTotal,
		Disabled:       view.disabled,
	}
	if rec.GuestName != nil {
		in.GuestName = *rec.GuestName
	}
	if p := view.prior; p != nil {
		in.Prior = &render.PriorResponse{Key: p.Key, Adults: p.Adults, Kids: p.Kids, Total: p.Total, Message: p.Message}
	}
	form, err := render.RenderRSVPForm(in)
	if err != nil {
		return render.Record{}, fmt.Errorf("render rsvp form: %w", err)
	}
	rec.ResponseForm = &form
	return rec, nil
}

func present(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// joinHostNames renders "Ann", "Ann & Bob" or "Ann, Bob & Cy".
func joinHostNames(names []string) *string {
	var kept []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	var out string
	switch len(kept) {
	case 0:
		return nil
	case 1:
		out = kept[0]
	default:
		out = strings.Join(kept[:len(kept)-1], ", ") + " & " + kept[len(kept)-1]
	}
	return &out
}

func joinLocation(inv *domain.Invitation) *string {
	var parts []string
	for _, p := range []*string{present(inv.LocationName), present(inv.Address)} {
		if p != nil {
			parts = append(parts, strings.Join(strings.Fields(*p), " "))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	out := strings.Join(parts, ", ")
	return &out
}
