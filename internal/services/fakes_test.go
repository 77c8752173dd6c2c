package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"openinvite/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testTimeout = 5 * time.Second

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// fakeInvitationRepo is an in-memory InvitationRepository for tests.
type fakeInvitationRepo struct {
	byID        map[string]*domain.Invitation
	touchpoints map[string]*domain.Touchpoint // keyed by invitationID + "/" + name
	err         error
}

func newFakeInvitationRepo(invs ...*domain.Invitation) *fakeInvitationRepo {
	f := &fakeInvitationRepo{byID: map[string]*domain.Invitation{}, touchpoints: map[string]*domain.Touchpoint{}}
	for _, inv := range invs {
		f.byID[inv.ID] = inv
	}
	return f
}

func (f *fakeInvitationRepo) GetByID(_ context.Context, id string) (*domain.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	if inv, ok := f.byID[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) GetByOpenToken(_ context.Context, openToken string) (*domain.Invitation, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, inv := range f.byID {
		if inv.OpenToken != nil && *inv.OpenToken == openToken {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) GetTouchpoint(_ context.Context, invitationID, name string) (*domain.Touchpoint, error) {
	if tp, ok := f.touchpoints[invitationID+"/"+name]; ok {
		return tp, nil
	}
	return nil, domain.ErrNotFound
}

// fakeGuestRepo is an in-memory GuestRepository for tests.
type fakeGuestRepo struct {
	byToken   map[string]*domain.Guest
	nextID    int
	createErr error
	// responses receives the first response of created guests.
	responses *fakeResponseRepo
}

func newFakeGuestRepo(guests ...*domain.Guest) *fakeGuestRepo {
	f := &fakeGuestRepo{byToken: map[string]*domain.Guest{}, nextID: 1}
	for _, g := range guests {
		f.byToken[g.Token] = g
	}
	return f
}

func (f *fakeGuestRepo) GetByToken(_ context.Context, token string) (*domain.Guest, error) {
	if g, ok := f.byToken[token]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

// CreateWithResponse stores nothing when either write fails.
func (f *fakeGuestRepo) CreateWithResponse(ctx context.Context, g *domain.Guest, r *domain.Response) error {
	if f.createErr != nil {
		return f.createErr
	}
	id := fmt.Sprintf("guest-new-%d", f.nextID)
	r.GuestID = id
	if f.responses != nil {
		if err := f.responses.Upsert(ctx, r); err != nil {
			return err
		}
	}
	g.ID = id
	f.nextID++
	f.byToken[g.Token] = g
	return nil
}

// fakeResponseRepo is an in-memory ResponseRepository for tests.
type fakeResponseRepo struct {
	byGuest   map[string]*domain.Response
	getErr    error
	upsertErr error
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{byGuest: map[string]*domain.Response{}}
}

func (f *fakeResponseRepo) GetByGuestID(_ context.Context, guestID string) (*domain.Response, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if r, ok := f.byGuest[guestID]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeResponseRepo) Upsert(_ context.Context, r *domain.Response) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if prev, ok := f.byGuest[r.GuestID]; ok {
		r.ID = prev.ID
		r.CreatedAt = prev.CreatedAt
	} else {
		r.ID = "resp-" + r.GuestID
		r.CreatedAt = r.UpdatedAt
	}
	f.byGuest[r.GuestID] = r
	return nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID map[string]*domain.User
	err  error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: map[string]*domain.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// fakeFetcher serves templates from a map keyed by URL.
type fakeFetcher struct {
	templates map[string]string
	requested []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.requested = append(f.requested, url)
	if body, ok := f.templates[url]; ok {
		return body, nil
	}
	return "", fmt.Errorf("fetch %s: status 404", url)
}

// fakeEmailService records response notices.
type fakeEmailService struct {
	sent []*domain.ResponseNoticeEmailData
	err  error
}

func (f *fakeEmailService) SendResponseNotice(_ context.Context, data *domain.ResponseNoticeEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}

// fakeCalendar records the last encoded event.
type fakeCalendar struct {
	last domain.CalendarEvent
}

func (f *fakeCalendar) Encode(ev domain.CalendarEvent) ([]byte, error) {
	f.last = ev
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
}
