package controllers

import (
	"context"
	"io"
	"log/slog"

	"openinvite/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeCardService implements domain.CardService for handler tests.
type fakeCardService struct {
	page string
	ics  []byte
	err  error

	lastToken        string
	lastTouchpoint   string
	lastOwnerID      string
	lastInvitationID string
	lastMode         string
	lastDraft        *domain.Invitation
}

func (f *fakeCardService) RenderGuest(_ context.Context, token, touchpoint string) (string, error) {
	f.lastToken, f.lastTouchpoint = token, touchpoint
	return f.page, f.err
}

func (f *fakeCardService) RenderOpen(_ context.Context, openToken, touchpoint string) (string, error) {
	f.lastToken, f.lastTouchpoint = openToken, touchpoint
	return f.page, f.err
}

func (f *fakeCardService) RenderPreview(_ context.Context, ownerID, invitationID, mode string) (string, error) {
	f.lastOwnerID, f.lastInvitationID, f.lastMode = ownerID, invitationID, mode
	return f.page, f.err
}

func (f *fakeCardService) RenderDraft(_ context.Context, draft *domain.Invitation) (string, error) {
	f.lastDraft = draft
	return f.page, f.err
}

func (f *fakeCardService) RenderCalendar(_ context.Context, token string) (string, error) {
	f.lastToken = token
	return f.page, f.err
}

func (f *fakeCardService) ExportCalendar(_ context.Context, token string) ([]byte, error) {
	f.lastToken = token
	return f.ics, f.err
}

// fakeResponseService implements domain.ResponseService for handler tests.
type fakeResponseService struct {
	err       error
	newToken  string
	lastToken string
	lastSub   domain.ResponseSubmission
	submitted bool
}

func (f *fakeResponseService) Submit(_ context.Context, token string, sub domain.ResponseSubmission) (*domain.Response, error) {
	f.lastToken, f.lastSub, f.submitted = token, sub, true
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Response{ID: "resp-1", Key: sub.Key}, nil
}

func (f *fakeResponseService) SubmitOpen(_ context.Context, openToken string, sub domain.ResponseSubmission) (string, error) {
	f.lastToken, f.lastSub, f.submitted = openToken, sub, true
	if f.err != nil {
		return "", f.err
	}
	return f.newToken, nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}
