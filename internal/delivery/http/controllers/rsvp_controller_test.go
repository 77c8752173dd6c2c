package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openinvite/internal/domain"
)

func postForm(t *testing.T, mux *http.ServeMux, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "http://test"+target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestRSVPController_Submit(t *testing.T) {
	tests := []struct {
		name          string
		form          url.Values
		err           error
		wantStatus    int
		wantLocation  string
		wantBody      string
		wantSubmitted bool
	}{
		{
			name:          "saved",
			form:          url.Values{"response": {"yes"}, "adults": {" 2 "}, "kids": {""}, "message": {"see you"}},
			wantStatus:    http.StatusSeeOther,
			wantLocation:  "/i/tok-1",
			wantSubmitted: true,
		},
		{
			name:       "count not a number",
			form:       url.Values{"response": {"yes"}, "total": {"two"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "We couldn't save that",
		},
		{
			name:          "rejected by service",
			form:          url.Values{"response": {"later"}},
			err:           domain.ErrInvalidResponse,
			wantStatus:    http.StatusBadRequest,
			wantBody:      "We couldn't save that",
			wantSubmitted: true,
		},
		{
			name:          "unknown guest",
			form:          url.Values{"response": {"yes"}},
			err:           domain.ErrNotFound,
			wantStatus:    http.StatusNotFound,
			wantBody:      "Invitation not found",
			wantSubmitted: true,
		},
		{
			name:          "closed",
			form:          url.Values{"response": {"yes"}},
			err:           domain.ErrRSVPClosed,
			wantStatus:    http.StatusConflict,
			wantBody:      "RSVPs are closed",
			wantSubmitted: true,
		},
		{
			name:          "unexpected",
			form:          url.Values{"response": {"yes"}},
			err:           assert.AnError,
			wantStatus:    http.StatusInternalServerError,
			wantBody:      "Something went wrong",
			wantSubmitted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeResponseService{err: tt.err}
			mux := http.NewServeMux()
			mux.HandleFunc("POST /i/{token}/rsvp", NewRSVPController(testLogger, fake).Submit)

			rr := postForm(t, mux, "/i/tok-1/rsvp", tt.form)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantSubmitted, fake.submitted)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
				assert.Equal(t, "tok-1", fake.lastToken)
				assert.Equal(t, "yes", fake.lastSub.Key)
				require.NotNil(t, fake.lastSub.Adults)
				assert.Equal(t, 2, *fake.lastSub.Adults)
				assert.Nil(t, fake.lastSub.Kids)
				assert.Nil(t, fake.lastSub.Total)
				assert.Equal(t, "see you", fake.lastSub.Message)
			}
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRSVPController_SubmitOpen(t *testing.T) {
	t.Run("redirects to the new guest card", func(t *testing.T) {
		fake := &fakeResponseService{newToken: "fresh-token"}
		mux := http.NewServeMux()
		mux.HandleFunc("POST /o/{openToken}/rsvp", NewRSVPController(testLogger, fake).SubmitOpen)

		rr := postForm(t, mux, "/o/open-1/rsvp", url.Values{"guest_name": {"Walk In"}, "response": {"yes"}, "total": {"3"}})

		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/i/fresh-token", rr.Header().Get("Location"))
		assert.Equal(t, "open-1", fake.lastToken)
		assert.Equal(t, "Walk In", fake.lastSub.GuestName)
		require.NotNil(t, fake.lastSub.Total)
		assert.Equal(t, 3, *fake.lastSub.Total)
	})

	t.Run("open rsvp disabled", func(t *testing.T) {
		fake := &fakeResponseService{err: domain.ErrNotFound}
		mux := http.NewServeMux()
		mux.HandleFunc("POST /o/{openToken}/rsvp", NewRSVPController(testLogger, fake).SubmitOpen)

		rr := postForm(t, mux, "/o/open-1/rsvp", url.Values{"guest_name": {"A"}, "response": {"yes"}})

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Header().Get("Location"))
	})
}
