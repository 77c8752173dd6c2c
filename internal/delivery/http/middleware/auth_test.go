package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openinvite/internal/delivery/http/helpers"
)

var errExpired = errors.New("token is expired")

// tokenTable verifies a fixed set of tokens and records what it was asked.
type tokenTable struct {
	hosts map[string]string
	seen  []string
}

func (v *tokenTable) Verify(token string) (string, error) {
	v.seen = append(v.seen, token)
	if id, ok := v.hosts[token]; ok {
		return id, nil
	}
	return "", errExpired
}

func TestRequireHost(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		method      string
		header      string
		cookie      string
		wantStatus  int
		wantHost    string
		wantToken   string
		wantCleared bool
	}{
		{
			name:       "bearer header",
			method:     http.MethodGet,
			header:     "Bearer jwt-dana",
			wantStatus: http.StatusOK,
			wantHost:   "host-dana",
			wantToken:  "jwt-dana",
		},
		{
			name:       "scheme is case insensitive",
			method:     http.MethodPost,
			header:     "bearer jwt-dana",
			wantStatus: http.StatusOK,
			wantHost:   "host-dana",
			wantToken:  "jwt-dana",
		},
		{
			name:       "session cookie on preview navigation",
			method:     http.MethodGet,
			cookie:     "jwt-dana",
			wantStatus: http.StatusOK,
			wantHost:   "host-dana",
			wantToken:  "jwt-dana",
		},
		{
			name:       "header wins over cookie",
			method:     http.MethodGet,
			header:     "Bearer jwt-eli",
			cookie:     "jwt-dana",
			wantStatus: http.StatusOK,
			wantHost:   "host-eli",
			wantToken:  "jwt-eli",
		},
		{
			name:       "cookie ignored on draft post",
			method:     http.MethodPost,
			cookie:     "jwt-dana",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no credentials",
			method:     http.MethodGet,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "basic auth rejected",
			method:     http.MethodGet,
			header:     "Basic ZGFuYTpodW50ZXIy",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer",
			method:     http.MethodGet,
			header:     "Bearer   ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired header token",
			method:     http.MethodGet,
			header:     "Bearer jwt-old",
			wantStatus: http.StatusUnauthorized,
			wantToken:  "jwt-old",
		},
		{
			name:        "expired cookie is cleared",
			method:      http.MethodGet,
			cookie:      "jwt-old",
			wantStatus:  http.StatusUnauthorized,
			wantToken:   "jwt-old",
			wantCleared: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &tokenTable{hosts: map[string]string{"jwt-dana": "host-dana", "jwt-eli": "host-eli"}}
			var gotHost string
			next := func(w http.ResponseWriter, r *http.Request) {
				gotHost, _ = HostIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(tt.method, "http://test/invitations/inv-1/preview", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: HostCookieName, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()

			RequireHost(verifier, logger)(next)(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantHost, gotHost)
			if tt.wantToken != "" {
				assert.Equal(t, []string{tt.wantToken}, verifier.seen)
			} else {
				assert.Empty(t, verifier.seen)
			}

			cleared := false
			for _, c := range rr.Result().Cookies() {
				if c.Name == HostCookieName && c.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.wantCleared, cleared)

			if tt.wantStatus == http.StatusUnauthorized {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
			}
		})
	}
}

func TestSetHostCookie(t *testing.T) {
	tests := []struct {
		name       string
		proto      string
		wantSecure bool
	}{
		{"plain http", "", false},
		{"behind tls proxy", "https", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "http://test/auth/login", nil)
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			rr := httptest.NewRecorder()

			SetHostCookie(rr, req, "jwt-dana", 2*time.Hour)

			cookies := rr.Result().Cookies()
			require.Len(t, cookies, 1)
			c := cookies[0]
			assert.Equal(t, HostCookieName, c.Name)
			assert.Equal(t, "jwt-dana", c.Value)
			assert.Equal(t, "/invitations", c.Path)
			assert.Equal(t, 7200, c.MaxAge)
			assert.True(t, c.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
			assert.Equal(t, tt.wantSecure, c.Secure)
		})
	}
}

func TestHostIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := HostIDFromContext(req.Context())
	assert.False(t, ok)

	_, ok = HostIDFromContext(WithHostID(req.Context(), ""))
	assert.False(t, ok)
}
