package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "openinvite/internal/delivery/http/helpers"
	"openinvite/internal/domain"
)

// HostCookieName is the session cookie set at login so previews opened by
// browser navigation carry the host token.
const HostCookieName = "openinvite_host"

// hostCookiePath limits the session cookie to the host routes.
const hostCookiePath = "/invitations"

const (
	sourceHeader = "header"
	sourceCookie = "cookie"
)

var (
	errNoCredentials = errors.New("missing host credentials")
	errBadScheme     = errors.New("authorization header must use the Bearer scheme")
)

type hostIDKey struct{}

// WithHostID returns ctx carrying the authenticated host's user ID.
func WithHostID(ctx context.Context, hostID string) context.Context {
	return context.WithValue(ctx, hostIDKey{}, hostID)
}

// HostIDFromContext returns the host set by RequireHost, if any.
func HostIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(hostIDKey{}).(string)
	return id, ok && id != ""
}

// RequireHost guards the invitation preview routes. The token comes from an
// Authorization Bearer header or, for GET and HEAD only, from the session
// cookie. A rejected cookie is cleared so the browser stops replaying it.
func RequireHost(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, source, err := hostToken(r)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
				return
			}
			hostID, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "host token rejected", "source", source, "path", r.URL.Path, "err", err)
				if source == sourceCookie {
					ClearHostCookie(w, r)
				}
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(WithHostID(r.Context(), hostID)))
		}
	}
}

// hostToken prefers the Authorization header. The cookie is ignored on unsafe
// methods so a cross-site form post cannot use it.
func hostToken(r *http.Request) (token, source string, err error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, rest, _ := strings.Cut(header, " ")
		if !strings.EqualFold(scheme, "Bearer") {
			return "", "", errBadScheme
		}
		if token = strings.TrimSpace(rest); token == "" {
			return "", "", errNoCredentials
		}
		return token, sourceHeader, nil
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return "", "", errNoCredentials
	}
	c, err := r.Cookie(HostCookieName)
	if err != nil || c.Value == "" {
		return "", "", errNoCredentials
	}
	return c.Value, sourceCookie, nil
}

// SetHostCookie stores the host token for ttl. Secure is set whenever the
// request reached us over HTTPS, including behind a proxy.
func SetHostCookie(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     HostCookieName,
		Value:    token,
		Path:     hostCookiePath,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   isHTTPSRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearHostCookie expires the host session cookie.
func ClearHostCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     HostCookieName,
		Value:    "",
		Path:     hostCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isHTTPSRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}
