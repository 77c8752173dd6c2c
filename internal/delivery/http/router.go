package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"openinvite/internal/delivery/http/controllers"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Card   *controllers.CardController
	RSVP   *controllers.RSVPController
	Auth   *controllers.AuthController
	Docs   *controllers.DocsController
	Health *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth guards the host preview endpoints.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Guest cards
	mux.HandleFunc("GET /i/{token}", c.Card.GuestCard)
	mux.HandleFunc("POST /i/{token}/rsvp", c.RSVP.Submit)
	mux.HandleFunc("GET /i/{token}/calendar", c.Card.CalendarCard)
	mux.HandleFunc("GET /i/{token}/calendar.ics", c.Card.CalendarICS)
	mux.HandleFunc("GET /o/{openToken}", c.Card.OpenCard)
	mux.HandleFunc("POST /o/{openToken}/rsvp", c.RSVP.SubmitOpen)

	// Host
	mux.HandleFunc("GET /invitations/{invitationID}/preview", requireAuth(c.Card.Preview))
	mux.HandleFunc("POST /invitations/preview", requireAuth(c.Card.Draft))
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/logout", c.Auth.Logout)

	// Docs
	mux.HandleFunc("GET /docs/templates", c.Docs.TemplateGuide)
	mux.HandleFunc("GET /healthz", c.Health.Health)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
