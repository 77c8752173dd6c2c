package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"openinvite/internal/delivery/http/helpers"
	"openinvite/internal/domain"
)

// maxFormBody caps posted RSVP forms.
const maxFormBody = 64 << 10

// RSVPController accepts RSVP form posts from rendered cards.
type RSVPController struct {
	Logger  *slog.Logger
	Service domain.ResponseService
}

func NewRSVPController(logger *slog.Logger, svc domain.ResponseService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Submit an RSVP
// @Description Save or replace the guest's response, then redirect back to their card.
// @Tags rsvp
// @Accept x-www-form-urlencoded
// @Produce html
// @Param token path string true "Guest token"
// @Param response formData string true "Option key"
// @Param adults formData int false "Adults (split count mode)"
// @Param kids formData int false "Kids (split count mode)"
// @Param total formData int false "Guests (total count mode)"
// @Param message formData string false "Message to the host"
// @Success 303 "redirect to /i/{token}"
// @Failure 400 {string} string "static bad-request page"
// @Failure 404 {string} string "static not-found page"
// @Failure 409 {string} string "static rsvp-closed page"
// @Router /i/{token}/rsvp [post]
func (c *RSVPController) Submit(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	sub, err := parseSubmission(w, r)
	if err != nil {
		helpers.WriteStaticPage(w, http.StatusBadRequest, helpers.PageBadRequest)
		return
	}
	if _, err := c.Service.Submit(r.Context(), token, sub); err != nil {
		c.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, "/i/"+url.PathEscape(token), http.StatusSeeOther)
}

// SubmitOpen godoc
// @Summary Submit an RSVP from an open link
// @Description Create a guest for the visitor, save their response and redirect to their personal card.
// @Tags rsvp
// @Accept x-www-form-urlencoded
// @Produce html
// @Param openToken path string true "Open link token"
// @Param guest_name formData string true "Visitor name"
// @Param response formData string true "Option key"
// @Param adults formData int false "Adults (split count mode)"
// @Param kids formData int false "Kids (split count mode)"
// @Param total formData int false "Guests (total count mode)"
// @Param message formData string false "Message to the host"
// @Success 303 "redirect to /i/{newToken}"
// @Failure 400 {string} string "static bad-request page"
// @Failure 404 {string} string "static not-found page"
// @Failure 409 {string} string "static rsvp-closed page"
// @Router /o/{openToken}/rsvp [post]
func (c *RSVPController) SubmitOpen(w http.ResponseWriter, r *http.Request) {
	sub, err := parseSubmission(w, r)
	if err != nil {
		helpers.WriteStaticPage(w, http.StatusBadRequest, helpers.PageBadRequest)
		return
	}
	guestToken, err := c.Service.SubmitOpen(r.Context(), r.PathValue("openToken"), sub)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, "/i/"+url.PathEscape(guestToken), http.StatusSeeOther)
}

func (c *RSVPController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidResponse):
		helpers.WriteStaticPage(w, http.StatusBadRequest, helpers.PageBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteStaticPage(w, http.StatusNotFound, helpers.PageNotFound)
	case errors.Is(err, domain.ErrRSVPClosed):
		helpers.WriteStaticPage(w, http.StatusConflict, helpers.PageRSVPClosed)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "err", err)
		helpers.WriteStaticPage(w, http.StatusInternalServerError, helpers.PageServerError)
	}
}

// parseSubmission reads an RSVP form post. Blank counts are absent.
func parseSubmission(w http.ResponseWriter, r *http.Request) (domain.ResponseSubmission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		return domain.ResponseSubmission{}, err
	}
	sub := domain.ResponseSubmission{
		Key:       r.PostForm.Get("response"),
		Message:   r.PostForm.Get("message"),
		GuestName: r.PostForm.Get("guest_name"),
	}
	var err error
	if sub.Adults, err = formInt(r.PostForm, "adults"); err != nil {
		return sub, err
	}
	if sub.Kids, err = formInt(r.PostForm, "kids"); err != nil {
		return sub, err
	}
	if sub.Total, err = formInt(r.PostForm, "total"); err != nil {
		return sub, err
	}
	return sub, nil
}

func formInt(form url.Values, key string) (*int, error) {
	s := strings.TrimSpace(form.Get(key))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", key)
	}
	return &n, nil
}
