package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "openinvite/internal/delivery/http/helpers"
	"openinvite/internal/delivery/http/middleware"
	"openinvite/internal/domain"
)

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/login
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
	// SessionTTL is the lifetime of the preview session cookie and should
	// match the token expiry.
	SessionTTL time.Duration
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, sessionTTL time.Duration) *AuthController {
	return &AuthController{
		Logger:     logger,
		Service:    svc,
		SessionTTL: sessionTTL,
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticate a host with email and password. Returns a JWT for the preview endpoints and sets it as the openinvite_host cookie so previews open in a browser tab.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal error")
		return
	}

	middleware.SetHostCookie(w, r, token, c.SessionTTL)
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", User: user})
}

// Logout godoc
// @Summary Log out
// @Description Clear the preview session cookie. Bearer tokens stay valid until they expire.
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearHostCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}
