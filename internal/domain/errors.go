package domain

import "errors"

// Sentinel errors shared by services and repositories. Controllers map them to
// HTTP statuses with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRSVPClosed          = errors.New("rsvp is closed")
	ErrInvalidResponse     = errors.New("invalid response")
	ErrTemplateUnavailable = errors.New("template unavailable")
)
