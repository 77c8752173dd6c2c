package domain

import (
	"context"
	"time"
)

// Response is a guest's saved RSVP. A guest has at most one.
type Response struct {
	ID      string `json:"id"`
	GuestID string `json:"guest_id"`
	Key     string `json:"response"`

	Adults *int `json:"adults,omitempty"`
	Kids   *int `json:"kids,omitempty"`
	Total  *int `json:"total,omitempty"`

	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResponseRepository defines the interface for RSVP storage.
type ResponseRepository interface {
	// GetByGuestID returns ErrNotFound when the guest has not answered yet.
	GetByGuestID(ctx context.Context, guestID string) (*Response, error)
	// Upsert creates or replaces the guest's response and sets ID and timestamps.
	Upsert(ctx context.Context, r *Response) error
}

// ResponseSubmission is a posted RSVP form.
type ResponseSubmission struct {
	Key     string
	Adults  *int
	Kids    *int
	Total   *int
	Message string
	// GuestName is read only by open RSVP submissions.
	GuestName string
}

// ResponseService records guest answers.
type ResponseService interface {
	Submit(ctx context.Context, guestToken string, sub ResponseSubmission) (*Response, error)
	// SubmitOpen creates a guest for an open link and returns the new guest token.
	SubmitOpen(ctx context.Context, openToken string, sub ResponseSubmission) (string, error)
}
