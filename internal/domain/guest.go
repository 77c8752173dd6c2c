package domain

import (
	"context"
	"time"
)

// Guest is an invitee reached through a personal token link.
// swagger:model Guest
type Guest struct {
	ID           string  `json:"id"`
	InvitationID string  `json:"invitation_id"`
	Token        string  `json:"-"`
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`

	ExpectedAdults *int `json:"expected_adults,omitempty"`
	ExpectedKids   *int `json:"expected_kids,omitempty"`
	ExpectedTotal  *int `json:"expected_total,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// GuestRepository defines the interface for guest storage.
type GuestRepository interface {
	GetByToken(ctx context.Context, token string) (*Guest, error)
	// CreateWithResponse stores a new guest and their first response
	// atomically, setting both IDs.
	CreateWithResponse(ctx context.Context, guest *Guest, resp *Response) error
}
