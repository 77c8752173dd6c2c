package postgres

import (
	"context"
	"database/sql"
	"errors"

	"openinvite/internal/domain"
)

type responseRepository struct {
	DB *sql.DB
}

func NewResponseRepository(db *sql.DB) domain.ResponseRepository {
	return &responseRepository{DB: db}
}

func (r *responseRepository) GetByGuestID(ctx context.Context, guestID string) (*domain.Response, error) {
	query := `
		SELECT id, guest_id, response_key, adults, kids, total, message, created_at, updated_at
		FROM responses
		WHERE guest_id = $1
	`
	resp := &domain.Response{}
	var adults, kids, total sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, guestID).Scan(
		&resp.ID, &resp.GuestID, &resp.Key, &adults, &kids, &total, &resp.Message, &resp.CreatedAt, &resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	resp.Adults = intPtr(adults)
	resp.Kids = intPtr(kids)
	resp.Total = intPtr(total)
	return resp, nil
}

func (r *responseRepository) Upsert(ctx context.Context, resp *domain.Response) error {
	return upsertResponse(ctx, r.DB, resp)
}

func upsertResponse(ctx context.Context, q queryRower, resp *domain.Response) error {
	query := `
		INSERT INTO responses (guest_id, response_key, adults, kids, total, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (guest_id) DO UPDATE SET
			response_key = EXCLUDED.response_key,
			adults = EXCLUDED.adults,
			kids = EXCLUDED.kids,
			total = EXCLUDED.total,
			message = EXCLUDED.message,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`
	return q.QueryRowContext(ctx, query,
		resp.GuestID, resp.Key, resp.Adults, resp.Kids, resp.Total, resp.Message, resp.UpdatedAt,
	).Scan(&resp.ID, &resp.CreatedAt, &resp.UpdatedAt)
}
