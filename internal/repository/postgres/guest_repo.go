package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"openinvite/internal/domain"
)

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

func (r *guestRepository) GetByToken(ctx context.Context, token string) (*domain.Guest, error) {
	query := `
		SELECT id, invitation_id, token, name, email, expected_adults, expected_kids, expected_total, created_at
		FROM guests
		WHERE token = $1
	`
	g := &domain.Guest{}
	var email sql.NullString
	var adults, kids, total sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, token).Scan(
		&g.ID, &g.InvitationID, &g.Token, &g.Name, &email, &adults, &kids, &total, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	g.Email = stringPtr(email)
	g.ExpectedAdults = intPtr(adults)
	g.ExpectedKids = intPtr(kids)
	g.ExpectedTotal = intPtr(total)
	return g, nil
}

func (r *guestRepository) CreateWithResponse(ctx context.Context, g *domain.Guest, resp *domain.Response) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO guests (invitation_id, token, name, email, expected_adults, expected_kids, expected_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		g.InvitationID, g.Token, g.Name, g.Email, g.ExpectedAdults, g.ExpectedKids, g.ExpectedTotal, g.CreatedAt,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("insert guest: %w", err)
	}

	resp.GuestID = g.ID
	if err := upsertResponse(ctx, tx, resp); err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return tx.Commit()
}
