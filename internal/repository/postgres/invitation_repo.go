package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"openinvite/internal/domain"
)

const invitationColumns = `
	id, owner_id, title, event_date, event_time, date_format, time_format,
	location_name, address, map_link, map_embed, registry_link,
	notes, notes_2, notes_3, host_names, template_url, count_mode,
	rsvp_options, rsvp_enabled, open_rsvp_enabled, open_token, created_at, updated_at`

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `SELECT` + invitationColumns + `
		FROM invitations
		WHERE id = $1
	`
	return scanInvitation(r.DB.QueryRowContext(ctx, query, id))
}

func (r *invitationRepository) GetByOpenToken(ctx context.Context, openToken string) (*domain.Invitation, error) {
	query := `SELECT` + invitationColumns + `
		FROM invitations
		WHERE open_token = $1
	`
	return scanInvitation(r.DB.QueryRowContext(ctx, query, openToken))
}

func (r *invitationRepository) GetTouchpoint(ctx context.Context, invitationID, name string) (*domain.Touchpoint, error) {
	query := `
		SELECT id, invitation_id, name, title, event_date, event_time, location_name, template_url
		FROM touchpoints
		WHERE invitation_id = $1 AND name = $2
	`
	tp := &domain.Touchpoint{}
	var title, date, clock, location, templateURL sql.NullString
	err := r.DB.QueryRowContext(ctx, query, invitationID, name).Scan(
		&tp.ID, &tp.InvitationID, &tp.Name, &title, &date, &clock, &location, &templateURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	tp.Title = stringPtr(title)
	tp.EventDate = stringPtr(date)
	tp.EventTime = stringPtr(clock)
	tp.LocationName = stringPtr(location)
	tp.TemplateURL = stringPtr(templateURL)
	return tp, nil
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var (
		date, clock, location, address   sql.NullString
		mapLink, mapEmbed, registry      sql.NullString
		notes, notes2, notes3, openToken sql.NullString
		options                          []byte
	)
	err := row.Scan(
		&inv.ID, &inv.OwnerID, &inv.Title, &date, &clock, &inv.DateFormat, &inv.TimeFormat,
		&location, &address, &mapLink, &mapEmbed, &registry,
		&notes, &notes2, &notes3, pq.Array(&inv.HostNames), &inv.TemplateURL, &inv.CountMode,
		&options, &inv.RSVPEnabled, &inv.OpenRSVPEnabled, &openToken, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	inv.EventDate = stringPtr(date)
	inv.EventTime = stringPtr(clock)
	inv.LocationName = stringPtr(location)
	inv.Address = stringPtr(address)
	inv.MapLink = stringPtr(mapLink)
	inv.MapEmbed = stringPtr(mapEmbed)
	inv.RegistryLink = stringPtr(registry)
	inv.Notes = stringPtr(notes)
	inv.Notes2 = stringPtr(notes2)
	inv.Notes3 = stringPtr(notes3)
	inv.OpenToken = stringPtr(openToken)
	if len(options) > 0 {
		if err := json.Unmarshal(options, &inv.RSVPOptions); err != nil {
			return nil, fmt.Errorf("decode rsvp_options: %w", err)
		}
	}
	return inv, nil
}
