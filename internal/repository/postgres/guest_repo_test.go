package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openinvite/internal/domain"
)

func TestGuestRepository_GetByToken(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "invitation_id", "token", "name", "email", "expected_adults", "expected_kids", "expected_total", "created_at"}
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
		check   func(t *testing.T, g *domain.Guest)
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM guests`).
					WithArgs("tok-1").
					WillReturnRows(sqlmock.NewRows(cols).AddRow("guest-1", "inv-1", "tok-1", "Ann", "ann@example.com", 2, nil, nil, now))
			},
			check: func(t *testing.T, g *domain.Guest) {
				assert.Equal(t, "guest-1", g.ID)
				assert.Equal(t, "Ann", g.Name)
				require.NotNil(t, g.Email)
				assert.Equal(t, "ann@example.com", *g.Email)
				require.NotNil(t, g.ExpectedAdults)
				assert.Equal(t, 2, *g.ExpectedAdults)
				assert.Nil(t, g.ExpectedKids)
				assert.Nil(t, g.ExpectedTotal)
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM guests`).
					WithArgs("tok-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM guests`).
					WithArgs("tok-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			g, err := NewGuestRepository(db).GetByToken(ctx, "tok-1")
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				tt.check(t, g)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGuestRepository_CreateWithResponse(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	total := 2

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "commits both rows",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO guests`).
					WithArgs("inv-1", "tok-new", "Walk In", nil, nil, nil, nil, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("guest-9"))
				mock.ExpectQuery(`INSERT INTO responses`).
					WithArgs("guest-9", "yes", nil, nil, 2, "", now).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("resp-9", now, now))
				mock.ExpectCommit()
			},
		},
		{
			name: "response failure rolls back guest",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO guests`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("guest-9"))
				mock.ExpectQuery(`INSERT INTO responses`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name: "guest failure rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO guests`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name: "begin failure",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			g := &domain.Guest{InvitationID: "inv-1", Token: "tok-new", Name: "Walk In", CreatedAt: now}
			resp := &domain.Response{Key: "yes", Total: &total, UpdatedAt: now}
			err = NewGuestRepository(db).CreateWithResponse(context.Background(), g, resp)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "guest-9", g.ID)
				assert.Equal(t, "guest-9", resp.GuestID)
				assert.Equal(t, "resp-9", resp.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
