package gamerepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getQuery = `SELECT id, name, active, validation_enabled, validator, max_moves, max_score, board_width, board_height
        FROM games
        WHERE id = $1`

func TestRepository_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := New(mock)

	columns := []string{"id", "name", "active", "validation_enabled", "validator", "max_moves", "max_score", "board_width", "board_height"}

	tests := []struct {
		name      string
		id        string
		mockSetup func()
		expectErr bool
		result    *domain.Game
	}{
		{
			name: "Seeded game",
			id:   "blocks",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
					WithArgs("blocks").
					WillReturnRows(pgxmock.NewRows(columns).AddRow("blocks", "Blocks", true, true, "blocks", 5000, int64(0), 10, 20))
			},
			result: &domain.Game{
				ID: "blocks", Name: "Blocks", Active: true, ValidationEnabled: true, Validator: "blocks",
				MaxMoves: 5000, BoardWidth: 10, BoardHeight: 20,
			},
		},
		{
			name: "Unknown game",
			id:   "chess",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
					WithArgs("chess").
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			id:   "blocks",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(getQuery)).
					WithArgs("blocks").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			game, err := repo.Get(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, game)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
