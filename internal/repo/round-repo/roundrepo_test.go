package roundrepo

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	saveQuery = `INSERT INTO round_records (play_id, game_id, wallet, score, game_data, moves_hash, seed_hash, validated, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (wallet, game_id, moves_hash, seed_hash) DO NOTHING`
	statsUpsertQuery = `INSERT INTO user_game_stats (wallet, game_id, games_played, high_score, total_score, last_played_at)
        VALUES ($1, $2, 1, $3, $3, $4)`
	statsQuery = `SELECT wallet, game_id, games_played, high_score, total_score, last_played_at
        FROM user_game_stats
        WHERE wallet = $1 AND game_id = $2`
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	round := &domain.RoundRecord{
		PlayID:    "0b0c6b1e-8d3c-4a5b-9b7e-0d1c2e3f4a5b",
		GameID:    "blocks",
		Wallet:    "EQwallet",
		Score:     1000,
		GameData:  json.RawMessage(`{"level":1}`),
		MovesHash: "mh",
		SeedHash:  "sh",
		Validated: true,
		CreatedAt: now,
	}
	args := []any{round.PlayID, round.GameID, round.Wallet, round.Score, round.GameData, round.MovesHash, round.SeedHash, true, now}

	tests := []struct {
		name      string
		mockSetup func()
		err       error
		expectErr bool
	}{
		{
			name: "Saved",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(saveQuery)).WithArgs(args...).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "Replay already settled",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(saveQuery)).WithArgs(args...).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
			err:       domain.ErrDuplicateRound,
			expectErr: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(saveQuery)).WithArgs(args...).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Save(context.Background(), round)
			if tt.expectErr {
				assert.Error(t, err)
				if tt.err != nil {
					assert.ErrorIs(t, err, tt.err)
				}
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpsertStats(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(statsUpsertQuery)).
		WithArgs("EQwallet", "blocks", int64(300), now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	assert.NoError(t, repo.UpsertStats(context.Background(), "EQwallet", "blocks", 300, now))

	mock.ExpectExec(regexp.QuoteMeta(statsUpsertQuery)).
		WithArgs("EQwallet", "blocks", int64(300), now).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.UpsertStats(context.Background(), "EQwallet", "blocks", 300, now))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetStats(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"wallet", "game_id", "games_played", "high_score", "total_score", "last_played_at"}

	mock.ExpectQuery(regexp.QuoteMeta(statsQuery)).
		WithArgs("EQwallet", "blocks").
		WillReturnRows(pgxmock.NewRows(columns).AddRow("EQwallet", "blocks", 3, int64(800), int64(1500), now))
	stats, err := repo.GetStats(context.Background(), "EQwallet", "blocks")
	require.NoError(t, err)
	assert.Equal(t, &domain.UserGameStats{
		Wallet: "EQwallet", GameID: "blocks", GamesPlayed: 3, HighScore: 800, TotalScore: 1500, LastPlayedAt: now,
	}, stats)

	mock.ExpectQuery(regexp.QuoteMeta(statsQuery)).
		WithArgs("EQwallet", "tapper").
		WillReturnError(pgx.ErrNoRows)
	stats, err = repo.GetStats(context.Background(), "EQwallet", "tapper")
	assert.NoError(t, err)
	assert.Nil(t, stats)

	mock.ExpectQuery(regexp.QuoteMeta(statsQuery)).
		WithArgs("EQwallet", "blocks").
		WillReturnError(errors.New("database error"))
	_, err = repo.GetStats(context.Background(), "EQwallet", "blocks")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
