package roundrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Save appends a settled round. A replay already stored for the same wallet and game
// yields domain.ErrDuplicateRound.
func (r *Repository) Save(ctx context.Context, round *domain.RoundRecord) error {
	query := `
        INSERT INTO round_records (play_id, game_id, wallet, score, game_data, moves_hash, seed_hash, validated, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (wallet, game_id, moves_hash, seed_hash) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, round.PlayID, round.GameID, round.Wallet, round.Score,
		round.GameData, round.MovesHash, round.SeedHash, round.Validated, round.CreatedAt)
	if err != nil {
		zap.L().Error("can't save round", zap.String("play_id", round.PlayID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateRound
	}
	return nil
}

func (r *Repository) UpsertStats(ctx context.Context, wallet, gameID string, score int64, playedAt time.Time) error {
	query := `
        INSERT INTO user_game_stats (wallet, game_id, games_played, high_score, total_score, last_played_at)
        VALUES ($1, $2, 1, $3, $3, $4)
        ON CONFLICT (wallet, game_id) DO UPDATE
        SET games_played = user_game_stats.games_played + 1,
            high_score = GREATEST(user_game_stats.high_score, EXCLUDED.high_score),
            total_score = user_game_stats.total_score + EXCLUDED.total_score,
            last_played_at = EXCLUDED.last_played_at
    `
	_, err := r.db.Exec(ctx, query, wallet, gameID, score, playedAt)
	if err != nil {
		zap.L().Error("can't update game stats", zap.String("wallet", wallet), zap.String("game_id", gameID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetStats(ctx context.Context, wallet, gameID string) (*domain.UserGameStats, error) {
	query := `
        SELECT wallet, game_id, games_played, high_score, total_score, last_played_at
        FROM user_game_stats
        WHERE wallet = $1 AND game_id = $2
    `
	var stats domain.UserGameStats
	err := r.db.QueryRow(ctx, query, wallet, gameID).
		Scan(&stats.Wallet, &stats.GameID, &stats.GamesPlayed, &stats.HighScore, &stats.TotalScore, &stats.LastPlayedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get game stats", zap.Error(err))
		return nil, err
	}
	return &stats, nil
}
