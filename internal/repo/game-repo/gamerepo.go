package gamerepo

import (
	"context"
	"errors"

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

func (r *Repository) Get(ctx context.Context, id string) (*domain.Game, error) {
	query := `
        SELECT id, name, active, validation_enabled, validator, max_moves, max_score, board_width, board_height
        FROM games
        WHERE id = $1
    `
	var game domain.Game
	err := r.db.QueryRow(ctx, query, id).Scan(&game.ID, &game.Name, &game.Active, &game.ValidationEnabled,
		&game.Validator, &game.MaxMoves, &game.MaxScore, &game.BoardWidth, &game.BoardHeight)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find game", zap.String("game_id", id), zap.Error(err))
		return nil, err
	}
	return &game, nil
}
