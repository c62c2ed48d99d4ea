package roundservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/events"
	"github.com/GlebRadaev/playlives/internal/metrics"
	"github.com/GlebRadaev/playlives/internal/pg"
	"github.com/GlebRadaev/playlives/internal/replay"
	"github.com/GlebRadaev/playlives/pkg/auth"
	"github.com/GlebRadaev/playlives/pkg/validate"
)

const defaultTicketTTL = 2 * time.Hour

type GameRepo interface {
	Get(ctx context.Context, id string) (*domain.Game, error)
}

type RoundRepo interface {
	Save(ctx context.Context, round *domain.RoundRecord) error
	UpsertStats(ctx context.Context, wallet, gameID string, score int64, playedAt time.Time) error
	GetStats(ctx context.Context, wallet, gameID string) (*domain.UserGameStats, error)
}

type Ledger interface {
	ConsumeOne(ctx context.Context, wallet string) (*domain.LivesAccount, error)
}

type Validators interface {
	Lookup(tag string) replay.Validator
}

var (
	ErrGameNotFound         = errors.New("game not found")
	ErrValidationNotEnabled = errors.New("validation not enabled for game")
	ErrMissingFields        = errors.New("missing required fields")
	ErrInvalidMoves         = errors.New("invalid moves")
	ErrInvalidTicket        = errors.New("invalid round ticket")
	ErrInvalidWallet        = validate.ErrInvalidWallet
	ErrNoLivesAvailable     = domain.ErrNoLivesAvailable
	ErrDuplicateRound       = domain.ErrDuplicateRound
)

// ValidationError carries the reasons a replay was refused.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid move sequence: " + strings.Join(e.Errors, "; ")
}

type SettleRequest struct {
	Wallet string
	GameID string
	Seed   string
	Ticket string
	Moves  []replay.Move
}

type SettleResult struct {
	PlayID         string
	GameID         string
	Score          int64
	SeedHash       string
	GameData       map[string]any
	RemainingLives int
}

type StartResult struct {
	GameID    string
	Seed      string
	Ticket    string
	ExpiresAt time.Time
}

type Service struct {
	games         GameRepo
	rounds        RoundRepo
	ledger        Ledger
	txManager     pg.TXManager
	validators    Validators
	publisher     events.Publisher
	tickets       auth.TicketServiceInterface
	requireTicket bool
	ticketTTL     time.Duration
	now           func() time.Time
}

func New(
	games GameRepo,
	rounds RoundRepo,
	ledger Ledger,
	txManager pg.TXManager,
	validators Validators,
	publisher events.Publisher,
	tickets auth.TicketServiceInterface,
	requireTicket bool,
) *Service {
	return &Service{
		games:         games,
		rounds:        rounds,
		ledger:        ledger,
		txManager:     txManager,
		validators:    validators,
		publisher:     publisher,
		tickets:       tickets,
		requireTicket: requireTicket,
		ticketTTL:     defaultTicketTTL,
		now:           time.Now,
	}
}

func (s *Service) activeGame(ctx context.Context, gameID string) (*domain.Game, error) {
	if gameID == "" {
		return nil, ErrGameNotFound
	}
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	if game == nil || !game.Active {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// Start issues a fresh seed bound to the wallet and game by a signed ticket.
func (s *Service) Start(ctx context.Context, wallet, gameID string) (*StartResult, error) {
	if wallet == "" {
		return nil, ErrMissingFields
	}
	wallet, err := validate.Wallet(wallet)
	if err != nil {
		return nil, ErrInvalidWallet
	}
	if _, err := s.activeGame(ctx, gameID); err != nil {
		return nil, err
	}

	seed := uuid.NewString()
	expiresAt := s.now().Add(s.ticketTTL).UTC()
	ticket, err := s.tickets.GenerateTicket(wallet, gameID, seed, expiresAt)
	if err != nil {
		zap.L().Error("failed to sign round ticket", zap.String("wallet", wallet), zap.Error(err))
		return nil, err
	}
	return &StartResult{GameID: gameID, Seed: seed, Ticket: ticket, ExpiresAt: expiresAt}, nil
}

// Settle validates a replay and, when it holds, debits one life and records the round
// in a single transaction. A refused replay consumes nothing.
func (s *Service) Settle(ctx context.Context, req SettleRequest) (*SettleResult, error) {
	game, err := s.activeGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}
	if !game.ValidationEnabled {
		return nil, ErrValidationNotEnabled
	}
	if req.Wallet == "" || req.Seed == "" || req.Moves == nil {
		return nil, ErrMissingFields
	}
	if req.Wallet, err = validate.Wallet(req.Wallet); err != nil {
		return nil, ErrInvalidWallet
	}
	if len(req.Moves) == 0 {
		return nil, fmt.Errorf("%w: no moves", ErrInvalidMoves)
	}
	if game.MaxMoves > 0 && len(req.Moves) > game.MaxMoves {
		return nil, fmt.Errorf("%w: %d moves exceed limit %d", ErrInvalidMoves, len(req.Moves), game.MaxMoves)
	}
	if err := s.checkTicket(req); err != nil {
		s.reject(game.ID, "ticket")
		return nil, err
	}

	result := s.validators.Lookup(game.Validator).Validate(req.Moves, req.Seed, replay.Config{
		MaxMoves:    game.MaxMoves,
		MaxScore:    game.MaxScore,
		BoardWidth:  game.BoardWidth,
		BoardHeight: game.BoardHeight,
	})
	if !result.Valid {
		s.reject(game.ID, "validation")
		zap.L().Warn("replay rejected",
			zap.String("wallet", req.Wallet), zap.String("game_id", game.ID), zap.Strings("errors", result.Errors))
		s.publisher.Publish(ctx, events.New(events.TypeRoundValidationFailed, req.Wallet, game.ID, map[string]any{
			"errors":    result.Errors,
			"moves":     len(req.Moves),
			"seed_hash": replay.HashSeed(req.Seed),
		}))
		return nil, &ValidationError{Errors: result.Errors}
	}

	round, err := s.newRecord(req, game.ID, result)
	if err != nil {
		return nil, err
	}

	var acc *domain.LivesAccount
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.ledger.ConsumeOne(ctx, req.Wallet)
		if err != nil {
			return err
		}
		if err := s.rounds.Save(ctx, round); err != nil {
			return err
		}
		return s.rounds.UpsertStats(ctx, req.Wallet, game.ID, round.Score, round.CreatedAt)
	})
	switch {
	case errors.Is(err, ErrNoLivesAvailable):
		s.reject(game.ID, "no_lives")
		return nil, ErrNoLivesAvailable
	case errors.Is(err, ErrDuplicateRound):
		s.reject(game.ID, "duplicate")
		return nil, ErrDuplicateRound
	case err != nil:
		zap.L().Error("failed to settle round",
			zap.String("wallet", req.Wallet), zap.String("game_id", game.ID), zap.Error(err))
		return nil, fmt.Errorf("settle round: %w", err)
	}

	metrics.RoundsSettled.WithLabelValues(game.ID).Inc()
	metrics.LivesConsumed.Inc()

	settled := &SettleResult{
		PlayID:         round.PlayID,
		GameID:         game.ID,
		Score:          round.Score,
		SeedHash:       round.SeedHash,
		GameData:       result.GameData,
		RemainingLives: acc.Total(),
	}
	s.publisher.Publish(ctx, events.New(events.TypeRoundCompleted, req.Wallet, game.ID, map[string]any{
		"playId":         settled.PlayID,
		"score":          settled.Score,
		"gameData":       settled.GameData,
		"remainingLives": settled.RemainingLives,
	}))
	return settled, nil
}

func (s *Service) checkTicket(req SettleRequest) error {
	if req.Ticket == "" {
		if s.requireTicket {
			return ErrInvalidTicket
		}
		return nil
	}
	claims, err := s.tickets.ValidateTicket(req.Ticket)
	if err != nil {
		return ErrInvalidTicket
	}
	if claims.Wallet != req.Wallet || claims.GameID != req.GameID || claims.Seed != req.Seed {
		return ErrInvalidTicket
	}
	return nil
}

func (s *Service) newRecord(req SettleRequest, gameID string, result replay.Result) (*domain.RoundRecord, error) {
	movesHash, err := replay.HashMoves(req.Moves)
	if err != nil {
		return nil, err
	}
	gameData, err := json.Marshal(result.GameData)
	if err != nil {
		return nil, fmt.Errorf("encode game data: %w", err)
	}
	return &domain.RoundRecord{
		PlayID:    uuid.NewString(),
		GameID:    gameID,
		Wallet:    req.Wallet,
		Score:     result.Score,
		GameData:  gameData,
		MovesHash: movesHash,
		SeedHash:  replay.HashSeed(req.Seed),
		Validated: true,
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *Service) reject(gameID, reason string) {
	metrics.RoundsRejected.WithLabelValues(gameID, reason).Inc()
}

// Stats returns the wallet's totals for a game, or nil when it never played it.
func (s *Service) Stats(ctx context.Context, wallet, gameID string) (*domain.UserGameStats, error) {
	wallet, err := validate.Wallet(wallet)
	if err != nil {
		return nil, ErrInvalidWallet
	}
	stats, err := s.rounds.GetStats(ctx, wallet, gameID)
	if err != nil {
		zap.L().Error("failed to get game stats", zap.String("wallet", wallet), zap.String("game_id", gameID), zap.Error(err))
		return nil, err
	}
	return stats, nil
}
