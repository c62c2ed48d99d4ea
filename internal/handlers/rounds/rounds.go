package rounds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/dto"
	"github.com/GlebRadaev/playlives/internal/service/roundservice"
	"github.com/GlebRadaev/playlives/pkg/utils"
)

type Service interface {
	Start(ctx context.Context, wallet, gameID string) (*roundservice.StartResult, error)
	Settle(ctx context.Context, req roundservice.SettleRequest) (*roundservice.SettleResult, error)
	Stats(ctx context.Context, wallet, gameID string) (*domain.UserGameStats, error)
}

type RoundHandler struct {
	roundService Service
}

func New(roundService Service) *RoundHandler {
	return &RoundHandler{
		roundService: roundService,
	}
}

// Settle godoc
//
//	@Summary		Settle a finished round
//	@Description	Replays the move log, debits one life and records the score. A refused replay consumes nothing.
//	@Tags			Rounds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SettleRoundRequestDTO	true	"Round replay"
//	@Success		200		{object}	dto.SettleRoundResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing fields, invalid moves or validation disabled"
//	@Failure		401		{object}	utils.Response	"Round ticket rejected"
//	@Failure		403		{object}	utils.Response	"No lives left"
//	@Failure		404		{object}	utils.Response	"Game not found"
//	@Failure		409		{object}	utils.Response	"Round already settled"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/rounds/settle [post]
func (h *RoundHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req dto.SettleRoundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.roundService.Settle(r.Context(), roundservice.SettleRequest{
		Wallet: req.Wallet,
		GameID: req.GameID,
		Seed:   req.Seed,
		Ticket: req.Ticket,
		Moves:  req.Moves,
	})
	if err != nil {
		var verr *roundservice.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.RespondWithDetails(w, http.StatusBadRequest, "Invalid move sequence", verr.Errors)
		case errors.Is(err, roundservice.ErrMissingFields),
			errors.Is(err, roundservice.ErrInvalidWallet),
			errors.Is(err, roundservice.ErrInvalidMoves),
			errors.Is(err, roundservice.ErrValidationNotEnabled):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, roundservice.ErrGameNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, roundservice.ErrInvalidTicket):
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, roundservice.ErrNoLivesAvailable):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, roundservice.ErrDuplicateRound):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.SettleRoundResponseDTO{
		Status:         "success",
		PlayID:         result.PlayID,
		GameID:         result.GameID,
		Score:          result.Score,
		SeedHash:       result.SeedHash,
		GameData:       result.GameData,
		RemainingLives: result.RemainingLives,
	})
}

// Start godoc
//
//	@Summary		Start a round
//	@Description	Issues a seed and a signed ticket binding it to the wallet and game.
//	@Tags			Rounds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.StartRoundRequestDTO	true	"Wallet and game"
//	@Success		200		{object}	dto.StartRoundResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing fields"
//	@Failure		404		{object}	utils.Response	"Game not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/rounds/start [post]
func (h *RoundHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartRoundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.roundService.Start(r.Context(), req.Wallet, req.GameID)
	if err != nil {
		switch {
		case errors.Is(err, roundservice.ErrMissingFields),
			errors.Is(err, roundservice.ErrInvalidWallet):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, roundservice.ErrGameNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.StartRoundResponseDTO{
		GameID:    result.GameID,
		Seed:      result.Seed,
		Ticket:    result.Ticket,
		ExpiresAt: result.ExpiresAt,
	})
}

// Stats godoc
//
//	@Summary		Get game stats for a wallet
//	@Tags			Rounds
//	@Produce		json
//	@Param			gameId	path		string	true	"Game ID"
//	@Param			wallet	path		string	true	"Wallet address"
//	@Success		200		{object}	dto.GameStatsResponseDTO
//	@Success		204		{object}	utils.Response	"No rounds played"
//	@Failure		400		{object}	utils.Response	"Invalid wallet address"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/games/{gameId}/stats/{wallet} [get]
func (h *RoundHandler) Stats(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameId")
	wallet := chi.URLParam(r, "wallet")

	stats, err := h.roundService.Stats(r.Context(), wallet, gameID)
	if err != nil {
		if errors.Is(err, roundservice.ErrInvalidWallet) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if stats == nil {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.GameStatsResponseDTO{
		GamesPlayed:  stats.GamesPlayed,
		HighScore:    stats.HighScore,
		TotalScore:   stats.TotalScore,
		LastPlayedAt: stats.LastPlayedAt,
	})
}
