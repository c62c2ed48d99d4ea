package lives

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/dto"
	"github.com/GlebRadaev/playlives/internal/service/livesservice"
	"github.com/GlebRadaev/playlives/pkg/utils"
	"github.com/GlebRadaev/playlives/pkg/validate"
)

type Service interface {
	Claim(ctx context.Context, wallet, deviceID, ip string) (*domain.LivesAccount, error)
	Get(ctx context.Context, wallet string) (*domain.LivesAccount, error)
}

type LivesHandler struct {
	livesService Service
}

func New(livesService Service) *LivesHandler {
	return &LivesHandler{
		livesService: livesService,
	}
}

// Claim godoc
//
//	@Summary		Claim daily lives
//	@Description	Grants the free daily life once per UTC day and refreshes the token-holder bonus.
//	@Tags			Lives
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ClaimLivesRequestDTO	true	"Claim request"
//	@Success		200		{object}	dto.LivesResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid wallet or device"
//	@Failure		429		{object}	utils.Response	"Too many claims"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/lives/claim [post]
func (h *LivesHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req dto.ClaimLivesRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validate.IsWallet(req.Wallet) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid wallet address")
		return
	}
	if req.DeviceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Device ID is required")
		return
	}
	ip := req.IP
	if ip == "" {
		ip = clientIP(r)
	}

	acc, err := h.livesService.Claim(r.Context(), req.Wallet, req.DeviceID, ip)
	if err != nil {
		switch {
		case errors.Is(err, livesservice.ErrInvalidWallet):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid wallet address")
		case errors.Is(err, livesservice.ErrRateLimited):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		default:
			zap.L().Error("claim failed", zap.String("wallet", req.Wallet), zap.Error(err))
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(acc))
}

// Get godoc
//
//	@Summary		Get lives balance
//	@Tags			Lives
//	@Produce		json
//	@Param			wallet	path		string	true	"Wallet address"
//	@Success		200		{object}	dto.LivesResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid wallet address"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/lives/{wallet} [get]
func (h *LivesHandler) Get(w http.ResponseWriter, r *http.Request) {
	wallet := chi.URLParam(r, "wallet")
	if !validate.IsWallet(wallet) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid wallet address")
		return
	}

	acc, err := h.livesService.Get(r.Context(), wallet)
	if err != nil {
		if errors.Is(err, livesservice.ErrInvalidWallet) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid wallet address")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(acc))
}

func toResponse(acc *domain.LivesAccount) dto.LivesResponseDTO {
	return dto.LivesResponseDTO{
		Free:     acc.FreeToday,
		Bonus:    acc.BonusToday,
		PaidBank: acc.PaidBank,
		Total:    acc.Total(),
	}
}

// clientIP strips the port that RemoteAddr carries unless RealIP already replaced it.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
