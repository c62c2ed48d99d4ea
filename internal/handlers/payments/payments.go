package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/dto"
	"github.com/GlebRadaev/playlives/internal/service/paymentservice"
	"github.com/GlebRadaev/playlives/internal/tonapi"
	"github.com/GlebRadaev/playlives/pkg/utils"
)

type Service interface {
	Issue(ctx context.Context, wallet, gameID string) (*paymentservice.IssueResult, error)
	Settle(ctx context.Context, req paymentservice.SettleRequest) (*paymentservice.SettleResult, error)
	History(ctx context.Context, wallet string) ([]domain.PaymentRecord, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Address godoc
//
//	@Summary		Issue a payment address
//	@Description	Reserves a one-off deposit address and freezes the tier prices for its lifetime.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PaymentAddressRequestDTO	true	"Wallet and game"
//	@Success		200		{object}	dto.PaymentAddressResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid wallet address"
//	@Failure		404		{object}	utils.Response	"Game not found"
//	@Failure		429		{object}	utils.Response	"Daily paid lives limit reached"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/payments/address [post]
func (h *PaymentHandler) Address(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentAddressRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Wallet == "" || req.GameID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Wallet and game are required")
		return
	}

	result, err := h.paymentService.Issue(r.Context(), req.Wallet, req.GameID)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrInvalidWallet):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, paymentservice.ErrGameNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrDailyCapReached):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	inToken := make(map[string]float64, len(result.Pricing.PriceNano))
	for tier, nano := range result.Pricing.PriceNano {
		inToken[tier] = tonapi.NanoToTON(nano)
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentAddressResponseDTO{
		PayAddr:            result.Address,
		GameID:             result.GameID,
		PriceInToken:       inToken,
		PriceInNano:        result.Pricing.PriceNano,
		PriceUSD:           result.Pricing.PriceUSD,
		LivesPerTier:       result.Pricing.LivesPerTier,
		TokenUSDRate:       result.Pricing.TokenUSDRate,
		ExpiresAt:          result.ExpiresAt,
		RemainingPaidLives: result.RemainingPaidLives,
	})
}

// Webhook godoc
//
//	@Summary		Report an incoming payment
//	@Description	Credits the lives bought by a transfer to an issued address after checking it on chain. Deliveries are idempotent per signature.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			X-Webhook-Secret	header		string							true	"Shared webhook secret"
//	@Param			request				body		dto.PaymentWebhookRequestDTO	true	"Transfer notification"
//	@Success		200					{object}	dto.PaymentWebhookResponseDTO
//	@Failure		400					{object}	utils.Response	"Insufficient amount or unsupported token"
//	@Failure		401					{object}	utils.Response	"Bad webhook secret"
//	@Failure		404					{object}	utils.Response	"Unknown address or transfer"
//	@Failure		503					{object}	utils.Response	"Chain unavailable, retry later"
//	@Failure		500					{object}	utils.Response	"Internal server error"
//	@Router			/api/payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentWebhookRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.paymentService.Settle(r.Context(), paymentservice.SettleRequest{
		Signature: req.Signature,
		Recipient: req.Recipient,
		Amount:    req.Amount,
		Token:     req.Token,
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrMissingFields),
			errors.Is(err, paymentservice.ErrInsufficientAmount),
			errors.Is(err, paymentservice.ErrUnsupportedToken):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, paymentservice.ErrUnknownOrExpiredAddress),
			errors.Is(err, paymentservice.ErrTransferNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrChainUnavailable):
			w.Header().Set("Retry-After", "30")
			utils.RespondWithError(w, http.StatusServiceUnavailable, paymentservice.ErrChainUnavailable.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentWebhookResponseDTO{
		Status:      result.Status,
		LivesBought: result.LivesBought,
		Tier:        result.Tier,
	})
}

// History godoc
//
//	@Summary		List purchases of a wallet
//	@Tags			Payments
//	@Produce		json
//	@Param			wallet	path		string	true	"Wallet address"
//	@Success		200		{array}		dto.PaymentResponseDTO
//	@Success		204		{object}	utils.Response	"No data available"
//	@Failure		400		{object}	utils.Response	"Invalid wallet address"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/payments/{wallet} [get]
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.paymentService.History(r.Context(), chi.URLParam(r, "wallet"))
	if err != nil {
		if errors.Is(err, paymentservice.ErrInvalidWallet) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(records) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.PaymentResponseDTO, 0, len(records))
	for _, p := range records {
		response = append(response, dto.PaymentResponseDTO{
			Signature:   p.Signature,
			Amount:      p.Amount,
			Token:       p.Token,
			LivesBought: p.LivesBought,
			Tier:        p.Tier,
			GameID:      p.GameID,
			CreatedAt:   p.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
