package payments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/playlives/internal/domain"
	"github.com/GlebRadaev/playlives/internal/dto"
	"github.com/GlebRadaev/playlives/internal/service/paymentservice"
	"github.com/GlebRadaev/playlives/pkg/utils"
)

const wallet = "0:1111111111111111111111111111111111111111111111111111111111111111"

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestAddressHandler(t *testing.T) {
	handler, service := NewMock(t)
	expiresAt := time.Date(2026, 4, 1, 12, 15, 0, 0, time.UTC)
	body := `{"wallet":"` + wallet + `","gameId":"blocks"}`

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Address issued",
			body: body,
			prepareMock: func() {
				service.EXPECT().Issue(gomock.Any(), wallet, "blocks").Return(&paymentservice.IssueResult{
					Address: "EQaddr",
					GameID:  "blocks",
					Pricing: domain.PricingSnapshot{
						PriceNano:    map[string]int64{domain.TierMid: 500_000_000},
						PriceUSD:     map[string]float64{domain.TierMid: 1},
						LivesPerTier: map[string]int{domain.TierMid: 3},
						TokenUSDRate: 2,
					},
					ExpiresAt:          expiresAt,
					RemainingPaidLives: 27,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Malformed body",
			body:          `[]`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing game",
			body:          `{"wallet":"` + wallet + `"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Wallet and game are required",
		},
		{
			name: "Invalid wallet",
			body: `{"wallet":"nope","gameId":"blocks"}`,
			prepareMock: func() {
				service.EXPECT().Issue(gomock.Any(), "nope", "blocks").Return(nil, paymentservice.ErrInvalidWallet)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: paymentservice.ErrInvalidWallet.Error(),
		},
		{
			name: "Unknown game",
			body: body,
			prepareMock: func() {
				service.EXPECT().Issue(gomock.Any(), wallet, "blocks").Return(nil, paymentservice.ErrGameNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: paymentservice.ErrGameNotFound.Error(),
		},
		{
			name: "Daily cap",
			body: body,
			prepareMock: func() {
				service.EXPECT().Issue(gomock.Any(), wallet, "blocks").Return(nil, paymentservice.ErrDailyCapReached)
			},
			expectedCode:  http.StatusTooManyRequests,
			expectedError: paymentservice.ErrDailyCapReached.Error(),
		},
		{
			name: "Store failure",
			body: body,
			prepareMock: func() {
				service.EXPECT().Issue(gomock.Any(), wallet, "blocks").Return(nil, errors.New("redis down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodPost, "/api/payments/address", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.Address(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var resp dto.PaymentAddressResponseDTO
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "EQaddr", resp.PayAddr)
			assert.Equal(t, 0.5, resp.PriceInToken[domain.TierMid])
			assert.Equal(t, int64(500_000_000), resp.PriceInNano[domain.TierMid])
			assert.Equal(t, 3, resp.LivesPerTier[domain.TierMid])
			assert.Equal(t, 27, resp.RemainingPaidLives)
		})
	}
}

func TestWebhookHandler(t *testing.T) {
	handler, service := NewMock(t)
	body := `{"signature":"sig","recipient":"EQaddr","amount":500000000,"token":"TON","timestamp":1775044800}`
	expectedReq := paymentservice.SettleRequest{Signature: "sig", Recipient: "EQaddr", Amount: 500_000_000, Token: "TON"}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.PaymentWebhookResponseDTO
	}{
		{
			name: "Payment credited",
			body: body,
			prepareMock: func() {
				service.EXPECT().Settle(gomock.Any(), expectedReq).Return(&paymentservice.SettleResult{
					Status: paymentservice.StatusSuccess, LivesBought: 3, Tier: domain.TierMid,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.PaymentWebhookResponseDTO{Status: "success", LivesBought: 3, Tier: "mid"},
		},
		{
			name: "Duplicate delivery",
			body: body,
			prepareMock: func() {
				service.EXPECT().Settle(gomock.Any(), expectedReq).Return(&paymentservice.SettleResult{
					Status: paymentservice.StatusAlreadyProcessed,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.PaymentWebhookResponseDTO{Status: "already_processed"},
		},
		{
			name:         "Malformed body",
			body:         `{"amount":"lots"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Insufficient amount",
			body: body,
			prepareMock: func() {
				service.EXPECT().Settle(gomock.Any(), gomock.Any()).Return(nil, paymentservice.ErrInsufficientAmount)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Unknown address",
			body: body,
			prepareMock: func() {
				service.EXPECT().Settle(gomock.Any(), gomock.Any()).Return(nil, paymentservice.ErrUnknownOrExpiredAddress)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Chain unavailable",
			body: body,
			prepareMock: func() {
				service.EXPECT().Settle(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: timeout", paymentservice.ErrChainUnavailable))
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name: "Database failure",
			body: body,
			prepareMock: func() {
				service.EXPECT().Settle(gomock.Any(), gomock.Any()).Return(nil, errors.New("settle payment: db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.Webhook(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusServiceUnavailable {
				assert.Equal(t, "30", rec.Header().Get("Retry-After"))
			}
			if tt.expectedCode == http.StatusOK {
				var resp dto.PaymentWebhookResponseDTO
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.expectedBody, resp)
			}
		})
	}
}

func TestHistoryHandler(t *testing.T) {
	handler, service := NewMock(t)
	router := chi.NewRouter()
	router.Get("/api/payments/{wallet}", handler.History)

	createdAt := time.Date(2026, 4, 1, 12, 3, 0, 0, time.UTC)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Purchases listed",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), wallet).Return([]domain.PaymentRecord{
					{Signature: "sig", Amount: 500_000_000, Token: "TON", LivesBought: 3, Tier: "mid", GameID: "blocks", CreatedAt: createdAt},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No purchases",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), wallet).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Invalid wallet",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), wallet).Return(nil, paymentservice.ErrInvalidWallet)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Repository failure",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), wallet).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodGet, "/api/payments/"+wallet, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusOK {
				var resp []dto.PaymentResponseDTO
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.Len(t, resp, 1)
				assert.Equal(t, "sig", resp[0].Signature)
				assert.Equal(t, 3, resp[0].LivesBought)
			}
		})
	}
}
