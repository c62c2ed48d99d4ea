package dto

import "time"

type PaymentAddressRequestDTO struct {
	Wallet string `json:"wallet" example:"EQD4FPq-PRDieyQKkizFTRtSDyucUIqrj0v_zXJmqaDp6_0t"`
	GameID string `json:"gameId" example:"blocks"`
}

type PaymentAddressResponseDTO struct {
	PayAddr            string             `json:"payAddr"`
	GameID             string             `json:"gameId" example:"blocks"`
	PriceInToken       map[string]float64 `json:"priceInToken"`
	PriceInNano        map[string]int64   `json:"priceInNano"`
	PriceUSD           map[string]float64 `json:"priceUSD"`
	LivesPerTier       map[string]int     `json:"livesPerTier"`
	TokenUSDRate       float64            `json:"tokenUsdRate" example:"5.2"`
	ExpiresAt          time.Time          `json:"expiresAt" example:"2026-04-01T12:15:00Z"`
	RemainingPaidLives int                `json:"remainingPaidLives" example:"27"`
}

type PaymentWebhookRequestDTO struct {
	Signature string `json:"signature"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount" example:"500000000"`
	Token     string `json:"token" example:"TON"`
	Timestamp int64  `json:"timestamp" example:"1775044800"`
}

type PaymentWebhookResponseDTO struct {
	Status      string `json:"status" example:"success"`
	LivesBought int    `json:"livesBought,omitempty" example:"3"`
	Tier        string `json:"tier,omitempty" example:"mid"`
}

type PaymentResponseDTO struct {
	Signature   string    `json:"signature"`
	Amount      int64     `json:"amount" example:"500000000"`
	Token       string    `json:"token" example:"TON"`
	LivesBought int       `json:"livesBought" example:"3"`
	Tier        string    `json:"tier" example:"mid"`
	GameID      string    `json:"gameId" example:"blocks"`
	CreatedAt   time.Time `json:"createdAt" example:"2026-04-01T12:03:00Z"`
}
