package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrDuplicateRound means the same replay was already settled for this wallet and game.
var ErrDuplicateRound = errors.New("round already settled")

type LivesAccount struct {
	Wallet      string    `db:"wallet"`
	FreeToday   int       `db:"free_today"`
	BonusToday  int       `db:"bonus_today"`
	PaidBank    int       `db:"paid_bank"`
	LastResetAt time.Time `db:"last_reset_at"`
}

type Game struct {
	ID                string `db:"id"`
	Name              string `db:"name"`
	Active            bool   `db:"active"`
	ValidationEnabled bool   `db:"validation_enabled"`
	Validator         string `db:"validator"`
	MaxMoves          int    `db:"max_moves"`
	MaxScore          int64  `db:"max_score"`
	BoardWidth        int    `db:"board_width"`
	BoardHeight       int    `db:"board_height"`
}

type RoundRecord struct {
	PlayID    string          `db:"play_id"`
	GameID    string          `db:"game_id"`
	Wallet    string          `db:"wallet"`
	Score     int64           `db:"score"`
	GameData  json.RawMessage `db:"game_data"`
	MovesHash string          `db:"moves_hash"`
	SeedHash  string          `db:"seed_hash"`
	Validated bool            `db:"validated"`
	CreatedAt time.Time       `db:"created_at"`
}

type UserGameStats struct {
	Wallet       string    `db:"wallet"`
	GameID       string    `db:"game_id"`
	GamesPlayed  int       `db:"games_played"`
	HighScore    int64     `db:"high_score"`
	TotalScore   int64     `db:"total_score"`
	LastPlayedAt time.Time `db:"last_played_at"`
}

type PaymentRecord struct {
	ID          int64     `db:"id"`
	Wallet      string    `db:"wallet"`
	Signature   string    `db:"signature"`
	Amount      int64     `db:"amount"`
	Token       string    `db:"token"`
	LivesBought int       `db:"lives_bought"`
	Tier        string    `db:"tier"`
	GameID      string    `db:"game_id"`
	Sender      string    `db:"sender"`
	CreatedAt   time.Time `db:"created_at"`
}

// Tier names in ascending price order.
const (
	TierCheap = "cheap"
	TierMid   = "mid"
	TierHigh  = "high"
)

var Tiers = []string{TierCheap, TierMid, TierHigh}

// PricingSnapshot freezes tier prices at address issuance. Token prices are in nano units.
type PricingSnapshot struct {
	PriceNano    map[string]int64   `json:"price_nano"`
	PriceUSD     map[string]float64 `json:"price_usd"`
	LivesPerTier map[string]int     `json:"lives_per_tier"`
	TokenUSDRate float64            `json:"token_usd_rate"`
}

type TempPaymentAddress struct {
	Address   string          `json:"address"`
	Wallet    string          `json:"wallet"`
	Nonce     string          `json:"nonce"`
	GameID    string          `json:"game_id"`
	Pricing   PricingSnapshot `json:"pricing"`
	IssuedAt  time.Time       `json:"issued_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}
