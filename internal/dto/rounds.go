package dto

import (
	"time"

	"github.com/GlebRadaev/playlives/internal/replay"
)

type SettleRoundRequestDTO struct {
	Wallet string        `json:"wallet" example:"EQD4FPq-PRDieyQKkizFTRtSDyucUIqrj0v_zXJmqaDp6_0t"`
	GameID string        `json:"gameId" example:"blocks"`
	Seed   string        `json:"seed" example:"8a1f2c4e-1b0c-4d6f-9a53-3f0e9f4f7c21"`
	Ticket string        `json:"ticket,omitempty"`
	Moves  []replay.Move `json:"moves"`
}

type SettleRoundResponseDTO struct {
	Status         string         `json:"status" example:"success"`
	PlayID         string         `json:"playId" example:"4c1e5b0a-4a55-4f0e-9b7e-6a8e1f3f2d10"`
	GameID         string         `json:"gameId" example:"blocks"`
	Score          int64          `json:"score" example:"1000"`
	SeedHash       string         `json:"seedHash"`
	GameData       map[string]any `json:"gameData"`
	RemainingLives int            `json:"remainingLives" example:"2"`
}

type StartRoundRequestDTO struct {
	Wallet string `json:"wallet" example:"EQD4FPq-PRDieyQKkizFTRtSDyucUIqrj0v_zXJmqaDp6_0t"`
	GameID string `json:"gameId" example:"blocks"`
}

type StartRoundResponseDTO struct {
	GameID    string    `json:"gameId" example:"blocks"`
	Seed      string    `json:"seed"`
	Ticket    string    `json:"ticket"`
	ExpiresAt time.Time `json:"expiresAt" example:"2026-04-01T14:00:00Z"`
}

type GameStatsResponseDTO struct {
	GamesPlayed  int       `json:"gamesPlayed" example:"12"`
	HighScore    int64     `json:"highScore" example:"4200"`
	TotalScore   int64     `json:"totalScore" example:"18300"`
	LastPlayedAt time.Time `json:"lastPlayedAt" example:"2026-04-01T12:00:00Z"`
}
