package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTicket(t *testing.T) {
	jwtService := NewJWTService("secret")

	tests := []struct {
		name           string
		expirationTime time.Time
	}{
		{
			name:           "Valid Ticket",
			expirationTime: time.Now().Add(time.Hour),
		},
		{
			name:           "Expired Ticket",
			expirationTime: time.Now().Add(-time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwtService.GenerateTicket("EQwallet", "blocks", "seed", tt.expirationTime)
			assert.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestValidateTicket(t *testing.T) {
	jwtService := NewJWTService("secret")

	tests := []struct {
		name        string
		setup       func() string
		expectError error
		wallet      string
	}{
		{
			name: "Valid Ticket",
			setup: func() string {
				token, _ := jwtService.GenerateTicket("EQwallet", "blocks", "seed", time.Now().Add(time.Hour))
				return token
			},
			wallet: "EQwallet",
		},
		{
			name: "Expired Ticket",
			setup: func() string {
				token, _ := jwtService.GenerateTicket("EQwallet", "blocks", "seed", time.Now().Add(-time.Hour))
				return token
			},
			expectError: ErrInvalidTicket,
		},
		{
			name: "Signed With Another Secret",
			setup: func() string {
				token, _ := NewJWTService("other").GenerateTicket("EQwallet", "blocks", "seed", time.Now().Add(time.Hour))
				return token
			},
			expectError: ErrInvalidTicket,
		},
		{
			name: "Malformed Ticket",
			setup: func() string {
				return "not-a-token"
			},
			expectError: ErrInvalidTicket,
		},
		{
			name: "Foreign Issuer",
			setup: func() string {
				claims := TicketClaims{
					Wallet:         "EQwallet",
					Seed:           "seed",
					StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix(), Issuer: "someone-else"},
				}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
				return token
			},
			expectError: ErrTicketClaims,
		},
		{
			name: "Missing Seed",
			setup: func() string {
				token, _ := jwtService.GenerateTicket("EQwallet", "blocks", "", time.Now().Add(time.Hour))
				return token
			},
			expectError: ErrTicketClaims,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwtService.ValidateTicket(tt.setup())
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wallet, claims.Wallet)
			assert.Equal(t, "blocks", claims.GameID)
			assert.Equal(t, "seed", claims.Seed)
		})
	}
}
