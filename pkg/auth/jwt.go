package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const issuer = "playlives"

var (
	ErrInvalidTicket = errors.New("invalid ticket")
	ErrTicketClaims  = errors.New("invalid ticket claims")
)

type TicketServiceInterface interface {
	GenerateTicket(wallet, gameID, seed string, expirationTime time.Time) (string, error)
	ValidateTicket(tokenString string) (*TicketClaims, error)
}

// TicketClaims bind a server-issued seed to one wallet and game.
type TicketClaims struct {
	Wallet string `json:"wallet"`
	GameID string `json:"game_id"`
	Seed   string `json:"seed"`
	jwt.StandardClaims
}

type JWTService struct {
	secretKey []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secretKey: []byte(secret)}
}

func (s *JWTService) GenerateTicket(wallet, gameID, seed string, expirationTime time.Time) (string, error) {
	claims := TicketClaims{
		Wallet: wallet,
		GameID: gameID,
		Seed:   seed,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *JWTService) ValidateTicket(tokenString string) (*TicketClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TicketClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidTicket
	}
	claims, ok := token.Claims.(*TicketClaims)
	if !ok || claims.Wallet == "" || claims.Seed == "" || claims.Issuer != issuer {
		return nil, ErrTicketClaims
	}

	return claims, nil
}
