package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/pkg/uid"
)

var (
	ErrInvalidToken = errors.New("invalid seat token")
	ErrInvalidSeat  = errors.New("invalid seat")
)

// SeatClaims binds a bearer to one side of one match
type SeatClaims struct {
	GameID string        `json:"game_id"`
	Seat   domain.Player `json:"seat"`
	jwt.RegisteredClaims
}

// SeatIssuer signs and validates HS256 seat tokens
type SeatIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSeatIssuer(secret string, ttl time.Duration) *SeatIssuer {
	return &SeatIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a token that lets its holder move for player in gameID
func (si *SeatIssuer) Issue(gameID string, player domain.Player) (string, error) {
	if player != domain.PlayerA && player != domain.PlayerB {
		return "", fmt.Errorf("%w: %d", ErrInvalidSeat, player)
	}

	tokenID, err := uid.GenerateTokenID()
	if err != nil {
		return "", err
	}

	now := si.now()
	claims := &SeatClaims{
		GameID: gameID,
		Seat:   player,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   gameID,
			ExpiresAt: jwt.NewNumericDate(now.Add(si.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(si.secret)
}

// Validate checks signature and expiry and returns the claims
func (si *SeatIssuer) Validate(tokenString string) (*SeatClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SeatClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return si.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(si.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SeatClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Seat != domain.PlayerA && claims.Seat != domain.PlayerB {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrInvalidSeat)
	}

	return claims, nil
}
