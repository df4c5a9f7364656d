package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/catalogsrv/config"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// Claims are the token claims issued at login.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CreateToken issues a signed bearer token for the given user. Tokens are
// HMAC-SHA256 signed with the configured secret and expire after the
// configured validity.
func CreateToken(ctx context.Context, userID uuid.UUID, username string) (string, time.Time, apperrors.Error) {
	now := time.Now()
	expiresAt := now.Add(config.Config().TokenValidity())
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Config().Auth.TokenSecret))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to sign token")
		return "", time.Time{}, ErrTokenGeneration.Err(err)
	}
	return signed, expiresAt, nil
}

// ParseToken validates a bearer token string and returns its claims. The
// signing method, signature, expiry and required claims are all checked.
func ParseToken(ctx context.Context, tokenString string) (*Claims, apperrors.Error) {
	claims := &Claims{}
	token, parseErr := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.Config().Auth.TokenSecret), nil
	})
	if parseErr != nil {
		log.Ctx(ctx).Debug().Err(parseErr).Msg("failed to parse token")
		return nil, ErrInvalidToken.Err(parseErr)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken.Err(err)
	}
	return claims, nil
}
