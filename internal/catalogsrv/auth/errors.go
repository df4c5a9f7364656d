package auth

import (
	"net/http"

	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// Base auth error
var (
	ErrAuth apperrors.Error = apperrors.New("auth error").SetStatusCode(http.StatusInternalServerError)
)

// Validation errors
var (
	ErrInvalidRequest apperrors.Error = ErrAuth.New("invalid request").SetStatusCode(http.StatusBadRequest)
	ErrUserExists     apperrors.Error = ErrAuth.New("username already taken").SetStatusCode(http.StatusConflict)
)

// Authorization errors
var (
	ErrUnauthorized       apperrors.Error = ErrAuth.New("unauthorized access").SetStatusCode(http.StatusUnauthorized)
	ErrInvalidCredentials apperrors.Error = ErrAuth.New("invalid username or password").SetStatusCode(http.StatusUnauthorized)
)

// Token errors
var (
	ErrTokenGeneration apperrors.Error = ErrAuth.New("failed to generate token").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidToken    apperrors.Error = ErrAuth.New("invalid token").SetStatusCode(http.StatusUnauthorized)
)
