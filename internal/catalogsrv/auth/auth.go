// Package auth implements the credential store and bearer-token gate for the
// catalog API: user registration, login with bcrypt verification, token
// issuance, and the middleware that authenticates /content routes.
package auth

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/mediakite/catalogd/internal/catalogsrv/catcommon"
	"github.com/mediakite/catalogd/internal/catalogsrv/db"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/dberror"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/common/httpx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type registerReq struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type registerRsp struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRsp struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type meRsp struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// registerUser creates a new principal with a bcrypt password hash.
func registerUser(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	req := &registerReq{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidRequest.Err(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to hash password")
		return nil, ErrAuth.Err(err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if dbErr := db.DB(ctx).CreateUser(ctx, user); dbErr != nil {
		if dbErr.Is(dberror.ErrAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, dbErr
	}

	log.Ctx(ctx).Info().Str("username", user.Username).Msg("user registered")
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Response: &registerRsp{
			UserID:   user.UserID.String(),
			Username: user.Username,
		},
	}, nil
}

// loginUser verifies credentials and issues a bearer token. Unknown user and
// wrong password return the same error so usernames cannot be probed.
func loginUser(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	req := &loginReq{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidRequest.Err(err)
	}

	user, dbErr := db.DB(ctx).GetUserByUsername(ctx, req.Username)
	if dbErr != nil {
		if dbErr.Is(dberror.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, dbErr
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, tokenErr := CreateToken(ctx, user.UserID, user.Username)
	if tokenErr != nil {
		return nil, tokenErr
	}

	log.Ctx(ctx).Info().Str("username", user.Username).Msg("user logged in")
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &loginRsp{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresAt:   expiresAt,
		},
	}, nil
}

// getCurrentUser returns the authenticated principal's identity.
func getCurrentUser(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	principal := catcommon.GetPrincipal(ctx)
	if principal == nil {
		return nil, ErrUnauthorized
	}
	user, dbErr := db.DB(ctx).GetUser(ctx, principal.UserID)
	if dbErr != nil {
		if dbErr.Is(dberror.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, dbErr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &meRsp{
			UserID:    user.UserID.String(),
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
