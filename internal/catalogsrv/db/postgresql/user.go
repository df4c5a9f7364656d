package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/catalogsrv/db/dberror"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// CreateUser inserts a new user. Returns ErrAlreadyExists when the username
// is taken.
func (um *userManager) CreateUser(ctx context.Context, user *models.User) apperrors.Error {
	if user.UserID == uuid.Nil {
		user.UserID = uuid.New()
	}
	query := `
		INSERT INTO users (user_id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING user_id, created_at;
	`
	errDb := um.conn().QueryRowContext(ctx, query, user.UserID, user.Username, user.PasswordHash).
		Scan(&user.UserID, &user.CreatedAt)
	if errDb != nil {
		var pgErr *pgconn.PgError
		if errors.As(errDb, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Ctx(ctx).Info().Str("username", user.Username).Msg("username already exists")
			return dberror.ErrAlreadyExists.Msg("username already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("username", user.Username).Msg("failed to insert user")
		return dberror.ErrDatabase.Err(errDb)
	}
	return nil
}

// GetUserByUsername retrieves a user by username.
func (um *userManager) GetUserByUsername(ctx context.Context, username string) (*models.User, apperrors.Error) {
	query := `SELECT user_id, username, password_hash, created_at FROM users WHERE username = $1;`
	return um.getUser(ctx, query, username)
}

// GetUser retrieves a user by id.
func (um *userManager) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, apperrors.Error) {
	query := `SELECT user_id, username, password_hash, created_at FROM users WHERE user_id = $1;`
	return um.getUser(ctx, query, userID)
}

func (um *userManager) getUser(ctx context.Context, query string, arg any) (*models.User, apperrors.Error) {
	var user models.User
	errDb := um.conn().QueryRowContext(ctx, query, arg).
		Scan(&user.UserID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to retrieve user")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &user, nil
}
