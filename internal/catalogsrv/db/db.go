// Package db wires store managers onto a per-request database connection
// carried in the request context.
package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/catalogsrv/db/dbmanager"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/postgresql"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// ContentManager is the Record Store contract for catalog records: batch
// insert, lookups, filtered/paginated reads and the raw column reads the
// facet engine derives from. No update or delete operations exist.
type ContentManager interface {
	InsertContentBatch(ctx context.Context, rows []models.Content) (inserted, skipped int, err apperrors.Error)
	GetContent(ctx context.Context, contentID uuid.UUID) (*models.Content, apperrors.Error)
	ContentExists(ctx context.Context, showID string) (bool, apperrors.Error)
	ListContent(ctx context.Context, filter postgresql.ContentFilter) ([]*models.Content, apperrors.Error)
	SearchContent(ctx context.Context, q string, limit, offset int) ([]*models.Content, apperrors.Error)
	CountContent(ctx context.Context) (int, apperrors.Error)
	CountContentByType(ctx context.Context, contentType string) (int, apperrors.Error)
	DistinctRatings(ctx context.Context) ([]string, apperrors.Error)
	RatingCounts(ctx context.Context) ([]models.RatingCount, apperrors.Error)
	CountryValues(ctx context.Context) ([]string, apperrors.Error)
	CategoryValues(ctx context.Context) ([]string, apperrors.Error)
}

// UserManager is the credential store contract consumed by the auth gate.
type UserManager interface {
	CreateUser(ctx context.Context, user *models.User) apperrors.Error
	GetUserByUsername(ctx context.Context, username string) (*models.User, apperrors.Error)
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, apperrors.Error)
}

type ConnectionManager interface {
	// Close returns the connection to the database back to the pool.
	Close(ctx context.Context)
}

type DB_ interface {
	ContentManager
	UserManager
	ConnectionManager
}

var pool dbmanager.Pool

// Init opens the connection pool. Must be called once after config is loaded
// and before any request is served.
func Init(dsn string) error {
	pg, err := dbmanager.NewPostgresqlDb(dsn)
	if err != nil {
		return err
	}
	pool = pg
	return nil
}

func Conn(ctx context.Context) dbmanager.Conn {
	if pool != nil {
		conn, err := pool.Conn(ctx)
		if err == nil {
			return conn
		}
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
	}
	return nil
}

type ctxDbKeyType string

const (
	ctxDbKey    ctxDbKeyType = "MediaCatalogDb"
	ctxStoreKey ctxDbKeyType = "MediaCatalogStore"
)

// WithDB stores a fully-bound store in the context, bypassing the pool.
// Tests use this to substitute a stub store.
func WithDB(ctx context.Context, d DB_) context.Context {
	return context.WithValue(ctx, ctxStoreKey, d)
}

// ConnCtx checks a connection out of the pool and stores it in the context.
func ConnCtx(ctx context.Context) context.Context {
	conn := Conn(ctx)
	return context.WithValue(ctx, ctxDbKey, conn)
}

type catalogDb struct {
	ContentManager
	UserManager
	ConnectionManager
}

// DB returns the store bound to the connection in ctx, or nil when no
// connection was attached.
func DB(ctx context.Context) DB_ {
	if d, ok := ctx.Value(ctxStoreKey).(DB_); ok && d != nil {
		return d
	}
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.Conn); ok && conn != nil {
		cm, um, xm := postgresql.NewCatalogDb(conn)
		return &catalogDb{
			ContentManager:    cm,
			UserManager:       um,
			ConnectionManager: xm,
		}
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
