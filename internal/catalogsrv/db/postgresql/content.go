package postgresql

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/catalogsrv/db/dberror"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

const contentColumns = `content_id, show_id, content_type, title, director, cast_members,
		country, date_added, release_year, rating, duration, categories, description`

// ContentFilter holds the optional predicates for ListContent. Empty string
// or nil fields are not applied. Substring fields match case-insensitively.
type ContentFilter struct {
	ContentType string // exact
	Rating      string // exact
	ReleaseYear *int   // exact
	Country     string // substring
	Category    string // substring
	Title       string // substring
	Director    string // substring
	Cast        string // substring
	Limit       int
	Offset      int
}

// InsertContentBatch inserts the given rows in a single transaction. Rows
// whose show_id already exists are skipped, never updated; a duplicate inside
// the batch itself is skipped the same way. Any failure rolls the whole batch
// back.
func (cm *contentManager) InsertContentBatch(ctx context.Context, rows []models.Content) (inserted, skipped int, err apperrors.Error) {
	tx, errdb := cm.conn().BeginTx(ctx, &sql.TxOptions{})
	if errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to start transaction")
		return 0, 0, dberror.ErrDatabase.Err(errdb)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
				log.Ctx(ctx).Error().Err(rollbackErr).Msg("failed to rollback transaction")
			}
		}
	}()

	query := `
		INSERT INTO content (content_id, show_id, content_type, title, director, cast_members,
			country, date_added, release_year, rating, duration, categories, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (show_id) DO NOTHING
		RETURNING content_id;
	`
	for i := range rows {
		row := &rows[i]
		contentID := row.ContentID
		if contentID == uuid.Nil {
			contentID = uuid.New()
		}
		var insertedID uuid.UUID
		errDb := tx.QueryRowContext(ctx, query,
			contentID, row.ShowID, row.ContentType, row.Title, row.Director, row.CastMembers,
			row.Country, row.DateAdded, row.ReleaseYear, row.Rating, row.Duration,
			row.Categories, row.Description,
		).Scan(&insertedID)
		if errDb != nil {
			if errDb == sql.ErrNoRows {
				skipped++
				continue
			}
			log.Ctx(ctx).Error().Err(errDb).Str("show_id", row.ShowID).Msg("failed to insert content")
			err = dberror.ErrDatabase.Err(errDb)
			return 0, 0, err
		}
		row.ContentID = insertedID
		inserted++
	}

	if errdb := tx.Commit(); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to commit transaction")
		err = dberror.ErrDatabase.Err(errdb)
		return 0, 0, err
	}
	return inserted, skipped, nil
}

// GetContent retrieves one catalog record by its internal identifier.
func (cm *contentManager) GetContent(ctx context.Context, contentID uuid.UUID) (*models.Content, apperrors.Error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE content_id = $1;`
	row := cm.conn().QueryRowContext(ctx, query, contentID)
	content, errDb := scanContent(row)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("content_id", contentID.String()).Msg("content not found")
			return nil, dberror.ErrNotFound.Msg("content not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("content_id", contentID.String()).Msg("failed to retrieve content")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return content, nil
}

// ContentExists reports whether a record with the given external id is
// already stored.
func (cm *contentManager) ContentExists(ctx context.Context, showID string) (bool, apperrors.Error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM content WHERE show_id = $1);`
	if errDb := cm.conn().QueryRowContext(ctx, query, showID).Scan(&exists); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("show_id", showID).Msg("failed to check content existence")
		return false, dberror.ErrDatabase.Err(errDb)
	}
	return exists, nil
}

// ListContent returns records matching the filter, in insertion order.
func (cm *contentManager) ListContent(ctx context.Context, filter ContentFilter) ([]*models.Content, apperrors.Error) {
	query := `SELECT ` + contentColumns + ` FROM content`
	var conds []string
	var args []any

	addCond := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", placeholder(len(args)), 1))
	}

	if filter.ContentType != "" {
		addCond("content_type = ?", filter.ContentType)
	}
	if filter.Rating != "" {
		addCond("rating = ?", filter.Rating)
	}
	if filter.ReleaseYear != nil {
		addCond("release_year = ?", *filter.ReleaseYear)
	}
	if filter.Country != "" {
		addCond(`country ILIKE ? ESCAPE '\'`, likePattern(filter.Country))
	}
	if filter.Category != "" {
		addCond(`categories ILIKE ? ESCAPE '\'`, likePattern(filter.Category))
	}
	if filter.Title != "" {
		addCond(`title ILIKE ? ESCAPE '\'`, likePattern(filter.Title))
	}
	if filter.Director != "" {
		addCond(`director ILIKE ? ESCAPE '\'`, likePattern(filter.Director))
	}
	if filter.Cast != "" {
		addCond(`cast_members ILIKE ? ESCAPE '\'`, likePattern(filter.Cast))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	query += " ORDER BY seq LIMIT " + placeholder(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET " + placeholder(len(args)) + ";"

	return cm.queryContent(ctx, query, args...)
}

// SearchContent matches q case-insensitively as a substring against title,
// director, cast or description.
func (cm *contentManager) SearchContent(ctx context.Context, q string, limit, offset int) ([]*models.Content, apperrors.Error) {
	query := `SELECT ` + contentColumns + ` FROM content
		WHERE title ILIKE $1 ESCAPE '\'
			OR director ILIKE $1 ESCAPE '\'
			OR cast_members ILIKE $1 ESCAPE '\'
			OR description ILIKE $1 ESCAPE '\'
		ORDER BY seq LIMIT $2 OFFSET $3;`
	return cm.queryContent(ctx, query, likePattern(q), limit, offset)
}

// CountContent returns the total number of stored records.
func (cm *contentManager) CountContent(ctx context.Context) (int, apperrors.Error) {
	var count int
	query := `SELECT COUNT(*) FROM content;`
	if errDb := cm.conn().QueryRowContext(ctx, query).Scan(&count); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to count content")
		return 0, dberror.ErrDatabase.Err(errDb)
	}
	return count, nil
}

// CountContentByType counts records whose content_type matches exactly.
func (cm *contentManager) CountContentByType(ctx context.Context, contentType string) (int, apperrors.Error) {
	var count int
	query := `SELECT COUNT(*) FROM content WHERE content_type = $1;`
	if errDb := cm.conn().QueryRowContext(ctx, query, contentType).Scan(&count); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("content_type", contentType).Msg("failed to count content by type")
		return 0, dberror.ErrDatabase.Err(errDb)
	}
	return count, nil
}

func (cm *contentManager) queryContent(ctx context.Context, query string, args ...any) ([]*models.Content, apperrors.Error) {
	rows, errDb := cm.conn().QueryContext(ctx, query, args...)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to query content")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	defer rows.Close()

	result := []*models.Content{}
	for rows.Next() {
		content, errScan := scanContent(rows)
		if errScan != nil {
			log.Ctx(ctx).Error().Err(errScan).Msg("failed to scan content row")
			return nil, dberror.ErrDatabase.Err(errScan)
		}
		result = append(result, content)
	}
	if errDb := rows.Err(); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to iterate content rows")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (*models.Content, error) {
	var c models.Content
	err := row.Scan(
		&c.ContentID, &c.ShowID, &c.ContentType, &c.Title, &c.Director, &c.CastMembers,
		&c.Country, &c.DateAdded, &c.ReleaseYear, &c.Rating, &c.Duration,
		&c.Categories, &c.Description,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// likePattern wraps q for substring ILIKE matching, escaping the LIKE
// metacharacters so user input always matches literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
