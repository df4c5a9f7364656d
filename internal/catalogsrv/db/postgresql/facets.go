package postgresql

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/catalogsrv/db/dberror"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// DistinctRatings returns every distinct non-empty rating value, sorted
// lexicographically.
func (cm *contentManager) DistinctRatings(ctx context.Context) ([]string, apperrors.Error) {
	query := `
		SELECT DISTINCT rating FROM content
		WHERE rating IS NOT NULL AND rating <> ''
		ORDER BY rating;
	`
	return cm.queryStrings(ctx, query)
}

// RatingCounts returns per-rating record counts over non-empty ratings,
// ordered by count descending, rating ascending on ties.
func (cm *contentManager) RatingCounts(ctx context.Context) ([]models.RatingCount, apperrors.Error) {
	query := `
		SELECT rating, COUNT(*) AS count FROM content
		WHERE rating IS NOT NULL AND rating <> ''
		GROUP BY rating
		ORDER BY count DESC, rating ASC;
	`
	rows, errDb := cm.conn().QueryContext(ctx, query)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to query rating counts")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	defer rows.Close()

	result := []models.RatingCount{}
	for rows.Next() {
		var rc models.RatingCount
		if errScan := rows.Scan(&rc.Rating, &rc.Count); errScan != nil {
			log.Ctx(ctx).Error().Err(errScan).Msg("failed to scan rating count row")
			return nil, dberror.ErrDatabase.Err(errScan)
		}
		result = append(result, rc)
	}
	if errDb := rows.Err(); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to iterate rating count rows")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return result, nil
}

// CountryValues returns the raw non-empty country column values. The comma
// joined values are tokenized by the facet engine, not here.
func (cm *contentManager) CountryValues(ctx context.Context) ([]string, apperrors.Error) {
	query := `SELECT country FROM content WHERE country IS NOT NULL AND country <> '';`
	return cm.queryStrings(ctx, query)
}

// CategoryValues returns the raw non-empty categories column values.
func (cm *contentManager) CategoryValues(ctx context.Context) ([]string, apperrors.Error) {
	query := `SELECT categories FROM content WHERE categories IS NOT NULL AND categories <> '';`
	return cm.queryStrings(ctx, query)
}

func (cm *contentManager) queryStrings(ctx context.Context, query string) ([]string, apperrors.Error) {
	rows, errDb := cm.conn().QueryContext(ctx, query)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to query string column")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var s string
		if errScan := rows.Scan(&s); errScan != nil {
			log.Ctx(ctx).Error().Err(errScan).Msg("failed to scan string row")
			return nil, dberror.ErrDatabase.Err(errScan)
		}
		result = append(result, s)
	}
	if errDb := rows.Err(); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to iterate string rows")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return result, nil
}
