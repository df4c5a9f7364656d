package facet

import (
	"context"

	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

const (
	ContentTypeMovie  = "Movie"
	ContentTypeTVShow = "TV Show"

	// topCategories bounds the by_category ranking in the overview.
	topCategories = 20
)

// Source is the slice of the record store the facet engine reads from.
type Source interface {
	CountContent(ctx context.Context) (int, apperrors.Error)
	CountContentByType(ctx context.Context, contentType string) (int, apperrors.Error)
	DistinctRatings(ctx context.Context) ([]string, apperrors.Error)
	RatingCounts(ctx context.Context) ([]models.RatingCount, apperrors.Error)
	CountryValues(ctx context.Context) ([]string, apperrors.Error)
	CategoryValues(ctx context.Context) ([]string, apperrors.Error)
}

// CategoryCount is one row of the by-category statistics.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Stats is the statistics overview snapshot.
type Stats struct {
	TotalContent int                  `json:"total_content"`
	Movies       int                  `json:"movies"`
	TVShows      int                  `json:"tv_shows"`
	ByRating     []models.RatingCount `json:"by_rating"`
	ByCategory   []CategoryCount      `json:"by_category"`
}

// Filters holds the distinct values for every filterable facet.
type Filters struct {
	Ratings    []string `json:"ratings"`
	Countries  []string `json:"countries"`
	Categories []string `json:"categories"`
}

// Overview computes the statistics snapshot: total and per-type counts,
// per-rating counts, and the top-20 category tokens by frequency.
func Overview(ctx context.Context, src Source) (*Stats, apperrors.Error) {
	total, err := src.CountContent(ctx)
	if err != nil {
		return nil, err
	}
	movies, err := src.CountContentByType(ctx, ContentTypeMovie)
	if err != nil {
		return nil, err
	}
	tvShows, err := src.CountContentByType(ctx, ContentTypeTVShow)
	if err != nil {
		return nil, err
	}
	byRating, err := src.RatingCounts(ctx)
	if err != nil {
		return nil, err
	}
	categoryValues, err := src.CategoryValues(ctx)
	if err != nil {
		return nil, err
	}

	ranked := TopCounts(TokenCounts(categoryValues), topCategories)
	byCategory := make([]CategoryCount, 0, len(ranked))
	for _, c := range ranked {
		byCategory = append(byCategory, CategoryCount{Category: c.Label, Count: c.Count})
	}

	return &Stats{
		TotalContent: total,
		Movies:       movies,
		TVShows:      tvShows,
		ByRating:     byRating,
		ByCategory:   byCategory,
	}, nil
}

// FilterValues computes the distinct values per facet. Ratings are row-level
// distinct; countries and categories are token-level over the comma-joined
// columns.
func FilterValues(ctx context.Context, src Source) (*Filters, apperrors.Error) {
	ratings, err := src.DistinctRatings(ctx)
	if err != nil {
		return nil, err
	}
	countryValues, err := src.CountryValues(ctx)
	if err != nil {
		return nil, err
	}
	categoryValues, err := src.CategoryValues(ctx)
	if err != nil {
		return nil, err
	}
	return &Filters{
		Ratings:    ratings,
		Countries:  UniqueTokens(countryValues),
		Categories: UniqueTokens(categoryValues),
	}, nil
}
