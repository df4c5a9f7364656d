package content

import (
	"net/http"

	"github.com/mediakite/catalogd/internal/catalogsrv/db"
	"github.com/mediakite/catalogd/internal/catalogsrv/facet"
	"github.com/mediakite/catalogd/internal/common/httpx"
)

// getAllRatings returns the sorted distinct rating values.
func getAllRatings(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	ratings, err := db.DB(ctx).DistinctRatings(ctx)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: ratings}, nil
}

// getAllCategories returns the sorted union of category tokens.
func getAllCategories(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	values, err := db.DB(ctx).CategoryValues(ctx)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: facet.UniqueTokens(values)}, nil
}

// getAllCountries returns the sorted union of country tokens.
func getAllCountries(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	values, err := db.DB(ctx).CountryValues(ctx)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: facet.UniqueTokens(values)}, nil
}

// GetStatistics returns the statistics overview snapshot. Mounted both under
// /content/stats/overview (authenticated) and /stats (public).
func GetStatistics(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	stats, err := facet.Overview(ctx, db.DB(ctx))
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: stats}, nil
}

// GetFilterValues returns the distinct values per facet. Mounted both under
// /content/filters/* (authenticated, per facet) and /filters (public, all).
func GetFilterValues(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	filters, err := facet.FilterValues(ctx, db.DB(ctx))
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: filters}, nil
}
