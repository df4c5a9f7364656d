// Package content exposes the catalog read API: filtered listing, free-text
// search, facet enumeration, statistics, and the bulk-import trigger.
package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mediakite/catalogd/internal/catalogsrv/db"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/dberror"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/postgresql"
	"github.com/mediakite/catalogd/internal/common/httpx"
)

// getContentList lists records matching the optional filters, paginated in
// insertion order.
func getContentList(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	filter, err := parseListFilter(r)
	if err != nil {
		return nil, err
	}
	list, dbErr := db.DB(ctx).ListContent(ctx, filter)
	if dbErr != nil {
		return nil, dbErr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toContentListRsp(list),
	}, nil
}

// getContentByID looks a record up by its internal identifier.
func getContentByID(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	contentID, parseErr := uuid.Parse(chi.URLParam(r, "contentID"))
	if parseErr != nil {
		// a non-uuid id can never name a stored record
		return nil, ErrContentNotFound
	}
	c, dbErr := db.DB(ctx).GetContent(ctx, contentID)
	if dbErr != nil {
		if dbErr.Is(dberror.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, dbErr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toContentRsp(c),
	}, nil
}

// searchContent matches q case-insensitively against title, director, cast
// and description.
func searchContent(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")
	if q == "" {
		return nil, ErrMissingSearchQuery
	}
	p, err := parsePagination(r)
	if err != nil {
		return nil, err
	}
	list, dbErr := db.DB(ctx).SearchContent(ctx, q, p.Limit, p.Offset)
	if dbErr != nil {
		return nil, dbErr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toContentListRsp(list),
	}, nil
}

// getContentByRating is an exact-match shortcut over the list contract.
func getContentByRating(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	p, err := parsePagination(r)
	if err != nil {
		return nil, err
	}
	filter := postgresql.ContentFilter{
		Rating: chi.URLParam(r, "rating"),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	list, dbErr := db.DB(ctx).ListContent(ctx, filter)
	if dbErr != nil {
		return nil, dbErr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toContentListRsp(list),
	}, nil
}

// getContentByCategory is a substring-match shortcut over the list contract.
func getContentByCategory(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	p, err := parsePagination(r)
	if err != nil {
		return nil, err
	}
	filter := postgresql.ContentFilter{
		Category: chi.URLParam(r, "category"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	}
	list, dbErr := db.DB(ctx).ListContent(ctx, filter)
	if dbErr != nil {
		return nil, dbErr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   toContentListRsp(list),
	}, nil
}
