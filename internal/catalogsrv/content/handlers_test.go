package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediakite/catalogd/internal/catalogsrv/catcommon"
	"github.com/mediakite/catalogd/internal/catalogsrv/db"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/dberror"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/postgresql"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// stubStore satisfies db.DB_ for the read handlers. Unused store methods
// come from the embedded nil interface and panic if reached.
type stubStore struct {
	db.DB_
	rows       []*models.Content
	byID       map[uuid.UUID]*models.Content
	lastFilter postgresql.ContentFilter
	lastQuery  string
	lastLimit  int
	lastOffset int
	failWith   apperrors.Error
}

func (s *stubStore) ListContent(ctx context.Context, filter postgresql.ContentFilter) ([]*models.Content, apperrors.Error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.lastFilter = filter
	return s.rows, nil
}

func (s *stubStore) SearchContent(ctx context.Context, q string, limit, offset int) ([]*models.Content, apperrors.Error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.lastQuery = q
	s.lastLimit = limit
	s.lastOffset = offset
	return s.rows, nil
}

func (s *stubStore) GetContent(ctx context.Context, contentID uuid.UUID) (*models.Content, apperrors.Error) {
	if c, ok := s.byID[contentID]; ok {
		return c, nil
	}
	return nil, dberror.ErrNotFound
}

func (s *stubStore) Close(ctx context.Context) {}

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func testRecord(showID, title string) *models.Content {
	return &models.Content{
		ContentID:   uuid.New(),
		ShowID:      showID,
		ContentType: ns("Movie"),
		Title:       ns(title),
		Country:     ns("United States, Canada"),
		ReleaseYear: sql.NullInt32{Int32: 2020, Valid: true},
		Rating:      ns("PG-13"),
		Categories:  ns("Dramas, International Movies"),
	}
}

func executeTestRequest(t *testing.T, store db.DB_, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := Router(chi.NewRouter())

	req := httptest.NewRequest(method, target, nil)
	ctx := catcommon.SetTestContext(req.Context(), true)
	ctx = db.WithDB(ctx, store)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetContentListDefaults(t *testing.T) {
	store := &stubStore{rows: []*models.Content{testRecord("s1", "First"), testRecord("s2", "Second")}}
	rr := executeTestRequest(t, store, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, 20, store.lastFilter.Limit)
	assert.Equal(t, 0, store.lastFilter.Offset)

	var rsp []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rsp))
	require.Len(t, rsp, 2)
	assert.Equal(t, "s1", rsp[0]["show_id"])
	assert.Equal(t, "First", rsp[0]["title"])
	assert.Equal(t, float64(2020), rsp[0]["release_year"])
}

func TestGetContentListFilters(t *testing.T) {
	store := &stubStore{}
	rr := executeTestRequest(t, store, http.MethodGet,
		"/?type=Movie&rating=PG-13&release_year=2020&country=Canada&category=Dramas&limit=5&offset=10")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "Movie", store.lastFilter.ContentType)
	assert.Equal(t, "PG-13", store.lastFilter.Rating)
	require.NotNil(t, store.lastFilter.ReleaseYear)
	assert.Equal(t, 2020, *store.lastFilter.ReleaseYear)
	assert.Equal(t, "Canada", store.lastFilter.Country)
	assert.Equal(t, "Dramas", store.lastFilter.Category)
	assert.Equal(t, 5, store.lastFilter.Limit)
	assert.Equal(t, 10, store.lastFilter.Offset)
}

func TestGetContentListEmpty(t *testing.T) {
	store := &stubStore{}
	rr := executeTestRequest(t, store, http.MethodGet, "/?rating=NOSUCH")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetContentListBadPagination(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"limit zero", "/?limit=0"},
		{"limit too large", "/?limit=101"},
		{"limit not a number", "/?limit=abc"},
		{"negative offset", "/?offset=-1"},
		{"bad release year", "/?release_year=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := executeTestRequest(t, &stubStore{}, http.MethodGet, tt.target)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestGetContentByID(t *testing.T) {
	rec := testRecord("s1", "First")
	store := &stubStore{byID: map[uuid.UUID]*models.Content{rec.ContentID: rec}}

	rr := executeTestRequest(t, store, http.MethodGet, "/"+rec.ContentID.String())
	require.Equal(t, http.StatusOK, rr.Code)

	var rsp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rsp))
	assert.Equal(t, rec.ContentID.String(), rsp["id"])
	assert.Equal(t, "s1", rsp["show_id"])
	// absent attributes serialize as null
	assert.Nil(t, rsp["director"])
	assert.Nil(t, rsp["description"])
}

func TestGetContentByIDNotFound(t *testing.T) {
	store := &stubStore{byID: map[uuid.UUID]*models.Content{}}
	rr := executeTestRequest(t, store, http.MethodGet, "/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetContentByIDNotAUuid(t *testing.T) {
	rr := executeTestRequest(t, &stubStore{}, http.MethodGet, "/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSearchContent(t *testing.T) {
	store := &stubStore{rows: []*models.Content{testRecord("s1", "First")}}
	rr := executeTestRequest(t, store, http.MethodGet, "/search/query?q=first&limit=7&offset=3")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "first", store.lastQuery)
	assert.Equal(t, 7, store.lastLimit)
	assert.Equal(t, 3, store.lastOffset)
}

func TestSearchContentMissingQuery(t *testing.T) {
	rr := executeTestRequest(t, &stubStore{}, http.MethodGet, "/search/query")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetContentByRating(t *testing.T) {
	store := &stubStore{}
	rr := executeTestRequest(t, store, http.MethodGet, "/by-rating/PG-13")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "PG-13", store.lastFilter.Rating)
	assert.Empty(t, store.lastFilter.Category)
}

func TestGetContentByCategory(t *testing.T) {
	store := &stubStore{}
	rr := executeTestRequest(t, store, http.MethodGet, "/by-category/Dramas")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Dramas", store.lastFilter.Category)
	assert.Empty(t, store.lastFilter.Rating)
}

func TestStoreErrorIsEnveloped(t *testing.T) {
	store := &stubStore{failWith: dberror.ErrDatabase}
	rr := executeTestRequest(t, store, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"result":0`)
}
