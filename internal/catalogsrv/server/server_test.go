package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediakite/catalogd/internal/catalogsrv/catcommon"
	"github.com/mediakite/catalogd/internal/catalogsrv/db"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/postgresql"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// emptyStore backs server routing tests with an empty catalog.
type emptyStore struct {
	db.DB_
}

func (s *emptyStore) ListContent(ctx context.Context, filter postgresql.ContentFilter) ([]*models.Content, apperrors.Error) {
	return nil, nil
}

func (s *emptyStore) CountContent(ctx context.Context) (int, apperrors.Error) {
	return 0, nil
}

func (s *emptyStore) CountContentByType(ctx context.Context, contentType string) (int, apperrors.Error) {
	return 0, nil
}

func (s *emptyStore) DistinctRatings(ctx context.Context) ([]string, apperrors.Error) {
	return nil, nil
}

func (s *emptyStore) RatingCounts(ctx context.Context) ([]models.RatingCount, apperrors.Error) {
	return nil, nil
}

func (s *emptyStore) CountryValues(ctx context.Context) ([]string, apperrors.Error) {
	return nil, nil
}

func (s *emptyStore) CategoryValues(ctx context.Context) ([]string, apperrors.Error) {
	return nil, nil
}

func (s *emptyStore) Close(ctx context.Context) {}

func executeTestRequest(t *testing.T, req *http.Request, asTest bool) *httptest.ResponseRecorder {
	t.Helper()
	s, err := CreateNewServer()
	require.NoError(t, err)
	s.MountHandlers()

	ctx := db.WithDB(req.Context(), &emptyStore{})
	if asTest {
		ctx = catcommon.SetTestContext(ctx, true)
	}
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := executeTestRequest(t, req, false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestIndex(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := executeTestRequest(t, req, false)
	require.Equal(t, http.StatusOK, rr.Code)

	var rsp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rsp))
	assert.Equal(t, "Media Catalog Server", rsp["service"])
	endpoints, ok := rsp["endpoints"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/content", endpoints["content"])
}

func TestRequestIDHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := executeTestRequest(t, req, false)
	assert.NotEmpty(t, rr.Header().Get("X-Catalogd-Request-ID"))
}

func TestContentRequiresAuth(t *testing.T) {
	targets := []string{
		"/content",
		"/content/search/query?q=x",
		"/content/stats/overview",
		"/content/filters/ratings",
	}
	for _, target := range targets {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := executeTestRequest(t, req, false)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, target)
		assert.Contains(t, rr.Body.String(), `"result":0`, target)
	}
}

func TestLoadDataRequiresAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/load-data", nil)
	rr := executeTestRequest(t, req, false)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPublicStats(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rr := executeTestRequest(t, req, false)
	require.Equal(t, http.StatusOK, rr.Code)

	var rsp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rsp))
	assert.Equal(t, float64(0), rsp["total_content"])
}

func TestPublicFilters(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/filters", nil)
	rr := executeTestRequest(t, req, false)
	require.Equal(t, http.StatusOK, rr.Code)

	var rsp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rsp))
	assert.Contains(t, rsp, "ratings")
	assert.Contains(t, rsp, "countries")
	assert.Contains(t, rsp, "categories")
}

func TestAuthenticatedContentList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/content", nil)
	rr := executeTestRequest(t, req, true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
