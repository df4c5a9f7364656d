package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediakite/catalogd/internal/catalogsrv/db/dberror"
	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

const csvHeader = "show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description\n"

// fakeStore accumulates inserted rows in memory, skipping duplicate show_ids
// the way the real store does. failAfterBatches triggers a store error on
// the n-th batch.
type fakeStore struct {
	rows             map[string]models.Content
	order            []string
	batches          int
	failAfterBatches int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]models.Content), failAfterBatches: -1}
}

func (s *fakeStore) InsertContentBatch(ctx context.Context, rows []models.Content) (int, int, apperrors.Error) {
	if s.failAfterBatches >= 0 && s.batches >= s.failAfterBatches {
		return 0, 0, dberror.ErrDatabase.Msg("insert failed")
	}
	s.batches++
	inserted, skipped := 0, 0
	for _, r := range rows {
		if _, ok := s.rows[r.ShowID]; ok {
			skipped++
			continue
		}
		s.rows[r.ShowID] = r
		s.order = append(s.order, r.ShowID)
		inserted++
	}
	return inserted, skipped, nil
}

func (s *fakeStore) CountContent(ctx context.Context) (int, apperrors.Error) {
	return len(s.rows), nil
}

func (s *fakeStore) CountContentByType(ctx context.Context, contentType string) (int, apperrors.Error) {
	n := 0
	for _, r := range s.rows {
		if r.ContentType.Valid && r.ContentType.String == contentType {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) DistinctRatings(ctx context.Context) ([]string, apperrors.Error) {
	return nil, nil
}

func (s *fakeStore) RatingCounts(ctx context.Context) ([]models.RatingCount, apperrors.Error) {
	return nil, nil
}

func (s *fakeStore) CountryValues(ctx context.Context) ([]string, apperrors.Error) {
	return nil, nil
}

func (s *fakeStore) CategoryValues(ctx context.Context) ([]string, apperrors.Error) {
	values := []string{}
	for _, id := range s.order {
		if r := s.rows[id]; r.Categories.Valid {
			values = append(values, r.Categories.String)
		}
	}
	return values, nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunInsertsRows(t *testing.T) {
	path := writeCSV(t, csvHeader+
		`s1,Movie,Dark Waters,Todd Haynes,"Mark Ruffalo, Anne Hathaway",United States,"November 1, 2019",2019,PG-13,126 min,Dramas,A corporate lawyer takes on a chemical company.`+"\n"+
		`s2,TV Show,Dark,,"Louis Hofmann",Germany,"July 1, 2017",2017,TV-MA,3 Seasons,"International TV Shows, Sci-Fi",Children vanish from a small German town.`+"\n"+
		`s3,Movie,Untitled,,,,,,,,,`+"\n")

	store := newFakeStore()
	result, err := Run(context.Background(), store, path, 2)
	require.Nil(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 3, result.RecordsProcessed)
	assert.Equal(t, 3, result.RecordsInserted)
	assert.Equal(t, 0, result.RecordsUpdated)
	assert.Equal(t, 0, result.RecordsSkipped)
	require.NotNil(t, result.Statistics)
	assert.Equal(t, 3, result.Statistics.TotalContent)
	assert.Equal(t, 2, result.Statistics.Movies)
	assert.Equal(t, 1, result.Statistics.TVShows)

	// blank cells are absent, not empty strings
	r := store.rows["s3"]
	assert.Equal(t, "Movie", r.ContentType.String)
	assert.Equal(t, "Untitled", r.Title.String)
	assert.False(t, r.Director.Valid)
	assert.False(t, r.ReleaseYear.Valid)
	assert.False(t, r.Rating.Valid)
	assert.False(t, r.Description.Valid)
}

func TestRunIsIdempotent(t *testing.T) {
	path := writeCSV(t, csvHeader+
		"s1,Movie,One,,,,,2001,PG,90 min,Dramas,d1\n"+
		"s2,Movie,Two,,,,,2002,PG,90 min,Dramas,d2\n"+
		"s3,Movie,Three,,,,,2003,PG,90 min,Dramas,d3\n")

	store := newFakeStore()
	first, err := Run(context.Background(), store, path, 100)
	require.Nil(t, err)
	assert.Equal(t, 3, first.RecordsInserted)
	assert.Equal(t, 0, first.RecordsSkipped)

	second, err := Run(context.Background(), store, path, 100)
	require.Nil(t, err)
	assert.Equal(t, 0, second.RecordsInserted)
	assert.Equal(t, 3, second.RecordsSkipped)
	assert.Equal(t, 3, second.Statistics.TotalContent)
}

func TestRunYearCoercion(t *testing.T) {
	path := writeCSV(t, csvHeader+
		"s1,Movie,A,,,,,2020,PG,,Dramas,\n"+
		"s2,Movie,B,,,,,2020.0,PG,,Dramas,\n"+
		"s3,Movie,C,,,,,unknown,PG,,Dramas,\n"+
		"s4,Movie,D,,,,,0,PG,,Dramas,\n"+
		"s5,Movie,E,,,,,-3,PG,,Dramas,\n")

	store := newFakeStore()
	_, err := Run(context.Background(), store, path, 100)
	require.Nil(t, err)

	assert.Equal(t, int32(2020), store.rows["s1"].ReleaseYear.Int32)
	assert.Equal(t, int32(2020), store.rows["s2"].ReleaseYear.Int32)
	for _, id := range []string{"s3", "s4", "s5"} {
		assert.False(t, store.rows[id].ReleaseYear.Valid, "year must be absent for %s, never zero or negative", id)
	}
}

func TestRunMissingColumn(t *testing.T) {
	path := writeCSV(t, "show_id,type,title\ns1,Movie,A\n")
	store := newFakeStore()
	_, err := Run(context.Background(), store, path, 100)
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.ErrorAll(), "director")
}

func TestRunFileUnreadable(t *testing.T) {
	store := newFakeStore()
	_, err := Run(context.Background(), store, filepath.Join(t.TempDir(), "nope.csv"), 100)
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrFileUnreadable)
}

func TestRunMissingShowID(t *testing.T) {
	path := writeCSV(t, csvHeader+",Movie,A,,,,,2020,PG,,Dramas,\n")
	store := newFakeStore()
	_, err := Run(context.Background(), store, path, 100)
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrBadRecord)
}

func TestRunStoreFailureAbortsAndKeepsCommittedBatches(t *testing.T) {
	path := writeCSV(t, csvHeader+
		"s1,Movie,A,,,,,2020,PG,,Dramas,\n"+
		"s2,Movie,B,,,,,2020,PG,,Dramas,\n"+
		"s3,Movie,C,,,,,2020,PG,,Dramas,\n"+
		"s4,Movie,D,,,,,2020,PG,,Dramas,\n")

	store := newFakeStore()
	store.failAfterBatches = 1
	_, err := Run(context.Background(), store, path, 2)
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrImport)
	assert.ErrorIs(t, err, dberror.ErrDatabase)
	// first batch committed, second rolled back
	assert.Len(t, store.rows, 2)
}
