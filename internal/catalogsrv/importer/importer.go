// Package importer reads a tabular catalog export (CSV) into the record
// store. Rows are committed in fixed-size batches so partial progress
// survives a mid-run failure; existing external ids are skipped, never
// updated.
package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/catalogsrv/db/models"
	"github.com/mediakite/catalogd/internal/catalogsrv/facet"
	"github.com/mediakite/catalogd/internal/common/apperrors"
)

// DefaultBatchSize is the number of rows committed per transaction when the
// config does not say otherwise.
const DefaultBatchSize = 100

// columns is the fixed input schema, keyed by CSV header name.
var columns = []string{
	"show_id", "type", "title", "director", "cast", "country",
	"date_added", "release_year", "rating", "duration", "listed_in", "description",
}

// Store is the slice of the record store the importer writes to and computes
// its closing statistics from.
type Store interface {
	InsertContentBatch(ctx context.Context, rows []models.Content) (inserted, skipped int, err apperrors.Error)
	facet.Source
}

// Result reports the outcome of one import run.
type Result struct {
	Status           string       `json:"status"`
	RecordsProcessed int          `json:"records_processed"`
	RecordsInserted  int          `json:"records_inserted"`
	RecordsUpdated   int          `json:"records_updated"` // reserved; no update path exists
	RecordsSkipped   int          `json:"records_skipped"`
	Statistics       *facet.Stats `json:"statistics"`
}

// Run imports the CSV file at csvPath into the store. Rows are processed in
// file order; each batch is one transaction. Any failure rolls back the
// in-flight batch, aborts the run and surfaces the cause; previously
// committed batches stay.
func Run(ctx context.Context, store Store, csvPath string, batchSize int) (*Result, apperrors.Error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	f, errOpen := os.Open(csvPath)
	if errOpen != nil {
		log.Ctx(ctx).Error().Err(errOpen).Str("csv_path", csvPath).Msg("unable to open import file")
		return nil, ErrFileUnreadable.Err(errors.Wrap(errOpen, csvPath))
	}
	defer f.Close()

	log.Ctx(ctx).Info().Str("csv_path", csvPath).Int("batch_size", batchSize).Msg("starting import")

	r := csv.NewReader(f)
	header, errRead := r.Read()
	if errRead != nil {
		log.Ctx(ctx).Error().Err(errRead).Msg("unable to read header row")
		return nil, ErrFileUnreadable.Err(errors.Wrap(errRead, "header row"))
	}
	colIndex, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	result := &Result{Status: "success"}
	batch := make([]models.Content, 0, batchSize)

	flush := func() apperrors.Error {
		if len(batch) == 0 {
			return nil
		}
		inserted, skipped, errDb := store.InsertContentBatch(ctx, batch)
		if errDb != nil {
			log.Ctx(ctx).Error().Err(errDb).Int("batch_len", len(batch)).Msg("batch insert failed, batch rolled back")
			return ErrImport.MsgErr("import aborted, current batch rolled back", errDb)
		}
		result.RecordsInserted += inserted
		result.RecordsSkipped += skipped
		log.Ctx(ctx).Info().Int("processed", result.RecordsProcessed).Msg("batch committed")
		batch = batch[:0]
		return nil
	}

	line := 1
	for {
		record, errRead := r.Read()
		if errRead == io.EOF {
			break
		}
		line++
		if errRead != nil {
			log.Ctx(ctx).Error().Err(errRead).Int("line", line).Msg("malformed csv record")
			return nil, ErrBadRecord.Err(errors.Wrapf(errRead, "line %d", line))
		}
		row, err := normalizeRow(record, colIndex)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Int("line", line).Msg("invalid row")
			return nil, ErrBadRecord.MsgErr("malformed record in import file", errors.Errorf("line %d: %s", line, err.Error()))
		}
		result.RecordsProcessed++
		batch = append(batch, *row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	stats, err := facet.Overview(ctx, store)
	if err != nil {
		return nil, err
	}
	result.Statistics = stats

	log.Ctx(ctx).Info().
		Int("processed", result.RecordsProcessed).
		Int("inserted", result.RecordsInserted).
		Int("skipped", result.RecordsSkipped).
		Msg("import complete")
	return result, nil
}

// mapHeader resolves the fixed column schema against the header row.
func mapHeader(header []string) (map[string]int, apperrors.Error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, ErrSchemaMismatch.Err(errors.Errorf("missing column %q", col))
		}
	}
	return index, nil
}

// normalizeRow maps one CSV record onto a Content row. Blank cells become
// NULL for every field except show_id, which is required.
func normalizeRow(record []string, colIndex map[string]int) (*models.Content, error) {
	cell := func(col string) string {
		i := colIndex[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	showID := strings.TrimSpace(cell("show_id"))
	if showID == "" {
		return nil, errors.New("missing show_id")
	}

	return &models.Content{
		ShowID:      showID,
		ContentType: nullString(cell("type")),
		Title:       nullString(cell("title")),
		Director:    nullString(cell("director")),
		CastMembers: nullString(cell("cast")),
		Country:     nullString(cell("country")),
		DateAdded:   nullString(cell("date_added")),
		ReleaseYear: parseYear(cell("release_year")),
		Rating:      nullString(cell("rating")),
		Duration:    nullString(cell("duration")),
		Categories:  nullString(cell("listed_in")),
		Description: nullString(cell("description")),
	}, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// parseYear coerces the release year cell to a positive integer. Unparseable
// or non-positive values are stored as NULL, never zero.
func parseYear(s string) sql.NullInt32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullInt32{}
	}
	// exports sometimes carry years as floats ("2020.0")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullInt32{}
	}
	year := int32(f)
	if year <= 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: year, Valid: true}
}
