package content

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/catalogsrv/config"
	"github.com/mediakite/catalogd/internal/catalogsrv/db"
	"github.com/mediakite/catalogd/internal/catalogsrv/importer"
	"github.com/mediakite/catalogd/internal/common/httpx"
)

// loadData triggers a CSV import into the record store. The source path comes
// from the csv_path query parameter, falling back to the configured default.
func loadData(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	path := r.URL.Query().Get("csv_path")
	if path == "" {
		path = config.Config().Import.DefaultCSVPath
	}
	if path == "" {
		return nil, ErrInvalidQuery.Msg("csv_path is required")
	}

	result, err := importer.Run(ctx, db.DB(ctx), path, config.Config().Import.BatchSize)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("csv_path", path).Msg("import failed")
		return nil, err
	}
	log.Ctx(ctx).Info().
		Str("csv_path", path).
		Int("processed", result.RecordsProcessed).
		Int("inserted", result.RecordsInserted).
		Int("skipped", result.RecordsSkipped).
		Msg("import complete")

	return &httpx.Response{StatusCode: http.StatusOK, Response: result}, nil
}
