package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mediakite/catalogd/internal/catalogsrv/config"
	"github.com/mediakite/catalogd/internal/catalogsrv/db"
	"github.com/mediakite/catalogd/internal/catalogsrv/importer"
)

var csvPath string

// importCmd runs a CSV import against the configured database without
// starting the HTTP server.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import catalog records from a CSV file",
	Long: `Import catalog records from a CSV file into the catalog database.
Records whose show_id already exists are skipped, so the import is safe to
re-run against the same file.

Examples:
  # Import the configured default CSV
  catalogd import

  # Import an explicit file
  catalogd import --csv-path /data/catalog_export.csv`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&csvPath, "csv-path", "f", "", "Path to the CSV file to import")
}

func runImport(cmd *cobra.Command, args []string) error {
	slog := log.With().Str("state", "import").Logger()

	path := csvPath
	if path == "" {
		path = config.Config().Import.DefaultCSVPath
	}
	if path == "" {
		return fmt.Errorf("no csv path given and no default configured")
	}

	if err := db.Init(config.Config().DB.DSN()); err != nil {
		slog.Error().Err(err).Msg("unable to connect to database")
		return err
	}

	ctx := db.ConnCtx(context.Background())
	store := db.DB(ctx)
	if store == nil {
		return fmt.Errorf("unable to get database connection")
	}
	defer store.Close(ctx)

	result, err := importer.Run(ctx, store, path, config.Config().Import.BatchSize)
	if err != nil {
		slog.Error().Err(err).Str("csv_path", path).Msg("import failed")
		return err
	}

	slog.Info().
		Str("csv_path", path).
		Int("processed", result.RecordsProcessed).
		Int("inserted", result.RecordsInserted).
		Int("skipped", result.RecordsSkipped).
		Msg("import complete")
	fmt.Printf("processed %d records: %d inserted, %d skipped\n",
		result.RecordsProcessed, result.RecordsInserted, result.RecordsSkipped)
	return nil
}
