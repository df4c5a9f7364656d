package cli

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mediakite/catalogd/internal/catalogsrv/config"
	"github.com/mediakite/catalogd/internal/catalogsrv/db"
	"github.com/mediakite/catalogd/internal/catalogsrv/server"
)

// serveCmd starts the catalog HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog HTTP server",
	Long: `Start the catalog HTTP server on the configured port.

Examples:
  # Serve with development defaults
  catalogd serve

  # Serve with an explicit config file
  catalogd serve --config /etc/catalogd/config.toml`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	slog := log.With().Str("state", "init").Logger()

	if err := db.Init(config.Config().DB.DSN()); err != nil {
		slog.Error().Err(err).Msg("unable to connect to database")
		return err
	}

	s, err := server.CreateNewServer()
	if err != nil {
		slog.Error().Err(err).Msg("unable to create server")
		return err
	}
	s.MountHandlers()

	slog.Info().Str("port", config.Config().ServerPort).Msg("starting catalog server")
	return http.ListenAndServe(":"+config.Config().ServerPort, s.Router)
}
