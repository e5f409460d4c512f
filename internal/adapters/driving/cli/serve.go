package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/presentai/presentai/internal/adapters/driving/api"
	"github.com/presentai/presentai/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON HTTP API.

Routes:
  GET  /api/health
  GET  /api/themes
  GET  /api/presentations
  GET  /api/presentations/:id
  POST /api/presentations/:id/export
  GET  /api/presentations/:id/export.pptx

When server.jwt_secret is set, requests must carry an HS256 bearer token whose
subject is the owner id. Otherwise every request acts as user.id.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default: server.addr setting)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = settings.Server.Addr
	}

	server, err := api.NewServer(&api.Ports{
		Export:       exportService,
		Presentation: presentationService,
		Theme:        themeService,
	}, api.Config{
		JWTSecret:      settings.Server.JWTSecret,
		DefaultOwner:   settings.User.ID,
		AllowedOrigins: settings.Server.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	if settings.Server.JWTSecret == "" {
		logger.Warn("server.jwt_secret is not set; every request acts as %q", settings.User.ID)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("API server listening on %s\n", addr)
	return server.Run(ctx, addr)
}
