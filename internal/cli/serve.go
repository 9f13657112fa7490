package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/lawdesk/internal/app"
	"github.com/MrSnakeDoc/lawdesk/internal/config"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Example:
  lawdesk serve
  LAWDESK_REDIS_ADDR=localhost:6379 lawdesk serve --listen :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listen, _ := cmd.Flags().GetString("listen")
			catalogFile, _ := cmd.Flags().GetString("catalog")

			cfg := config.Load()
			if listen != "" {
				cfg.ListenPort = listen
			}
			if catalogFile != "" {
				cfg.CatalogFile = catalogFile
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			return a.Run()
		},
	}

	cmd.Flags().String("listen", "", "Listen address, overrides LAWDESK_LISTEN_PORT (ex: :8080)")
	cmd.Flags().String("catalog", "", "Catalog YAML file, overrides LAWDESK_CATALOG_FILE")
	return cmd
}
