package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/lawdesk/internal/catalog"
	"github.com/MrSnakeDoc/lawdesk/internal/sources/seed"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [catalog-file]",
		Short: "Check a catalog file without serving it",
		Long: `Parse and validate a catalog YAML file exactly as the server would on
reload. With no argument the embedded catalog is checked.

Example:
  lawdesk validate catalog.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			loader := seed.NewLoader(path)
			store, err := loadCatalog(loader)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✅ %s is valid\n", loader.Source())
			fmt.Fprintf(out, "  entries:   %d\n", store.Count())
			fmt.Fprintf(out, "  states:    %d\n", len(store.States()))
			fmt.Fprintf(out, "  templates: %d\n", len(store.Templates()))
			return nil
		},
	}
}

// loadCatalog reads, maps and installs a catalog into a fresh store.
func loadCatalog(loader *seed.Loader) (*catalog.Store, error) {
	file, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", loader.Source(), err)
	}

	snap, err := seed.NewMapper().MapCatalog(file)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", loader.Source(), err)
	}

	store := catalog.NewStore()
	if err := store.Replace(snap); err != nil {
		return nil, err
	}
	return store, nil
}
