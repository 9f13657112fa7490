// Package cli is the lawdesk command line: the API server plus offline
// helpers that work on a catalog file without starting anything.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/lawdesk/internal/version"
)

// NewRootCmd builds the lawdesk command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lawdesk",
		Short: "Legal assistance catalog and document service",
		Long: `LawDesk serves a catalog of laws, schemes and cases partitioned by
jurisdiction, keeps per-session bookmarks and generated documents, and
drives the browse and document-wizard screens of the mobile app.

Configuration is read from LAWDESK_* environment variables.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(searchCmd())

	return rootCmd
}
