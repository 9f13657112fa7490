package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/sources/seed"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Query the catalog from the terminal",
		Long: `Run the same search and filters as the browse screens against one
jurisdiction partition and print the matches.

Example:
  lawdesk search rti
  lawdesk search --kind cases --category consumer
  lawdesk search rent --jurisdiction MH --type law`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogFile, _ := cmd.Flags().GetString("catalog")
			jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
			kind, _ := cmd.Flags().GetString("kind")
			category, _ := cmd.Flags().GetString("category")
			typeID, _ := cmd.Flags().GetString("type")

			store, err := loadCatalog(seed.NewLoader(catalogFile))
			if err != nil {
				return err
			}

			f := domain.DefaultFilter()
			if len(args) > 0 {
				f.Query = args[0]
			}
			if j := domain.ParseJurisdiction(jurisdiction); !j.IsCentral() {
				f.Tab = domain.TabState
				f.StateCode = j
			}
			if category != "" && category != domain.CategoryAll {
				if !domain.IsKnownCategory(category) {
					return fmt.Errorf("unknown category %q", category)
				}
				f.Category = category
			}

			k := domain.Kind(strings.TrimSuffix(kind, "s"))
			if typeID != "" && typeID != domain.TypeAll {
				if _, ok := domain.LookupTypeTag(k, typeID); !ok {
					return fmt.Errorf("unknown %s type %q", k, typeID)
				}
				f.Type = typeID
			}

			out := cmd.OutOrStdout()
			switch k {
			case domain.KindLaw:
				return printResults(out, store.Partition(f.Jurisdiction()), f)
			case domain.KindCase:
				return printResults(out, store.CasePartition(f.Jurisdiction()), f)
			default:
				return fmt.Errorf("unknown kind %q (want laws or cases)", kind)
			}
		},
	}

	cmd.Flags().String("catalog", "", "Catalog YAML file (default: embedded catalog)")
	cmd.Flags().StringP("jurisdiction", "j", "central", "central or a state code (ex: MH)")
	cmd.Flags().StringP("kind", "k", "laws", "laws or cases")
	cmd.Flags().StringP("category", "c", domain.CategoryAll, "Category filter")
	cmd.Flags().StringP("type", "t", domain.TypeAll, "Type or status filter")
	return cmd
}

func printResults[E domain.Entry](out io.Writer, partition []E, f domain.FilterState) error {
	visible := domain.Apply(partition, f)
	if len(visible) == 0 {
		fmt.Fprintln(out, "No results. Try clearing the filters.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tCATEGORY\tTITLE")
	for _, e := range visible {
		card := e.Card()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", card.ID, domain.Tag(e).Label, card.Category, card.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	counts := domain.CountsByCategory(domain.Search(partition, f.Query))
	parts := make([]string, 0, len(domain.Categories))
	for _, c := range domain.VisibleCategories(counts) {
		parts = append(parts, fmt.Sprintf("%s=%d", c.ID, counts[c.ID]))
	}
	fmt.Fprintf(out, "\n%d result(s); by category: %s\n", len(visible), strings.Join(parts, " "))
	return nil
}
