package commands

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pgscout/pgscout/internal/cli/ui"
	"github.com/pgscout/pgscout/internal/provider"
	"github.com/pgscout/pgscout/internal/report"
)

var (
	sectionsTargetFlag  string
	sectionsNoColorFlag bool
)

// NewSectionsCommand creates the sections command
func NewSectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the report sections in rendering order",
		Long: `List every report section in the fixed order it is rendered.

Section order is part of the report contract: for the same target kind it is
identical on every run. Use --target to see the SQLite section list instead
of the PostgreSQL one.`,
		Example: `  # PostgreSQL section order (default)
  pgscout sections

  # SQLite section order
  pgscout sections --target sqlite`,
		RunE: runSections,
	}

	cmd.Flags().StringVar(&sectionsTargetFlag, "target", "postgres", "Target kind: postgres or sqlite")
	cmd.Flags().BoolVar(&sectionsNoColorFlag, "no-color", false, "Disable colored output")

	return cmd
}

func runSections(cmd *cobra.Command, args []string) error {
	sections, err := provider.SectionCatalog(sectionsTargetFlag)
	if err != nil {
		return err
	}

	table := ui.NewTable(os.Stdout, []string{"#", "ID", "Title", "Renderer"}, &ui.TableOptions{
		NoColor: sectionsNoColorFlag,
	})
	for i, s := range sections {
		table.AddRow(strconv.Itoa(i+1), s.ID, s.Title, rendererName(s.Kind))
	}
	table.Render()
	return nil
}

func rendererName(kind report.SectionKind) string {
	if kind == report.KindDefinitions {
		return "definitions"
	}
	return "csv"
}
