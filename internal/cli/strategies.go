// strategies.go implements the "mirrorplan strategies" command.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mirrorplan/mirrorplan/internal/render"
	"github.com/mirrorplan/mirrorplan/internal/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies [ID]",
	Short: "List the migration strategies",
	Long: `List every strategy in the catalog, or describe one by id.
Unknown ids are shown with a placeholder description.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			id := strategy.ID(strings.ToUpper(args[0]))
			return render.Strategy(cmd.OutOrStdout(), strategy.Describe(id))
		}
		return listStrategies(cmd.OutOrStdout())
	},
}

func listStrategies(out io.Writer) error {
	for _, d := range strategy.All() {
		if _, err := fmt.Fprintf(out, "  %-18s %s\n", d.ID, d.Title()); err != nil {
			return err
		}
	}
	return nil
}
