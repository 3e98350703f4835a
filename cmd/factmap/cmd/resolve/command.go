// Package resolve implements the resolve command.
package resolve

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/internal/appcontext"
	"github.com/agentstation/factmap/internal/cmd/cmdutil"
	"github.com/agentstation/factmap/internal/cmd/output"
	"github.com/agentstation/factmap/internal/cmd/table"
	"github.com/agentstation/factmap/pkg/reconcile"
)

// Result is the machine-readable resolve output for one entity.
type Result struct {
	EntityID    string                          `json:"entityId" yaml:"entityId"`
	Resolutions map[string]reconcile.Resolution `json:"resolutions" yaml:"resolutions"`
}

// NewCommand creates the resolve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resolve FILE...",
		GroupID: "core",
		Short:   "Recommend a value for every conflicting core field",
		Long: `Resolve lists the entities whose sources disagree on a core field and,
for each such field, the recommended value, its share of the total weight
and the alternatives in descending weight.`,
		Example: `  factmap resolve events.yaml
  factmap resolve -o json events.yaml`,
		Args: cobra.MinimumNArgs(1),
	}
	flags := cmdutil.AddInputFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		reports, _, err := cmdutil.Run(cmd, app, flags, args)
		if err != nil {
			return err
		}

		var (
			tables  output.Tables
			results = []Result{}
		)
		for _, r := range reports {
			if len(r.Resolutions) == 0 {
				continue
			}
			tables = append(tables, table.Resolutions(r))
			results = append(results, Result{EntityID: r.EntityID, Resolutions: r.Resolutions})
		}
		if len(tables) == 0 {
			app.Logger().Info().Int("entities", len(reports)).Msg("No conflicts found")
		}
		return cmdutil.Print(cmd, app, tables, results)
	}
	return cmd
}
