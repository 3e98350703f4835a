// Package merge implements the merge command.
package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/internal/appcontext"
	"github.com/agentstation/factmap/internal/cmd/cmdutil"
	"github.com/agentstation/factmap/internal/cmd/output"
	"github.com/agentstation/factmap/internal/cmd/table"
	"github.com/agentstation/factmap/pkg/reconcile"
)

// Result is the machine-readable merge output for one entity.
type Result struct {
	EntityID string                  `json:"entityId" yaml:"entityId"`
	Merged   *reconcile.MergedRecord `json:"merged" yaml:"merged"`
}

// NewCommand creates the merge command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "merge FILE...",
		GroupID: "core",
		Short:   "Build one canonical record per entity by weighted majority",
		Long: `Merge picks, for every field, the value reported by the sources with
the highest combined reliability weight and shows which sources won.`,
		Example: `  factmap merge events.yaml
  factmap merge -o yaml events.yaml`,
		Args: cobra.MinimumNArgs(1),
	}
	flags := cmdutil.AddInputFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		reports, eng, err := cmdutil.Run(cmd, app, flags, args)
		if err != nil {
			return err
		}

		tables := make(output.Tables, 0, len(reports))
		results := make([]Result, 0, len(reports))
		for _, r := range reports {
			tables = append(tables, table.Merged(r, eng.Spec()))
			results = append(results, Result{EntityID: r.EntityID, Merged: r.Merged})
		}
		return cmdutil.Print(cmd, app, tables, results)
	}
	return cmd
}
