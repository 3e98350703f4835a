// Package classify implements the classify command.
package classify

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/internal/appcontext"
	"github.com/agentstation/factmap/internal/cmd/cmdutil"
	"github.com/agentstation/factmap/internal/cmd/output"
	"github.com/agentstation/factmap/internal/cmd/table"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/reconcile"
)

// ErrDisputed is returned with --strict when any entity ends up disputed.
var ErrDisputed = errors.New("entities need review")

// NewCommand creates the classify command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		showConflicts bool
		strict        bool
	)

	cmd := &cobra.Command{
		Use:     "classify FILE...",
		GroupID: "core",
		Short:   "Classify entities as verified, partially verified, unverified or disputed",
		Long: `Classify reads entity files and assigns each entity a verification
status and a 0-100 confidence from its sources' snapshots.

JSON and YAML output contain the full reports and can be passed back with
--previous to track status transitions and content changes between runs.`,
		Example: `  factmap classify events.yaml
  factmap classify events.yaml --conflicts
  factmap classify -o json events.yaml > reports.json
  factmap classify --previous reports.json --strict events.yaml`,
		Args: cobra.MinimumNArgs(1),
	}
	flags := cmdutil.AddInputFlags(cmd)
	cmd.Flags().BoolVar(&showConflicts, "conflicts", false, "list the conflicting values of each entity")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any entity is disputed")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		reports, _, err := cmdutil.Run(cmd, app, flags, args)
		if err != nil {
			return err
		}

		tables := output.Tables{table.Verification(reports)}
		if showConflicts {
			for _, r := range reports {
				if r.Verification.ConflictCount > 0 {
					tables = append(tables, table.Conflicts(r))
				}
			}
		}
		if err := cmdutil.Print(cmd, app, tables, reports); err != nil {
			return err
		}

		if strict {
			if n := countDisputed(reports); n > 0 {
				return fmt.Errorf("%d disputed: %w", n, ErrDisputed)
			}
		}
		return nil
	}
	return cmd
}

func countDisputed(reports []*reconcile.Report) int {
	n := 0
	for _, r := range reports {
		if r.Verification.Status == reconcile.StatusDisputed {
			n++
		}
	}
	return n
}
