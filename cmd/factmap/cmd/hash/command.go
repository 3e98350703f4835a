// Package hash implements the hash command.
package hash

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/internal/appcontext"
	"github.com/agentstation/factmap/internal/cmd/cmdutil"
	"github.com/agentstation/factmap/internal/cmd/table"
)

// Result is the machine-readable hash output for one entity.
type Result struct {
	EntityID    string `json:"entityId" yaml:"entityId"`
	ContentHash string `json:"contentHash" yaml:"contentHash"`
	Changed     bool   `json:"changed" yaml:"changed"`
}

// NewCommand creates the hash command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hash FILE...",
		GroupID: "core",
		Short:   "Print the content hash of each entity's merged core fields",
		Long: `Hash prints a SHA-256 digest of each entity's merged core fields. With
--previous it also reports whether the content changed since that run, which
tells a re-check scheduler whether the entity needs attention.`,
		Example: `  factmap hash events.yaml
  factmap hash --previous reports.json events.yaml`,
		Args: cobra.MinimumNArgs(1),
	}
	flags := cmdutil.AddInputFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		reports, _, err := cmdutil.Run(cmd, app, flags, args)
		if err != nil {
			return err
		}

		results := make([]Result, 0, len(reports))
		for _, r := range reports {
			results = append(results, Result{EntityID: r.EntityID, ContentHash: r.ContentHash, Changed: r.Changed})
		}
		return cmdutil.Print(cmd, app, table.Hashes(reports), results)
	}
	return cmd
}
