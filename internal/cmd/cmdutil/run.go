// Package cmdutil provides the load, reconcile and print steps shared by
// the factmap commands.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/internal/appcontext"
	"github.com/agentstation/factmap/internal/cmd/input"
	"github.com/agentstation/factmap/internal/cmd/output"
	"github.com/agentstation/factmap/pkg/entity"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/reconcile"
)

// InputFlags holds the flags every reconciling command accepts.
type InputFlags struct {
	// Previous is a reports file from an earlier classify run.
	Previous string
}

// AddInputFlags registers the input flags on cmd.
func AddInputFlags(cmd *cobra.Command) *InputFlags {
	flags := &InputFlags{}
	cmd.Flags().StringVar(&flags.Previous, "previous", "",
		"reports from an earlier 'classify -o json' run, used for transitions and change detection")
	return flags
}

// Run loads the entity files named in args and reconciles every entity.
// Reports come back in file order, then entity order within a file.
func Run(cmd *cobra.Command, app appcontext.Interface, flags *InputFlags, args []string) ([]*reconcile.Report, *reconcile.Engine, error) {
	eng, err := app.Engine()
	if err != nil {
		return nil, nil, err
	}

	var entities []*entity.Entity
	for _, path := range args {
		loaded, err := input.LoadEntities(path)
		if err != nil {
			return nil, nil, err
		}
		app.Logger().Debug().Str("file", path).Int("entities", len(loaded)).Msg("Loaded entity file")
		entities = append(entities, loaded...)
	}

	var previous map[string]*reconcile.Report
	if flags != nil && flags.Previous != "" {
		if previous, err = input.LoadReports(flags.Previous); err != nil {
			return nil, nil, err
		}
	}

	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	reports, err := eng.ReconcileAll(ctx, entities, previous)
	if err != nil {
		return nil, nil, err
	}
	return reports, eng, nil
}

// Print writes table data when the output format is a table and raw
// otherwise.
func Print(cmd *cobra.Command, app appcontext.Interface, table any, raw any) error {
	format := output.DetectFormat(app.OutputFormat())
	data := raw
	if format == output.FormatTable {
		data = table
	}
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
}
