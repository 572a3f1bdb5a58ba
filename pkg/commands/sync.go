package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rota/pkg/commands/options"
	"github.com/rotaplan/rota/pkg/runner/snapshot"
	"github.com/rotaplan/rota/pkg/runner/syncrun"
)

func addSync(topLevel *cobra.Command) {
	so := &options.SyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push local state to the server.",
		Example: `
rota sync
rota sync --watch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := syncrun.Sync{Watch: so.Watch, App: a}
			return s.Do(context.Background())
		},
	}

	options.AddSyncArgs(cmd, so)
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the schedule to a JSON snapshot.",
		Example: `
rota export backup.json
rota export -
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := snapshot.Export{Path: path, App: a}
			return s.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	local := false

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON snapshot and push it to the server.",
		Example: `
rota import backup.json
rota import backup.json --local
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := snapshot.Import{Path: args[0], Local: local, App: a}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Load locally without pushing to the server.")
	topLevel.AddCommand(cmd)
}
