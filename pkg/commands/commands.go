// Package commands wires the rota CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rota/pkg/app"
	"github.com/rotaplan/rota/pkg/config"
)

// New returns the root command with every subcommand attached.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:   "rota",
		Short: "rota plans restaurant staff schedules.",
		Long: `rota is the terminal client for the staff scheduling service:
view and edit the weekly grid, move shifts around, detect conflicts, and
keep the server in sync.`,
		SilenceUsage: true,
	}
	AddCommands(root)
	return root
}

// AddCommands attaches all subcommands to the top level command.
func AddCommands(topLevel *cobra.Command) {
	addGet(topLevel)
	addAdd(topLevel)
	addMove(topLevel)
	addDoctor(topLevel)
	addSync(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addColors(topLevel)
	addStatus(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
}

// loadApp builds the wired application from configuration.
func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("commands: %w", err)
	}
	return a, nil
}
