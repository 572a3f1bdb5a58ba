package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rota/pkg/commands/options"
	"github.com/rotaplan/rota/pkg/runner/doctor"
)

func addDoctor(topLevel *cobra.Command) {
	do := &options.DoctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Find and repair schedule inconsistencies.",
		Long: `Doctor checks referential integrity: shifts whose employee is
missing, inactive, or a leftover deletion placeholder. Without --apply it
only reports.`,
		Example: `
rota doctor
rota doctor --apply
rota doctor --fuzzy
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := doctor.Doctor{
				Apply: do.Apply,
				Fuzzy: do.Fuzzy,
				Clean: do.Clean,
				App:   a,
			}
			return s.Do(context.Background())
		},
	}

	options.AddDoctorArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
