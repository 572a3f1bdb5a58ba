package options

import "github.com/spf13/cobra"

// DoctorOptions captures reconciliation flags.
type DoctorOptions struct {
	Apply bool
	Fuzzy bool
	Clean bool
}

// AddDoctorArgs wires reconciliation flags on the provided command.
func AddDoctorArgs(cmd *cobra.Command, o *DoctorOptions) {
	cmd.Flags().BoolVar(&o.Apply, "apply", false,
		"Execute repairs instead of reporting.")
	cmd.Flags().BoolVar(&o.Fuzzy, "fuzzy", false,
		"Suggest reassignments by name similarity.")
	cmd.Flags().BoolVar(&o.Clean, "clean", false,
		"Drop corrupted local records before analysis.")
}

// SyncOptions captures sync command flags.
type SyncOptions struct {
	Watch bool
}

// AddSyncArgs wires sync flags on the provided command.
func AddSyncArgs(cmd *cobra.Command, o *SyncOptions) {
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Keep running and save on the configured interval.")
}
