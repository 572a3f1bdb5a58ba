package options

import "github.com/spf13/cobra"

// OutputOptions captures display flags for read commands.
type OutputOptions struct {
	ShowRate bool
	Day      string
}

// AddOutputArgs wires display flags on the provided command.
func AddOutputArgs(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().BoolVar(&o.ShowRate, "rates", false,
		"Include hourly rates in the roster.")
}

// AddDayFilterArg registers the day filter.
func AddDayFilterArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().StringVarP(&o.Day, "day", "d", "",
		"Only show one day (monday..sunday).")
}
