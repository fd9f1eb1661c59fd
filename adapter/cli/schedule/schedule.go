package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group.
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the goal scheduler",
	Long:  `Expand goals into activities and place them onto a calendar.`,
}

func init() {
	Cmd.AddCommand(runCmd)
	Cmd.AddCommand(validateCmd)
}
