package schedule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ardenhale/timeloom/adapter/cli"
	"github.com/ardenhale/timeloom/internal/scheduling/application"
	"github.com/ardenhale/timeloom/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var (
	runInputPath  string
	runOutputPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Schedule a set of goals",
	Long: `Read a goal set from a JSON file, place its activities onto a
calendar, and write the resulting per-day tasks and impossibilities.

Examples:
  timeloom schedule run --input goals.json
  timeloom schedule run --input goals.json --output schedule.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runInputPath == "" {
			return fmt.Errorf("--input is required")
		}

		raw, err := os.ReadFile(runInputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		var input application.Input
		if err := json.Unmarshal(raw, &input); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}

		app := cli.GetApp()
		if app == nil || app.RunScheduleHandler == nil {
			return fmt.Errorf("schedule run is not available: no handler wired")
		}

		out, err := app.RunScheduleHandler.Handle(cmd.Context(), commands.RunScheduleCommand{Input: input})
		if err != nil {
			return fmt.Errorf("run schedule: %w", err)
		}

		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}

		if runOutputPath == "" {
			fmt.Println(string(encoded))
			return nil
		}
		return os.WriteFile(runOutputPath, encoded, 0o644)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runInputPath, "input", "i", "", "path to the goal set JSON file")
	runCmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "path to write the schedule JSON to (defaults to stdout)")
}
