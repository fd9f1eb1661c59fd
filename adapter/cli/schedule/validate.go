package schedule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ardenhale/timeloom/internal/scheduling/application"
	"github.com/spf13/cobra"
)

var validateInputPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a goal set without scheduling it",
	Long: `Run the goal set through preprocessing only, reporting the first
invariant violation (unknown child, malformed budget, unparseable repeat)
without placing any activities.

Examples:
  timeloom schedule validate --input goals.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateInputPath == "" {
			return fmt.Errorf("--input is required")
		}

		raw, err := os.ReadFile(validateInputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		var input application.Input
		if err := json.Unmarshal(raw, &input); err != nil {
			return fmt.Errorf("parse input: %w", err)
		}

		goals, err := application.Preprocess(input)
		if err != nil {
			fmt.Printf("invalid: %v\n", err)
			return err
		}

		fmt.Printf("valid: %d goals\n", len(goals))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateInputPath, "input", "i", "", "path to the goal set JSON file")
}
