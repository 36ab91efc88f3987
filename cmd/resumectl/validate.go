package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openresume/engine/internal/resume"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a resume document against the canonical schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		if err := resume.ValidateJSON(data); err != nil {
			return err
		}

		doc, err := resume.FromJSON(data)
		if err != nil {
			return err
		}
		if err := resume.Validate(doc); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
