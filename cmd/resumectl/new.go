package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openresume/engine/internal/resume"
)

var newOutput string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Write a schema-valid empty resume document",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := resume.ToJSON(resume.NewDocument())
		if err != nil {
			return err
		}

		if newOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}
		return os.WriteFile(newOutput, []byte(text+"\n"), 0o644)
	},
}

func init() {
	newCmd.Flags().StringVarP(&newOutput, "output", "o", "", "write the document to a file instead of stdout")
	rootCmd.AddCommand(newCmd)
}
