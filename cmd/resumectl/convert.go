package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openresume/engine/internal/resume"
)

var (
	convertFormat string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert an input file into a canonical resume document",
	Long: `Convert parses an input file with the computation module and prints the
canonical document JSON.

Formats:
  json      native-schema resume JSON
  linkedin  LinkedIn data-export archive
  v3        legacy v3 resume JSON

All formats need the computation module; without it the command fails
with the not-initialized condition.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		e, loader := buildEngine(ctx, cfg, logger)
		waitSettled(ctx, loader)

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var doc resume.Document
		switch convertFormat {
		case "json":
			doc, err = e.ParseJSONResume(ctx, string(data))
		case "linkedin":
			doc, err = e.ParseLinkedIn(ctx, data)
		case "v3":
			doc, err = e.ParseReactiveV3(ctx, string(data))
		default:
			return fmt.Errorf("unknown format %q (want json, linkedin, or v3)", convertFormat)
		}
		if err != nil {
			return err
		}

		text, err := e.ResumeToJSON(doc)
		if err != nil {
			return err
		}

		if convertOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}
		return os.WriteFile(convertOutput, []byte(text+"\n"), 0o644)
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "json", "input format (json, linkedin, v3)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "write the document to a file instead of stdout")
	rootCmd.AddCommand(convertCmd)
}
