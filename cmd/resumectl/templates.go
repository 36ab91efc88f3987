package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openresume/engine/internal/registry"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the template catalog with theme colors",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range registry.Names() {
			theme, _ := registry.ThemeOf(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s  bg=%s text=%s primary=%s\n",
				name, theme.Background, theme.Text, theme.Primary)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
