package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Semihazah/skein/internal/cli"
)

// validateCmd checks a compiled script against its string table.
var validateCmd = &cobra.Command{
	Use:   "validate <locator>",
	Short: "Check a script's line references and jump targets",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if err := cli.Validate(dir, args[0], os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
