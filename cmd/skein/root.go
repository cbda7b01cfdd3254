package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skein",
	Short: "Skein is a tick-driven dialogue script runtime",
	Long: `Skein plays compiled dialogue scripts: it queues requests, binds one
session at a time and advances it one step per tick, resolving lines and
choices from a string table.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing compiled scripts and string tables")
	rootCmd.PersistentFlags().String("config", "skein.yaml", "Path to the configuration file")
}
