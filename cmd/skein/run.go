package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Semihazah/skein/internal/cli"
)

// runCmd plays one script interactively on the terminal.
var runCmd = &cobra.Command{
	Use:   "run <locator>",
	Short: "Play a dialogue script interactively",
	Long: `Enqueues the named script and ticks the runtime until it completes.
Lines print as they are delivered; choice lists prompt for a numbered
selection on stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		configPath, _ := cmd.Flags().GetString("config")
		startNode, _ := cmd.Flags().GetString("node")

		cfg, err := cli.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = cli.RunSession(ctx, cli.RunOptions{
			Dir:       dir,
			Locator:   args[0],
			StartNode: startNode,
			Config:    cfg,
		})
		if err != nil && ctx.Err() == nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("node", "", "Node to start at (defaults to the program's entry point)")
}
