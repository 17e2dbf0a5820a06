package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/remindd/cmd/remindd/commands"
)

func main() {
	var configPath string
	rootCmd := &cobra.Command{
		Use:           "remindd",
		Short:         "Daily task reminders in the terminal",
		Long:          "remindd keeps a list of daily tasks and raises an alarm at each task's time of day.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunTUI(cmd.Context(), configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default: user config dir)")

	rootCmd.AddCommand(commands.NewTUICmd(&configPath))
	rootCmd.AddCommand(commands.NewAddCmd(&configPath))
	rootCmd.AddCommand(commands.NewListCmd(&configPath))
	rootCmd.AddCommand(commands.NewEditCmd(&configPath))
	rootCmd.AddCommand(commands.NewDoneCmd(&configPath))
	rootCmd.AddCommand(commands.NewFavCmd(&configPath))
	rootCmd.AddCommand(commands.NewRemoveCmd(&configPath))
	rootCmd.AddCommand(commands.NewWatchCmd(&configPath))
	rootCmd.AddCommand(commands.NewExportCmd(&configPath))
	rootCmd.AddCommand(commands.NewImportCmd(&configPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
