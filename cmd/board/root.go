package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	configPath string
	endpoint   string
	verbose    bool
	assumeYes  bool
	version    = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "board",
	Short: "Sign and post messages to the DogeChoco message board",
	Long: `Connect a wallet, sign a message and post it to the message board.

The admin wallet can also download every posted message as a JSON file.

Quick Start:
  board whoami                 # Show the connected wallet and its mode
  board send "hello"           # Sign and post a message
  board list                   # Show the board (admin)
  board export                 # Download all messages (admin)
  board ui                     # Interactive terminal page`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd.ErrOrStderr(), verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default $"+ConfigEnv+" or ~/.config/messageboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Backend base URL, overrides the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Sign without asking for confirmation")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
