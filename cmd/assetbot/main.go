// Assetbot is a Telegram bot for browsing and controlling energy assets.
//
// It lists devices, sites, systems and vehicles from the asset REST API,
// switches battery operation modes, shows live battery status and day-ahead
// market prices. All navigation happens through inline keyboard buttons.
//
// Usage:
//
//	assetbot run       start the Telegram bot
//	assetbot console   drive the bot from a terminal instead of Telegram
//	assetbot countries print the market price country registry
//
// Configuration is read from the environment and an optional .env file.
// See 'assetbot --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/energyops/assetbot/internal/config"
	"github.com/energyops/assetbot/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	logLevel string
	envFile  string
)

var rootCmd = &cobra.Command{
	Use:   "assetbot",
	Short: "Energy asset Telegram bot",
	Long: `A Telegram bot for browsing and controlling energy assets.

Devices, sites, systems and vehicles are read from the asset REST API.
Battery devices can be switched between operation modes from the chat,
and day-ahead market prices are available per country.

Configuration is read from environment variables. A .env file in the
working directory is loaded first when present.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFile(envFile)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides ASSETBOT_LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored when missing)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("assetbot %s\n", version.Full())
	},
}
