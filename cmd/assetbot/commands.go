package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/energyops/assetbot/internal/bot"
	"github.com/energyops/assetbot/internal/config"
	"github.com/energyops/assetbot/internal/events"
	"github.com/energyops/assetbot/internal/logging"
	"github.com/energyops/assetbot/internal/remote"
	"github.com/energyops/assetbot/internal/server"
	"github.com/energyops/assetbot/internal/transport/console"
	"github.com/energyops/assetbot/internal/transport/telegram"
	"github.com/energyops/assetbot/internal/version"
)

// shutdownTimeout bounds the ops server and broker shutdown.
const shutdownTimeout = 5 * time.Second

// consoleChatID identifies the single simulated chat.
const consoleChatID int64 = 1

var consoleLogFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Telegram bot",
	Long: `Start the bot and poll Telegram for updates until interrupted.

Required environment:
  TELEGRAM_TOKEN       bot token from @BotFather
  API_BASE_URL         asset REST API base URL (NGROK_URL is accepted too)

Optional environment:
  API_TOKEN            bearer token for the REST API
  API_TIMEOUT          list and control timeout (default 10s)
  API_STATUS_TIMEOUT   battery status timeout (default 5s)
  API_RETRIES          extra attempts for failed reads (default 0)
  TELEGRAM_SEND_RATE   outbound requests per second (default 20)
  COUNTRIES_FILE       YAML country registry for market prices
  NATS_URL             publish operation mode changes to this broker
  NATS_SUBJECT         subject for operation mode changes
  HEALTH_ADDR          serve /health, /version and /stats on this address`,
	Example: `  # Start with a .env file in the working directory
  assetbot run

  # Verbose logging
  assetbot run --log-level debug`,
	RunE: runBot,
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Drive the bot from the terminal",
	Long: `Run the bot against the real REST API with a terminal chat instead of
Telegram. Type commands such as /devices and use tab and the arrow keys to
tap inline buttons. TELEGRAM_TOKEN is not needed.

Logs are written to a file because the terminal is in use.`,
	RunE: runConsole,
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "Print the market price country registry",
	Long: `Print the country registry as YAML. Without COUNTRIES_FILE this is the
built-in registry, which can be used as a starting point for a custom file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadCountries(config.Load().CountriesFile)
		if err != nil {
			return err
		}
		data, err := registry.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	consoleCmd.Flags().StringVar(&consoleLogFile, "log-file", "assetbot-console.log", "File to write logs to")
}

// loadConfig reads the environment and applies the --log-level flag.
func loadConfig(requireTransport bool) (*config.Config, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(requireTransport); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newBot wires the REST client, country registry and event publisher into a
// bot that renders through m. The returned cleanup closes the publisher.
func newBot(cfg *config.Config, m bot.Messenger) (*bot.Bot, func(), error) {
	client := remote.NewClient(cfg.APIBaseURL, cfg.APIToken)
	client.SetTimeouts(cfg.APITimeout, cfg.StatusTimeout)
	client.SetRetry(cfg.APIRetries, remote.DefaultRetryDelay)
	client.UserAgent = version.UserAgent()

	countries, err := config.LoadCountries(cfg.CountriesFile)
	if err != nil {
		return nil, nil, err
	}

	b := bot.New(m, client, countries)
	cleanup := func() {}

	if cfg.NatsURL != "" {
		pub, err := events.NewNATSPublisher(events.Options{
			URL:     cfg.NatsURL,
			Subject: cfg.NatsSubject,
			Name:    "assetbot",
			Timeout: shutdownTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		b.SetPublisher(pub)
		logging.Info("Publishing operation mode changes",
			zap.String("url", cfg.NatsURL),
			zap.String("subject", pub.Subject()),
		)
		cleanup = func() {
			if err := pub.Close(); err != nil {
				logging.Warn("Failed to close event publisher", zap.Error(err))
			}
		}
	}

	logging.Info("Bot configured",
		zap.String("api", cfg.APIBaseURL),
		zap.Duration("api_timeout", cfg.APITimeout),
		zap.Duration("status_timeout", cfg.StatusTimeout),
		zap.Int("api_retries", cfg.APIRetries),
		zap.Int("countries", countries.Len()),
		zap.Bool("events", cfg.NatsURL != ""),
	)
	return b, cleanup, nil
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logging.Sync()

	logging.Info("Starting assetbot", zap.String("version", version.Full()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, err := telegram.New(cfg.TransportToken, cfg.SendRate)
	if err != nil {
		return err
	}

	b, cleanup, err := newBot(cfg, tr)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.RegisterCommands(bot.Commands); err != nil {
		logging.Warn("Failed to register bot commands", zap.Error(err))
	}

	if cfg.HealthAddr != "" {
		srv := server.New(&server.Config{Addr: cfg.HealthAddr}, b)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logging.Warn("Ops server shutdown failed", zap.Error(err))
			}
		}()
	}

	err = tr.Run(ctx, b)
	stats := b.Stats()
	logging.Info("Bot stopped",
		zap.Uint64("handled", stats.Handled),
		zap.Uint64("failures", stats.Failures),
	)
	return err
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := logging.InitializeToFile(cfg.LogLevel, consoleLogFile); err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	messenger := console.NewMessenger()
	b, cleanup, err := newBot(cfg, messenger)
	if err != nil {
		return err
	}
	defer cleanup()

	return console.Run(ctx, messenger, b, consoleChatID)
}
