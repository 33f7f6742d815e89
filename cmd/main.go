package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fiber-inspector/config"
	"fiber-inspector/internal/container"
)

// globalOptions флаги, общие для всех команд
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	resultsDir string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "fiber-inspector",
		Short: "Inspect optical fiber endfaces",
		Long: `Inspect microscope images of optical fiber endfaces.

The analyzer locates the cladding, derives the core-clad ratio and concentricity,
detects and classifies surface defects, and renders an annotated image with a
pass/fail verdict and a 0..1 quality score.

Results can be stored as JSON records, exported to CSV or a text/HTML report,
published to MQTT and served to operators through a Telegram bot.`,
		Example: `  # Analyze a directory with 8 workers and save annotated images
  fiber-inspector analyze ./scans --workers 8 --out-dir ./annotated

  # Export stored results
  fiber-inspector export --results-dir ./results -o results.csv

  # Run the Telegram bot
  TELEGRAM_TOKEN=... fiber-inspector bot`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config (default: $FIBER_CONFIG)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	root.PersistentFlags().StringVar(&opts.resultsDir, "results-dir", "", "Directory for JSON result records (overrides storage.results_dir)")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newBotCmd(opts),
		newExportCmd(opts),
		newReportCmd(opts),
	)
	return root
}

// setup загружает конфигурацию, настраивает логгер и собирает контейнер
func (o *globalOptions) setup(cmd *cobra.Command, adjust func(*config.Config)) (*container.Container, *logrus.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.resultsDir != "" {
		cfg.Storage.ResultsDir = o.resultsDir
	}
	if adjust != nil {
		adjust(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	logger, err := initLogger(level, o.logFormat)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(cmd.ErrOrStderr())

	c, err := container.New(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return c, logger, nil
}

// initLogger создаёт логгер с заданным уровнем и форматом
func initLogger(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)

	switch format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
