package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"realty_extractor/internal/application"
	"realty_extractor/internal/config"
	"realty_extractor/internal/domain/service/extraction"
)

var (
	dictionaryPath string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:           "extract",
	Short:         "Extract structured fields from real-estate listings",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dictionaryPath, "dictionary", "", "YAML dictionary to use instead of the embedded one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
}

func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func setupLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))
}

// newExtractor читает настройки из окружения, флаг словаря важнее.
func newExtractor() (*extraction.Service, config.Extractor, error) {
	cfg, err := config.LoadExtractor()
	if err != nil {
		return nil, config.Extractor{}, err
	}

	if dictionaryPath != "" {
		cfg.DictionaryPath = dictionaryPath
	}

	svc, err := application.NewExtractor(cfg, nil)
	if err != nil {
		return nil, config.Extractor{}, err
	}

	return svc, cfg, nil
}
