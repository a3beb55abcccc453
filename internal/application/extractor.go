package application

import (
	"fmt"

	"realty_extractor/internal/config"
	"realty_extractor/internal/domain/service/dictionary"
	"realty_extractor/internal/domain/service/extraction"
	"realty_extractor/internal/infrastructure/fallback"
)

// NewExtractor собирает сервис извлечения по настройкам. Общий для сервиса и CLI.
func NewExtractor(cfg config.Extractor, observer extraction.Observer) (*extraction.Service, error) {
	dict, err := loadDictionary(cfg.DictionaryPath)
	if err != nil {
		return nil, err
	}

	svc := extraction.NewService(dict).
		WithCache(cfg.CacheTTL).
		WithObserver(observer)

	if cfg.FallbackURL != "" {
		svc = svc.WithFallback(
			fallback.NewHTTPClient(cfg.FallbackURL, cfg.FallbackToken, cfg.FallbackTimeout).
				WithRateLimit(cfg.FallbackRPS, int(cfg.FallbackRPS)),
			cfg.FallbackTimeout,
		)
	}

	return svc, nil
}

func loadDictionary(path string) (*dictionary.Dictionary, error) {
	if path == "" {
		dict, err := dictionary.Default()
		if err != nil {
			return nil, fmt.Errorf("dictionary.Default: %w", err)
		}
		return dict, nil
	}

	dict, err := dictionary.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary.LoadFile: %w", err)
	}
	return dict, nil
}
