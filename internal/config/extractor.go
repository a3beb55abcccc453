package config

import "time"

type Extractor struct {
	// DictionaryPath — YAML со словарём вместо встроенного.
	DictionaryPath string `env:"DICTIONARY_PATH"`

	// FallbackURL пустой — внешний классификатор не используется.
	FallbackURL     string        `env:"FALLBACK_URL"`
	FallbackToken   string        `env:"FALLBACK_TOKEN" json:"-"`
	FallbackTimeout time.Duration `env:"FALLBACK_TIMEOUT" envDefault:"2s"`
	FallbackRPS     float64       `env:"FALLBACK_RPS" envDefault:"20"`

	CacheTTL            time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	BatchParallelism    int           `env:"BATCH_PARALLELISM" envDefault:"8"`
	LowQualityThreshold float64       `env:"LOW_QUALITY_THRESHOLD" envDefault:"0.4"`
	ResultTTL           time.Duration `env:"RESULT_TTL" envDefault:"24h"`
	WorkerConcurrency   int           `env:"WORKER_CONCURRENCY" envDefault:"10"`
}
