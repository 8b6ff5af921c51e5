package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	PGDSN           string
	Input           string
	ProcessorName   string
	BatchSize       int
	ChunkSize       int
	TableChunkSizes map[string]int
	MaxRetries      int
	RetryBackoff    time.Duration
	LogLevel        string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROCESSOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("processor-name", "trade_radar_processor")
	v.SetDefault("batch-size", 100)
	v.SetDefault("chunk-size", 100)
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	tableChunkSizes, err := parseChunkSizes(v.GetStringMapString("table-chunk-sizes"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		PGDSN:           v.GetString("pg-dsn"),
		Input:           v.GetString("in"),
		ProcessorName:   v.GetString("processor-name"),
		BatchSize:       v.GetInt("batch-size"),
		ChunkSize:       v.GetInt("chunk-size"),
		TableChunkSizes: tableChunkSizes,
		MaxRetries:      v.GetInt("max-retries"),
		RetryBackoff:    v.GetDuration("retry-backoff"),
		LogLevel:        v.GetString("log-level"),
	}

	return cfg, nil
}

func parseChunkSizes(raw map[string]string) (map[string]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]int, len(raw))
	for table, value := range raw {
		size, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid chunk size %q for table %q", value, table)
		}
		out[table] = size
	}
	return out, nil
}
