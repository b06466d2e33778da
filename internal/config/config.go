package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/SAP-F-2025/assessment-docgen/internal/parser"
	"github.com/SAP-F-2025/assessment-docgen/internal/tmpl"
)

const DefaultMaxUploadBytes int64 = 50 << 20

type Config struct {
	Environment string
	LogLevel    string

	CategoryPrefix      string
	UncategorizedCourse string
	TrueLabel           string
	FalseLabel          string

	TaskLabel     string
	CorrectMarker string

	MaxUploadBytes int64

	Events EventConfig
}

// LoadConfig reads the optional .env file and then the process environment.
// Only the .env files given are read and each must exist; with none, ./.env
// is tried and may be missing.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	maxUpload, err := getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}
	eventsEnabled, err := getEnvBool("EVENTS_ENABLED", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CategoryPrefix:      getEnv("CATEGORY_PREFIX", parser.DefaultCategoryPrefix),
		UncategorizedCourse: getEnv("UNCATEGORIZED_COURSE", parser.DefaultUncategorized),
		TrueLabel:           getEnv("TRUE_LABEL", parser.DefaultTrueLabel),
		FalseLabel:          getEnv("FALSE_LABEL", parser.DefaultFalseLabel),
		TaskLabel:           getEnv("TASK_LABEL", tmpl.DefaultTaskLabel),
		CorrectMarker:       getEnv("CORRECT_MARKER", tmpl.DefaultCorrectMarker),
		MaxUploadBytes:      maxUpload,
		Events: EventConfig{
			Enabled:      eventsEnabled,
			Publisher:    getEnv("EVENTS_PUBLISHER", "kafka"),
			KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			ImportTopic:  getEnv("IMPORT_TOPIC", "question-bank.imported"),
		},
	}, nil
}

// ParserOptions derives the bank parser options.
func (c *Config) ParserOptions() parser.Options {
	opts := parser.DefaultOptions()
	opts.CategoryPrefix = c.CategoryPrefix
	opts.UncategorizedName = c.UncategorizedCourse
	opts.TrueLabel = c.TrueLabel
	opts.FalseLabel = c.FalseLabel
	return opts
}

// RenderOptions derives the block renderer options.
func (c *Config) RenderOptions() tmpl.RenderOptions {
	opts := tmpl.DefaultRenderOptions()
	opts.TaskLabel = c.TaskLabel
	opts.CorrectMarker = c.CorrectMarker
	return opts
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, value)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
