package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Corpus configuration
	Corpus CorpusConfig `mapstructure:"corpus"`

	// Query configuration
	Query QueryConfig `mapstructure:"query"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds graph database configuration
type DatabaseConfig struct {
	URI       string `mapstructure:"uri"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	CredsFile string `mapstructure:"creds_file"`
}

// CorpusConfig holds knowledge base layout configuration
type CorpusConfig struct {
	// Dir is the knowledge base root holding index/ and ontology/
	Dir string `mapstructure:"dir"`
}

// QueryConfig holds query display configuration
type QueryConfig struct {
	Limit int `mapstructure:"limit"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Database defaults
	viper.SetDefault("database.uri", "")
	viper.SetDefault("database.username", "")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.database", "neo4j")
	viper.SetDefault("database.creds_file", "neocreds.txt")

	// Corpus defaults
	viper.SetDefault("corpus.dir", ".")

	// Query defaults
	viper.SetDefault("query.limit", 100)
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Database.URI = uri
	}
	if user := os.Getenv("NEO4J_USERNAME"); user != "" {
		config.Database.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Database.Password = pass
	}
	if db := os.Getenv("NEO4J_DATABASE"); db != "" {
		config.Database.Database = db
	}
	if creds := os.Getenv("NEO4J_CREDS_FILE"); creds != "" {
		config.Database.CredsFile = creds
	}

	if dir := os.Getenv("KB_DIR"); dir != "" {
		config.Corpus.Dir = dir
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Log.Format = format
	}
}
