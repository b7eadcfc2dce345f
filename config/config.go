// Package config loads the registry configuration from REGISTRY_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "REGISTRY"

// StoreKind selects the backend used by the roster CLI for students.
type StoreKind string

const (
	StoreFile     StoreKind = "file"
	StorePostgres StoreKind = "postgres"
	StoreRedis    StoreKind = "redis"
)

// Config holds all application configuration.
type Config struct {
	Data          DataConfig
	Store         StoreKind
	Database      DatabaseConfig
	Redis         RedisConfig
	Observability ObservabilityConfig
}

// DataConfig locates the flat files and sets the school name.
type DataConfig struct {
	Dir          string
	PersonsFile  string
	StudentsFile string
	SchoolName   string
}

// PersonsPath returns the persons.txt path inside Dir.
func (d DataConfig) PersonsPath() string {
	return filepath.Join(d.Dir, d.PersonsFile)
}

// StudentsPath returns the students.txt path inside Dir.
func (d DataConfig) StudentsPath() string {
	return filepath.Join(d.Dir, d.StudentsFile)
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	URL string
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, pretty
}

// Load reads .env from the working directory when present, then the
// environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit .env path. A missing file is ignored;
// variables already set in the environment win over the file.
func LoadFile(dotEnvPath string) (*Config, error) {
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: stat %s: %w", dotEnvPath, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := &Config{
		Data: DataConfig{
			Dir:          v.GetString("data_dir"),
			PersonsFile:  v.GetString("persons_file"),
			StudentsFile: v.GetString("students_file"),
			SchoolName:   v.GetString("school_name"),
		},
		Store:    StoreKind(strings.ToLower(v.GetString("store"))),
		Database: DatabaseConfig{URL: v.GetString("database_url")},
		Redis:    RedisConfig{URL: v.GetString("redis_url")},
		Observability: ObservabilityConfig{
			LogLevel:  v.GetString("log_level"),
			LogFormat: v.GetString("log_format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", ".")
	v.SetDefault("persons_file", "persons.txt")
	v.SetDefault("students_file", "students.txt")
	v.SetDefault("school_name", "pjatk")
	v.SetDefault("store", string(StoreFile))
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "pretty")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Data.SchoolName) == "" {
		errs = append(errs, EnvPrefix+"_SCHOOL_NAME cannot be empty")
	}
	if c.Data.PersonsFile == "" {
		errs = append(errs, EnvPrefix+"_PERSONS_FILE cannot be empty")
	}
	if c.Data.StudentsFile == "" {
		errs = append(errs, EnvPrefix+"_STUDENTS_FILE cannot be empty")
	}

	switch c.Store {
	case StoreFile:
	case StorePostgres:
		if c.Database.URL == "" {
			errs = append(errs, EnvPrefix+"_DATABASE_URL is required for the postgres store")
		}
	case StoreRedis:
		if c.Redis.URL == "" {
			errs = append(errs, EnvPrefix+"_REDIS_URL is required for the redis store")
		}
	default:
		errs = append(errs, fmt.Sprintf("%s_STORE must be file, postgres or redis, got %q", EnvPrefix, c.Store))
	}

	switch c.Observability.LogFormat {
	case "json", "pretty":
	default:
		errs = append(errs, EnvPrefix+"_LOG_FORMAT must be json or pretty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

