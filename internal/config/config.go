package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable that overrides the file
const EnvPrefix = "DATING_"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVER_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`
	AWS      AWSConfig      `yaml:"aws" envPrefix:"AWS_"`
	JWT      JWTConfig      `yaml:"jwt" envPrefix:"JWT_"`
	APNs     APNsConfig     `yaml:"apns" envPrefix:"APNS_"`
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port" env:"PORT"`
	Host string `yaml:"host" env:"HOST"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	// Driver is "postgres" (default) or "sqlite"
	Driver             string        `yaml:"driver" env:"DRIVER"`
	Host               string        `yaml:"host" env:"HOST"`
	Port               int           `yaml:"port" env:"PORT"`
	User               string        `yaml:"user" env:"USER"`
	Password           string        `yaml:"password" env:"PASSWORD"`
	DBName             string        `yaml:"dbname" env:"NAME"`
	SSLMode            string        `yaml:"sslmode" env:"SSLMODE"`
	Path               string        `yaml:"path" env:"PATH"` // sqlite file
	AutoMigrate        bool          `yaml:"auto_migrate" env:"AUTO_MIGRATE"`
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" env:"SLOW_QUERY_THRESHOLD"`
}

// AWSConfig holds the object storage configuration for photos
type AWSConfig struct {
	Region    string `yaml:"region" env:"REGION"`
	S3Bucket  string `yaml:"s3_bucket" env:"S3_BUCKET"`
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"` // S3-compatible providers
	// PublicBaseURL overrides the URL prefix under which uploaded photos are served
	PublicBaseURL string `yaml:"public_base_url" env:"PUBLIC_BASE_URL"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret   string        `yaml:"secret" env:"SECRET"`
	Lifetime time.Duration `yaml:"lifetime" env:"LIFETIME"`
}

// APNsConfig holds push notification configuration. Push is disabled when
// no certificate is configured.
type APNsConfig struct {
	CertificatePath string `yaml:"certificate_path" env:"CERTIFICATE_PATH"`
	Password        string `yaml:"password" env:"PASSWORD"`
	Topic           string `yaml:"topic" env:"TOPIC"`
	Production      bool   `yaml:"production" env:"PRODUCTION"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// Default returns the configuration used for values absent from the file
// and the environment.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 5000, Host: "0.0.0.0"},
		Database: DatabaseConfig{
			Driver:             "postgres",
			Port:               5432,
			SSLMode:            "disable",
			Path:               "dating.db",
			SlowQueryThreshold: 200 * time.Millisecond,
		},
		AWS: AWSConfig{Region: "us-east-1"},
		JWT: JWTConfig{Lifetime: 24 * time.Hour},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from a YAML file, then applies a .env file in the
// working directory and DATING_* environment variables on top. A missing
// YAML file is not an error; defaults and the environment still apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Variables already set in the environment win over the .env file
	_ = godotenv.Load()

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
