package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     string `yaml:"port"`
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level"`

	StagingDir     string `yaml:"staging_dir"`
	MaxConcurrency int    `yaml:"max_concurrency"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	RenderMarkdown bool   `yaml:"render_markdown"`
	CatpptPath     string `yaml:"catppt_path"`

	DatabaseURL  string `yaml:"database_url"`
	SslCertPath  string `yaml:"ssl_cert_path"`
	AwsAccessKey string `yaml:"aws_access_key"`
	AwsSecretKey string `yaml:"aws_secret_key"`
	AwsRegion    string `yaml:"aws_region"`
	BucketName   string `yaml:"bucket_name"`

	JWTSecret     string   `yaml:"jwt_secret"`
	CORSOrigins   []string `yaml:"cors_origins"`
	IngestWorkers int      `yaml:"ingest_workers"`
}

func defaults() *Config {
	return &Config{
		Port:           "8080",
		LogLevel:       "info",
		StagingDir:     "temp",
		MaxConcurrency: 4,
		MaxUploadBytes: 32 << 20,
		AwsRegion:      "us-east-2",
		BucketName:     "docreader-docs",
		CORSOrigins:    []string{"*"},
		IngestWorkers:  2,
	}
}

// LoadConfig loads .env, then the YAML file named by DOCREADER_CONFIG if
// any, then environment variables. Later sources win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("DOCREADER_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if cfg.MaxConcurrency < 0 {
		return nil, fmt.Errorf("MAX_CONCURRENCY must be >= 0, got %d", cfg.MaxConcurrency)
	}
	if cfg.IngestWorkers < 1 {
		cfg.IngestWorkers = 1
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Debug = getEnvBool("DEBUG", c.Debug)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.StagingDir = getEnv("STAGING_DIR", c.StagingDir)
	c.MaxConcurrency = getEnvInt("MAX_CONCURRENCY", c.MaxConcurrency)
	c.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(c.MaxUploadBytes)))
	c.RenderMarkdown = getEnvBool("RENDER_MARKDOWN", c.RenderMarkdown)
	c.CatpptPath = getEnv("CATPPT_PATH", c.CatpptPath)

	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.SslCertPath = getEnv("SSL_CERT_PATH", c.SslCertPath)
	c.AwsAccessKey = getEnv("AWS_ACCESS_KEY", c.AwsAccessKey)
	c.AwsSecretKey = getEnv("AWS_SECRET_KEY", c.AwsSecretKey)
	c.AwsRegion = getEnv("AWS_REGION", c.AwsRegion)
	c.BucketName = getEnv("BUCKET_NAME", c.BucketName)

	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	if v := getEnv("CORS_ORIGINS", ""); v != "" {
		c.CORSOrigins = splitList(v)
	}
	c.IngestWorkers = getEnvInt("INGEST_WORKERS", c.IngestWorkers)
}

// StorageEnabled reports whether uploads can be persisted.
func (c *Config) StorageEnabled() bool {
	return c.DatabaseURL != "" && c.BucketName != "" && c.AwsAccessKey != "" && c.AwsSecretKey != ""
}

// SlogLevel maps LogLevel to a slog.Level; Debug forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Helper to read environment variables with a default fallback. Empty
// values count as unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config value is not an int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config value is not a bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
