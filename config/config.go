package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Futurewire FuturewireConfig `yaml:"futurewire"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Stream     StreamConfig     `yaml:"stream"`
	Batch      BatchConfig      `yaml:"batch"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type FuturewireConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type MetricsConfig struct {
	Decode     bool             `yaml:"decode"`
	CloudWatch CloudWatchConfig `yaml:"cloudwatch"`
}

type CloudWatchConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Region          string        `yaml:"region"`
	Namespace       string        `yaml:"namespace"`
	PublishInterval time.Duration `yaml:"publish_interval"`
}

type StreamConfig struct {
	URL                string        `yaml:"url"`
	LocalIP            string        `yaml:"local_ip"`
	HandshakeTimeout   time.Duration `yaml:"handshake_timeout"`
	ReadBufferBytes    int           `yaml:"read_buffer_bytes"`
	FailureLogInterval time.Duration `yaml:"failure_log_interval"`
	FailureLogBurst    int           `yaml:"failure_log_burst"`
	ReportInterval     time.Duration `yaml:"report_interval"`
}

type BatchConfig struct {
	// MaxFailures caps the failures kept per batch; 0 keeps all.
	MaxFailures int `yaml:"max_failures"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Enabled         bool   `yaml:"enabled"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	PathStyle       bool   `yaml:"path_style"`
	Prefix          string `yaml:"prefix"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type LoggingConfig struct {
	Level  string                 `yaml:"level"`
	Format string                 `yaml:"format"`
	Output string                 `yaml:"output"`
	MaxAge int                    `yaml:"max_age"`
	Fields map[string]interface{} `yaml:"fields"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Futurewire: FuturewireConfig{Name: "futurewire", Version: "dev"},
		Metrics: MetricsConfig{
			Decode: true,
			CloudWatch: CloudWatchConfig{
				Namespace:       "Futurewire",
				PublishInterval: time.Minute,
			},
		},
		Stream: StreamConfig{
			URL:                "wss://fstream.binance.com/ws",
			HandshakeTimeout:   10 * time.Second,
			FailureLogInterval: time.Second,
			FailureLogBurst:    5,
			ReportInterval:     time.Minute,
		},
		Storage: StorageConfig{S3: S3Config{Prefix: "futurewire"}},
		Logging: LoggingConfig{Level: "info", Format: "json", Output: "stderr"},
	}
}

func LoadConfig(path string) (*Config, error) {
	path = resolveEnvSpecificPath(path, defaultConfigPath, envConfigPaths)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("FUTUREWIRE_STREAM_URL"); v != "" {
		config.Stream.URL = strings.TrimSpace(v)
	}
	if v := os.Getenv("AWS_REGION"); v != "" && config.Metrics.CloudWatch.Enabled {
		config.Metrics.CloudWatch.Region = strings.TrimSpace(v)
	}

	// Override S3 settings from environment variables if available
	if config.Storage.S3.Enabled {
		if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
			config.Storage.S3.AccessKeyID = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
			config.Storage.S3.SecretAccessKey = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_REGION"); v != "" {
			config.Storage.S3.Region = strings.TrimSpace(v)
		}
		if v := os.Getenv("S3_BUCKET"); v != "" {
			config.Storage.S3.Bucket = strings.TrimSpace(v)
		}
	}
	config.Storage.S3.Bucket = strings.TrimSpace(config.Storage.S3.Bucket)
}

func validateConfig(cfg *Config) error {
	if cfg.Futurewire.Name == "" {
		return fmt.Errorf("futurewire.name is required")
	}

	if cfg.Futurewire.Version == "" {
		return fmt.Errorf("futurewire.version is required")
	}

	if cfg.Stream.FailureLogInterval <= 0 {
		return fmt.Errorf("stream.failure_log_interval must be greater than 0")
	}
	if cfg.Stream.FailureLogBurst <= 0 {
		return fmt.Errorf("stream.failure_log_burst must be greater than 0")
	}
	if cfg.Stream.LocalIP != "" && !isValidIP(cfg.Stream.LocalIP) {
		return fmt.Errorf("stream.local_ip '%s' is invalid", cfg.Stream.LocalIP)
	}

	if cfg.Batch.MaxFailures < 0 {
		return fmt.Errorf("batch.max_failures must not be negative")
	}

	if cfg.Metrics.CloudWatch.Enabled {
		if cfg.Metrics.CloudWatch.Region == "" {
			return fmt.Errorf("metrics.cloudwatch.region is required when CloudWatch is enabled")
		}
		if cfg.Metrics.CloudWatch.Namespace == "" {
			return fmt.Errorf("metrics.cloudwatch.namespace is required when CloudWatch is enabled")
		}
	}

	if cfg.Storage.S3.Enabled {
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required when S3 is enabled")
		}
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("storage.s3.region is required when S3 is enabled")
		}
		if cfg.Storage.S3.AccessKeyID == "" || cfg.Storage.S3.SecretAccessKey == "" {
			return fmt.Errorf("storage.s3.access_key_id and storage.s3.secret_access_key are required when S3 is enabled")
		}
		if !isValidS3Bucket(cfg.Storage.S3.Bucket) {
			return fmt.Errorf("storage.s3.bucket '%s' is invalid", cfg.Storage.S3.Bucket)
		}
	}

	return nil
}

var s3BucketRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

func isValidS3Bucket(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	if strings.Contains(name, "..") || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return false
	}
	return s3BucketRegexp.MatchString(name)
}
