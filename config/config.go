package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	SourceSeed     = "seed"
	SourcePostgres = "postgres"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Reports   ReportsConfig   `yaml:"reports"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type HTTPConfig struct {
	Address            string   `yaml:"address"`
	SwaggerDir         string   `yaml:"swagger_dir"`
	RequestTimeoutSecs int      `yaml:"request_timeout_seconds"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	ExportTopic string   `yaml:"export_topic"`
	GroupID     string   `yaml:"group_id"`
}

type ReportsConfig struct {
	// Source selects the report lookup backend: "seed" or "postgres".
	Source string `yaml:"source"`
	// ExpandSeed replicates seed bookings into the larger demo data set.
	ExpandSeed          bool `yaml:"expand_seed"`
	PageCacheTTLSeconds int  `yaml:"page_cache_ttl_seconds"`
}

type SMTPConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type RateLimitConfig struct {
	// Export is a limiter rate in "<limit>-<period>" form, e.g. "5-M".
	Export string `yaml:"export"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.HTTP.RequestTimeoutSecs == 0 {
		c.HTTP.RequestTimeoutSecs = 30
	}
	if c.Reports.Source == "" {
		c.Reports.Source = SourceSeed
	}
	if c.Reports.PageCacheTTLSeconds == 0 {
		c.Reports.PageCacheTTLSeconds = 120
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "report-export-worker"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.RateLimit.Export == "" {
		c.RateLimit.Export = "5-M"
	}
}

func (c *Config) validate() error {
	switch c.Reports.Source {
	case SourceSeed, SourcePostgres:
	default:
		return fmt.Errorf("unknown reports source %q", c.Reports.Source)
	}
	if c.SMTP.Enabled && (c.SMTP.Host == "" || c.SMTP.From == "") {
		return fmt.Errorf("smtp is enabled but host or from is empty")
	}
	return nil
}
