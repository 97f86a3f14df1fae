package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cuongbtq/jobboard/internal/query"
	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Saved set backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Broadcast backends
const (
	BroadcastNone     = "none"
	BroadcastRedis    = "redis"
	BroadcastRabbitMQ = "rabbitmq"
	BroadcastFile     = "file"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	App       AppConfig       `yaml:"app"`
	Logging   LoggingConfig   `yaml:"logging"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Query     QueryConfig     `yaml:"query"`
	SavedSet  SavedSetConfig  `yaml:"saved_set"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableSource bool   `yaml:"enable_source"`
	TimeFormat   string `yaml:"time_format"`
}

// DatasetConfig points at the job records. An empty path selects the embedded dataset.
type DatasetConfig struct {
	Path   string `yaml:"path"`
	Strict bool   `yaml:"strict"`
}

// QueryConfig holds the tunable pipeline constants
type QueryConfig struct {
	PerPage           int                `yaml:"per_page"`
	MaxPerPage        int                `yaml:"max_per_page"`
	DescriptionWindow int                `yaml:"description_window"`
	PresetCeiling     int                `yaml:"preset_ceiling"`
	CurrencyRates     map[string]float64 `yaml:"currency_rates"`
}

// SavedSetConfig selects where the saved set is persisted
type SavedSetConfig struct {
	Backend string `yaml:"backend"`
	Key     string `yaml:"key"`
	FileDir string `yaml:"file_dir"`
	Migrate bool   `yaml:"migrate"`
}

// BroadcastConfig selects how change events reach other processes
type BroadcastConfig struct {
	Backend string `yaml:"backend"`
	Channel string `yaml:"channel"`
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// RabbitMQConfig holds RabbitMQ connection and exchange configuration
type RabbitMQConfig struct {
	Host       string           `yaml:"host"`
	Port       int              `yaml:"port"`
	User       string           `yaml:"user"`
	Password   string           `yaml:"password"`
	VHost      string           `yaml:"vhost"`
	Exchange   ExchangeConfig   `yaml:"exchange"`
	Connection ConnectionConfig `yaml:"connection"`
	Publish    PublishConfig    `yaml:"publish"`
}

// ExchangeConfig holds RabbitMQ exchange configuration
type ExchangeConfig struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Durable bool   `yaml:"durable"`
}

// ConnectionConfig holds RabbitMQ connection settings
type ConnectionConfig struct {
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	Heartbeat     time.Duration `yaml:"heartbeat"`
}

// PublishConfig holds RabbitMQ publish retry settings
type PublishConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
}

// Load reads and parses the configuration file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	c.SavedSet.Backend = strings.ToLower(c.SavedSet.Backend)
	if c.SavedSet.Backend == "" {
		c.SavedSet.Backend = BackendMemory
	}
	c.Broadcast.Backend = strings.ToLower(c.Broadcast.Backend)
	if c.Broadcast.Backend == "" {
		c.Broadcast.Backend = BroadcastNone
	}
	if c.RabbitMQ.Exchange.Type == "" {
		c.RabbitMQ.Exchange.Type = "fanout"
	}
}

// ValidateAPIConfig checks the settings the API service needs
func (c *Config) ValidateAPIConfig() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if err := c.validateQuery(); err != nil {
		return err
	}

	if err := c.validateSavedSet(); err != nil {
		return err
	}

	// other processes can write a shared set, so changes must reach this one
	if c.SavedSet.Backend != BackendMemory && c.Broadcast.Backend == BroadcastNone {
		return fmt.Errorf("saved_set backend %s is shared across processes and needs a broadcast backend", c.SavedSet.Backend)
	}

	return c.validateBroadcast()
}

// ValidateWatcherConfig checks the settings the saved set watcher needs.
// The watcher only makes sense with a cross-process broadcaster.
func (c *Config) ValidateWatcherConfig() error {
	if c.Broadcast.Backend == BroadcastNone {
		return fmt.Errorf("broadcast backend is required for the watcher")
	}

	// a memory set is private to one process
	if c.SavedSet.Backend == BackendMemory {
		return fmt.Errorf("saved_set backend %s cannot be shared across processes", BackendMemory)
	}

	if err := c.validateSavedSet(); err != nil {
		return err
	}

	return c.validateBroadcast()
}

func (c *Config) validateQuery() error {
	if c.Query.PerPage < 0 {
		return fmt.Errorf("query per_page must not be negative")
	}

	if c.Query.MaxPerPage > 0 && c.Query.PerPage > c.Query.MaxPerPage {
		return fmt.Errorf("query per_page %d exceeds max_per_page %d", c.Query.PerPage, c.Query.MaxPerPage)
	}

	if c.Query.DescriptionWindow < 0 {
		return fmt.Errorf("query description_window must not be negative")
	}

	for code, rate := range c.Query.CurrencyRates {
		if len(code) != 3 {
			return fmt.Errorf("invalid currency code: %q", code)
		}
		if rate <= 0 {
			return fmt.Errorf("currency rate for %s must be greater than 0", code)
		}
	}

	return nil
}

func (c *Config) validateSavedSet() error {
	switch c.SavedSet.Backend {
	case BackendMemory:
		return nil
	case BackendFile:
		if c.SavedSet.FileDir == "" {
			return fmt.Errorf("saved_set file_dir is required for the file backend")
		}
		return nil
	case BackendPostgres:
		return c.validateDatabase()
	case BackendRedis:
		return c.validateRedis()
	default:
		return fmt.Errorf("unknown saved_set backend: %s", c.SavedSet.Backend)
	}
}

func (c *Config) validateBroadcast() error {
	switch c.Broadcast.Backend {
	case BroadcastNone:
		return nil
	case BroadcastRedis:
		return c.validateRedis()
	case BroadcastRabbitMQ:
		return c.validateRabbitMQ()
	case BroadcastFile:
		if c.SavedSet.Backend != BackendFile {
			return fmt.Errorf("broadcast backend %s requires the %s saved_set backend", BroadcastFile, BackendFile)
		}
		return nil
	default:
		return fmt.Errorf("unknown broadcast backend: %s", c.Broadcast.Backend)
	}
}

func (c *Config) validateDatabase() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < MinPort || c.Database.Port > MaxPort {
		return fmt.Errorf("invalid database port: %d (must be between %d and %d)", c.Database.Port, MinPort, MaxPort)
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	return nil
}

func (c *Config) validateRedis() error {
	if c.Redis.Host == "" {
		return fmt.Errorf("redis host is required")
	}

	if c.Redis.Port < MinPort || c.Redis.Port > MaxPort {
		return fmt.Errorf("invalid redis port: %d (must be between %d and %d)", c.Redis.Port, MinPort, MaxPort)
	}

	return nil
}

func (c *Config) validateRabbitMQ() error {
	if c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq host is required")
	}

	if c.RabbitMQ.Port < MinPort || c.RabbitMQ.Port > MaxPort {
		return fmt.Errorf("invalid rabbitmq port: %d (must be between %d and %d)", c.RabbitMQ.Port, MinPort, MaxPort)
	}

	if c.RabbitMQ.Exchange.Name == "" {
		return fmt.Errorf("rabbitmq exchange name is required")
	}

	if c.RabbitMQ.Exchange.Type != "fanout" {
		return fmt.Errorf("rabbitmq exchange type must be fanout, got %s", c.RabbitMQ.Exchange.Type)
	}

	return nil
}

// Options converts the query section into pipeline options. Configured rates
// override the built-in table per currency.
func (q QueryConfig) Options() query.Options {
	opts := query.DefaultOptions()
	if q.PerPage > 0 {
		opts.PerPage = q.PerPage
	}
	if q.MaxPerPage > 0 {
		opts.MaxPerPage = q.MaxPerPage
	}
	if q.DescriptionWindow > 0 {
		opts.DescriptionWindow = q.DescriptionWindow
	}
	if q.PresetCeiling > 0 {
		opts.PresetCeiling = q.PresetCeiling
	}
	if len(q.CurrencyRates) > 0 {
		rates := query.DefaultRates()
		for code, rate := range q.CurrencyRates {
			rates[strings.ToUpper(code)] = rate
		}
		opts.Rates = rates
	}
	return opts
}
