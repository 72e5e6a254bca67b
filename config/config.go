package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Search   SearchConfig   `yaml:"search"`
	Weights  WeightsConfig  `yaml:"weights"`
	Log      LogConfig      `yaml:"log"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	SwaggerDir     string   `yaml:"swagger_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
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
	Brokers           []string `yaml:"brokers"`
	SearchEventsTopic string   `yaml:"search_events_topic"`
	GroupID           string   `yaml:"group_id"`
}

type SearchConfig struct {
	MaxHops                int     `yaml:"max_hops"`
	MinConnectionMinutes   int     `yaml:"min_connection_minutes"`
	MaxConnectionMinutes   int     `yaml:"max_connection_minutes"`
	SnapshotBufferDays     int     `yaml:"snapshot_buffer_days"`
	DefaultWeight          float64 `yaml:"default_weight"`
	MissingTariffCost      float64 `yaml:"missing_tariff_cost"`
	Workers                int     `yaml:"workers"`
	CacheTTLSeconds        int     `yaml:"cache_ttl_seconds"`
	CurrencySymbol         string  `yaml:"currency_symbol"`
	PreferredTariffService string  `yaml:"preferred_service"`
}

func (s SearchConfig) MinConnection() time.Duration {
	return time.Duration(s.MinConnectionMinutes) * time.Minute
}

func (s SearchConfig) MaxConnection() time.Duration {
	return time.Duration(s.MaxConnectionMinutes) * time.Minute
}

func (s SearchConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// WeightsConfig tunes the recommended-itinerary score. Unset fields keep the
// defaults; 0 disables a term.
type WeightsConfig struct {
	Duration             *float64 `yaml:"duration"`
	Cost                 *float64 `yaml:"cost"`
	Stops                *float64 `yaml:"stops"`
	Affinity             *float64 `yaml:"affinity"`
	MissingTariffPenalty *float64 `yaml:"missing_tariff_penalty"`
}

func (w WeightsConfig) validate() error {
	fields := map[string]*float64{
		"duration":               w.Duration,
		"cost":                   w.Cost,
		"stops":                  w.Stops,
		"affinity":               w.Affinity,
		"missing_tariff_penalty": w.MissingTariffPenalty,
	}
	for name, v := range fields {
		if v != nil && (*v < 0 || math.IsNaN(*v)) {
			return fmt.Errorf("weights.%s must be a non-negative number", name)
		}
	}
	return nil
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Weights.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills every unset search, logging and storage setting.
func (c *Config) ApplyDefaults() {
	s := &c.Search
	if s.MaxHops <= 0 {
		s.MaxHops = 3
	}
	if s.MinConnectionMinutes <= 0 {
		s.MinConnectionMinutes = 60
	}
	if s.MaxConnectionMinutes <= 0 {
		s.MaxConnectionMinutes = 48 * 60
	}
	if s.SnapshotBufferDays <= 0 {
		s.SnapshotBufferDays = 5
	}
	if s.DefaultWeight <= 0 {
		s.DefaultWeight = 100
	}
	if s.MissingTariffCost <= 0 {
		s.MissingTariffCost = 99999
	}
	if s.Workers <= 0 {
		s.Workers = 4
	}
	if s.CacheTTLSeconds <= 0 {
		s.CacheTTLSeconds = 300
	}
	if s.CurrencySymbol == "" {
		s.CurrencySymbol = "R$"
	}
	if s.PreferredTariffService == "" {
		s.PreferredTariffService = "STANDARD"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "routes.db"
	}
	if c.Kafka.SearchEventsTopic == "" {
		c.Kafka.SearchEventsTopic = "route-search-events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "route-search-audit"
	}
}
