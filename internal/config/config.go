package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Endpoint holds the credentials and base URL for one Ukrposhta environment
type Endpoint struct {
	BaseURL           string `yaml:"base_url"`
	BearerEcom        string `yaml:"bearer_ecom"`
	BearerStatus      string `yaml:"bearer_status"`
	CounterpartyToken string `yaml:"counterparty_token"`
	CounterpartyUUID  string `yaml:"counterparty_uuid"`
}

// Sender is the configured sender profile
type Sender struct {
	UUID        string `yaml:"uuid"`
	AddressID   int64  `yaml:"address_id"`
	Name        string `yaml:"name"`
	LatinName   string `yaml:"latin_name"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	MiddleName  string `yaml:"middle_name"`
	Postcode    string `yaml:"postcode"`
	Country     string `yaml:"country"`
	Region      string `yaml:"region"`
	City        string `yaml:"city"`
	Street      string `yaml:"street"`
	HouseNumber string `yaml:"house_number"`
}

// Server holds HTTP server settings
type Server struct {
	Addr string `yaml:"addr"`
}

// Store holds local shipment storage settings
type Store struct {
	Path string `yaml:"path"`
}

// RefData holds reference data overlay settings
type RefData struct {
	Path string `yaml:"path"`
}

// Tariff holds the optional external tariff endpoint
type Tariff struct {
	URL string `yaml:"url"`
}

// Tracing holds OTLP exporter settings
type Tracing struct {
	Enabled      bool    `yaml:"enabled"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	SampleRate   float64 `yaml:"sample_rate"`
}

// Config is the full portal configuration
type Config struct {
	Environment string              `yaml:"environment"`
	Ukrposhta   map[string]Endpoint `yaml:"ukrposhta"`
	Sender      Sender              `yaml:"sender"`
	Server      Server              `yaml:"server"`
	Store       Store               `yaml:"store"`
	RefData     RefData             `yaml:"refdata"`
	Tariff      Tariff              `yaml:"tariff"`
	Tracing     Tracing             `yaml:"tracing"`
	LogLevel    string              `yaml:"log_level"`
}

// Load reads the YAML configuration file and applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{
		Environment: "prod",
		Server:      Server{Addr: ":8080"},
		Store:       Store{Path: "shipments.json"},
		LogLevel:    "info",
		Tracing:     Tracing{OTLPEndpoint: "localhost:4317", SampleRate: 1.0},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the selected environment exists and is complete
func (c *Config) Validate() error {
	ep, ok := c.Ukrposhta[c.Environment]
	if !ok {
		return fmt.Errorf("config has no ukrposhta section for environment %q", c.Environment)
	}
	if ep.BaseURL == "" {
		return fmt.Errorf("ukrposhta.%s.base_url is required", c.Environment)
	}
	if ep.BearerEcom == "" {
		return fmt.Errorf("ukrposhta.%s.bearer_ecom is required", c.Environment)
	}
	if ep.BearerStatus == "" {
		return fmt.Errorf("ukrposhta.%s.bearer_status is required", c.Environment)
	}
	if ep.CounterpartyToken == "" {
		return fmt.Errorf("ukrposhta.%s.counterparty_token is required", c.Environment)
	}
	if ep.CounterpartyUUID == "" {
		return fmt.Errorf("ukrposhta.%s.counterparty_uuid is required", c.Environment)
	}
	return nil
}

// Endpoint returns the endpoint of the selected environment
func (c *Config) Endpoint() Endpoint {
	return c.Ukrposhta[c.Environment]
}

func applyEnvOverrides(cfg *Config) {
	cfg.Environment = getEnv("UKRPOSHTA_ENVIRONMENT", cfg.Environment)
	cfg.Server.Addr = getEnv("SERVER_ADDR", cfg.Server.Addr)
	cfg.Store.Path = getEnv("SHIPMENTS_FILE", cfg.Store.Path)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Tracing.OTLPEndpoint = getEnv("OTLP_ENDPOINT", cfg.Tracing.OTLPEndpoint)

	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tracing.Enabled = enabled
		}
	}

	if ep, ok := cfg.Ukrposhta[cfg.Environment]; ok {
		ep.BaseURL = getEnv("UKRPOSHTA_BASE_URL", ep.BaseURL)
		ep.BearerEcom = getEnv("UKRPOSHTA_BEARER_ECOM", ep.BearerEcom)
		ep.BearerStatus = getEnv("UKRPOSHTA_BEARER_STATUS", ep.BearerStatus)
		ep.CounterpartyToken = getEnv("UKRPOSHTA_COUNTERPARTY_TOKEN", ep.CounterpartyToken)
		ep.CounterpartyUUID = getEnv("UKRPOSHTA_COUNTERPARTY_UUID", ep.CounterpartyUUID)
		cfg.Ukrposhta[cfg.Environment] = ep
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
