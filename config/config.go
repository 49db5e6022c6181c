package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lukehollenback/tally/exchange/bittrex"
	"gopkg.in/yaml.v3"
)

const (
	EnvAPIKey    = "TALLY_BITTREX_API_KEY"
	EnvAPISecret = "TALLY_BITTREX_API_SECRET"

	DefaultHTTPTimeout     = 30 * time.Second
	DefaultBalanceCacheTTL = 60 * time.Second
	DefaultDataDir         = "data"
)

//
// Config is the complete configuration of the tally tool.
//
type Config struct {
	Bittrex         BittrexConfig  `yaml:"bittrex"`
	Coinbase        CoinbaseConfig `yaml:"coinbase"`
	DataDir         string         `yaml:"data_dir"`
	BalanceCacheTTL time.Duration  `yaml:"balance_cache_ttl"`
}

//
// BittrexConfig holds the credentials and connection settings used to talk to Bittrex.
//
type BittrexConfig struct {
	APIKey      string        `yaml:"api_key"`
	APISecret   string        `yaml:"api_secret"`
	BaseURL     string        `yaml:"base_url"`
	APIVersion  string        `yaml:"api_version"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	ScanMode    string        `yaml:"scan_mode"`
}

//
// CoinbaseConfig holds the settings of the Coinbase Pro price sources.
//
type CoinbaseConfig struct {
	BaseURL  string   `yaml:"base_url"`
	FeedURL  string   `yaml:"feed_url"`
	Products []string `yaml:"products"`
}

//
// Load reads the YAML configuration file at the provided path (if any), applies credential
// overrides from the environment and the provided dotenv file (if it exists), fills in defaults and
// validates the result.
//
func Load(configPath string, envPath string) (Config, error) {
	cfg := Config{}

	if configPath != "" {
		bytes, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", configPath, err)
		}

		if err := yaml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	if err := cfg.applyEnv(envPath); err != nil {
		return Config{}, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

//
// applyEnv overrides the Bittrex credentials with the values of the process environment. Values
// found in the dotenv file never clobber variables that are already set.
//
func (o *Config) applyEnv(envPath string) error {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("load env file %s: %w", envPath, err)
			}
		}
	}

	if key, ok := os.LookupEnv(EnvAPIKey); ok {
		o.Bittrex.APIKey = key
	}

	if secret, ok := os.LookupEnv(EnvAPISecret); ok {
		o.Bittrex.APISecret = secret
	}

	return nil
}

func (o *Config) applyDefaults() {
	if o.Bittrex.BaseURL == "" {
		o.Bittrex.BaseURL = bittrex.DefaultBaseURL
	}

	if o.Bittrex.APIVersion == "" {
		o.Bittrex.APIVersion = bittrex.DefaultAPIVersion
	}

	if o.Bittrex.HTTPTimeout == 0 {
		o.Bittrex.HTTPTimeout = DefaultHTTPTimeout
	}

	if o.DataDir == "" {
		o.DataDir = DefaultDataDir
	}

	if o.BalanceCacheTTL == 0 {
		o.BalanceCacheTTL = DefaultBalanceCacheTTL
	}

	if len(o.Coinbase.Products) == 0 {
		o.Coinbase.Products = []string{"BTC-USD"}
	}
}

//
// Validate checks that the configuration is usable.
//
func (o Config) Validate() error {
	var problems []string

	if strings.TrimSpace(o.Bittrex.APIKey) == "" {
		problems = append(problems, "bittrex.api_key is required")
	}

	if strings.TrimSpace(o.Bittrex.APISecret) == "" {
		problems = append(problems, "bittrex.api_secret is required")
	}

	if _, err := bittrex.ParseScanMode(o.Bittrex.ScanMode); err != nil {
		problems = append(problems, fmt.Sprintf("bittrex.scan_mode: %s", err))
	}

	if o.Bittrex.HTTPTimeout < 0 {
		problems = append(problems, "bittrex.http_timeout must not be negative")
	}

	if o.BalanceCacheTTL < 0 {
		problems = append(problems, "balance_cache_ttl must not be negative")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}

	return nil
}

//
// BittrexURI returns the base URI that Bittrex method paths are appended to.
//
func (o Config) BittrexURI() string {
	return strings.TrimSuffix(o.Bittrex.BaseURL, "/") + "/" + strings.Trim(o.Bittrex.APIVersion, "/") + "/"
}

//
// ScanMode returns the parsed trade history scan mode. The configuration must have been validated.
//
func (o Config) ScanMode() bittrex.ScanMode {
	mode, _ := bittrex.ParseScanMode(o.Bittrex.ScanMode)

	return mode
}
