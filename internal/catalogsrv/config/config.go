package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// minTokenSecretLen is the minimum accepted token secret length. Anything
// shorter is trivially brute-forceable for an HS256 signing key.
const minTokenSecretLen = 32

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
}

type AuthConfig struct {
	TokenSecret   string `toml:"token_secret"`
	TokenValidity string `toml:"token_validity"`
}

type ImportConfig struct {
	BatchSize      int    `toml:"batch_size"`
	DefaultCSVPath string `toml:"default_csv_path"`
}

type ConfigParam struct {
	ServerPort string       `toml:"server_port"`
	HandleCORS bool         `toml:"handle_cors"`
	DB         DBConfig     `toml:"db"`
	Auth       AuthConfig   `toml:"auth"`
	Import     ImportConfig `toml:"import"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

// LoadConfig reads the config file and assigns it to the process-wide config.
// An empty filename loads development defaults.
func LoadConfig(filename string) error {
	if filename == "" {
		cfg = defaultConfig()
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	cp := *defaultConfig()
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}
	if err := cp.validate(); err != nil {
		return err
	}
	cfg = &cp
	return nil
}

func defaultConfig() *ConfigParam {
	return &ConfigParam{
		ServerPort: "8200",
		HandleCORS: true,
		DB: DBConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "catalog_api",
			DBName:  "mediacatalog",
			SSLMode: "disable",
		},
		Auth: AuthConfig{
			TokenSecret:   "dev-insecure-token-secret-change-me!",
			TokenValidity: "30m",
		},
		Import: ImportConfig{
			BatchSize:      100,
			DefaultCSVPath: "data/catalog.csv",
		},
	}
}

func (c *ConfigParam) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("server_port not defined")
	}
	if len(c.Auth.TokenSecret) < minTokenSecretLen {
		return fmt.Errorf("auth token_secret must be at least %d characters", minTokenSecretLen)
	}
	if _, err := time.ParseDuration(c.Auth.TokenValidity); err != nil {
		return fmt.Errorf("invalid auth token_validity: %v", err)
	}
	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("import batch_size must be positive")
	}
	return nil
}

// TokenValidity returns the parsed token lifetime. Config validation already
// checked the format; fall back to 30 minutes for default configs.
func (c *ConfigParam) TokenValidity() time.Duration {
	d, err := time.ParseDuration(c.Auth.TokenValidity)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// DSN returns the Postgres connection string for the catalog store.
func (c *DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func init() {
	if err := LoadConfig(""); err != nil {
		panic(err)
	}
}
