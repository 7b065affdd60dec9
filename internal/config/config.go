package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Database DatabaseConfig `mapstructure:",squash"`
	JWT      JWTConfig      `mapstructure:",squash"`
	App      AppConfig      `mapstructure:",squash"`
	Policy   PolicyConfig   `mapstructure:",squash"`
}

type DatabaseConfig struct {
	Driver     string `mapstructure:"DB_DRIVER"`
	Host       string `mapstructure:"DB_HOST"`
	Port       int    `mapstructure:"DB_PORT"`
	User       string `mapstructure:"DB_USER"`
	Password   string `mapstructure:"DB_PASSWORD"`
	Name       string `mapstructure:"DB_NAME"`
	SSLMode    string `mapstructure:"DB_SSL_MODE"`
	MaxConns   int32  `mapstructure:"DB_MAX_CONNS"`
	MinConns   int32  `mapstructure:"DB_MIN_CONNS"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string `mapstructure:"JWT_SECRET_KEY"`
	AccessExpiration string `mapstructure:"JWT_ACCESS_EXPIRATION_TIME"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int    `mapstructure:"APP_PORT"`
	Env            string `mapstructure:"APP_ENV"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	AllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// PolicyConfig holds the working-time and leave rules of the deployment.
type PolicyConfig struct {
	NormalHoursPerDay int `mapstructure:"POLICY_NORMAL_HOURS_PER_DAY"`
	AnnualLeaveDays   int `mapstructure:"POLICY_ANNUAL_LEAVE_DAYS"`

	// EnforceStatusTransitions limits leave reviews to pending requests.
	EnforceStatusTransitions bool `mapstructure:"POLICY_ENFORCE_STATUS_TRANSITIONS"`
}

var defaults = map[string]interface{}{
	"DB_DRIVER":                         DriverPostgres,
	"DB_HOST":                           "localhost",
	"DB_PORT":                           5432,
	"DB_USER":                           "postgres",
	"DB_PASSWORD":                       "",
	"DB_NAME":                           "sge",
	"DB_SSL_MODE":                       "disable",
	"DB_MAX_CONNS":                      25,
	"DB_MIN_CONNS":                      5,
	"SQLITE_PATH":                       "data/sge.db",
	"JWT_SECRET_KEY":                    "",
	"JWT_ACCESS_EXPIRATION_TIME":        "1h",
	"APP_PORT":                          8080,
	"APP_ENV":                           "development",
	"LOG_LEVEL":                         "info",
	"CORS_ALLOWED_ORIGINS":              "http://localhost:3000",
	"POLICY_NORMAL_HOURS_PER_DAY":       8,
	"POLICY_ANNUAL_LEAVE_DAYS":          25,
	"POLICY_ENFORCE_STATUS_TRANSITIONS": false,
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment only")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return errors.New("DB_PASSWORD is required")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Policy.NormalHoursPerDay <= 0 || c.Policy.NormalHoursPerDay > 24 {
		return errors.New("POLICY_NORMAL_HOURS_PER_DAY must be between 1 and 24")
	}
	if c.Policy.AnnualLeaveDays < 0 {
		return errors.New("POLICY_ANNUAL_LEAVE_DAYS must not be negative")
	}
	return nil
}

// IsDevelopment reports whether the app runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.App.Env == "local"
}

// Origins returns the comma separated CORS origins as a slice.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.App.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
