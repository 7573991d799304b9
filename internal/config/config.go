package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StripeModeTest    = "test"
	StripeModeLive    = "live"
	PayPalModeSandbox = "sandbox"
	PayPalModeLive    = "live"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// RedisConfig holds the settings cache configuration. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int      `mapstructure:"idle_timeout"`  // in seconds
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// SiteConfig describes the donation site this gateway serves
type SiteConfig struct {
	URL         string `mapstructure:"url"`
	AdminURL    string `mapstructure:"admin_url"`
	BaseCountry string `mapstructure:"base_country"`
	Currency    string `mapstructure:"currency"`
}

// HTTPConfig holds outbound HTTP client configuration
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// FormHashConfig holds the donor form token configuration
type FormHashConfig struct {
	Secret   string        `mapstructure:"secret"`
	Lifetime time.Duration `mapstructure:"lifetime"`
}

// StripeConfig holds Stripe configuration
type StripeConfig struct {
	APIURL    string `mapstructure:"api_url"`
	SecretKey string `mapstructure:"secret_key"`
	Mode      string `mapstructure:"mode"`
	Connected bool   `mapstructure:"connected"`
}

// PayPalConfig holds PayPal Commerce configuration
type PayPalConfig struct {
	APIURL        string `mapstructure:"api_url"`
	SandboxAPIURL string `mapstructure:"sandbox_api_url"`
	ConnectURL    string `mapstructure:"connect_url"`
	Mode          string `mapstructure:"mode"`
}

// RateLimitConfig limits donation form checkout requests per client IP. Zero disables it.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Site       SiteConfig      `mapstructure:"site"`
	HTTP       HTTPConfig      `mapstructure:"http"`
	FormHash   FormHashConfig  `mapstructure:"form_hash"`
	Stripe     StripeConfig    `mapstructure:"stripe"`
	PayPal     PayPalConfig    `mapstructure:"paypal"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.ttl", "10m")
	v.SetDefault("site.base_country", "US")
	v.SetDefault("site.currency", "USD")
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("form_hash.lifetime", "24h")
	v.SetDefault("stripe.api_url", "https://api.stripe.com")
	v.SetDefault("stripe.mode", StripeModeTest)
	v.SetDefault("paypal.api_url", "https://api-m.paypal.com")
	v.SetDefault("paypal.sandbox_api_url", "https://api-m.sandbox.paypal.com")
	v.SetDefault("paypal.connect_url", "https://connect.givewp.com")
	v.SetDefault("paypal.mode", PayPalModeSandbox)
	v.SetDefault("rate_limit.requests_per_minute", 30)
	v.SetDefault("rate_limit.burst", 10)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use environment variables
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Site.AdminURL == "" && config.Site.URL != "" {
		config.Site.AdminURL = strings.TrimRight(config.Site.URL, "/") + "/wp-admin/"
	}

	return &config, nil
}

// Validate checks the fields the API server cannot run without
func (c *APIConfig) Validate() error {
	if c.Site.URL == "" {
		return errors.New("site.url is required")
	}
	if c.FormHash.Secret == "" {
		return errors.New("form_hash.secret is required")
	}
	switch c.Stripe.Mode {
	case StripeModeTest, StripeModeLive:
	default:
		return fmt.Errorf("invalid stripe.mode %q: must be %s or %s", c.Stripe.Mode, StripeModeTest, StripeModeLive)
	}
	switch c.PayPal.Mode {
	case PayPalModeSandbox, PayPalModeLive:
	default:
		return fmt.Errorf("invalid paypal.mode %q: must be %s or %s", c.PayPal.Mode, PayPalModeSandbox, PayPalModeLive)
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("GIVE_GATEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not reach Unmarshal when no config file exists
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_origins",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		"redis.ttl",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Site
		"site.url",
		"site.admin_url",
		"site.base_country",
		"site.currency",
		"http.timeout",
		"form_hash.secret",
		"form_hash.lifetime",
		// Stripe
		"stripe.api_url",
		"stripe.secret_key",
		"stripe.mode",
		"stripe.connected",
		// PayPal
		"paypal.api_url",
		"paypal.sandbox_api_url",
		"paypal.connect_url",
		"paypal.mode",
		// Rate limit
		"rate_limit.requests_per_minute",
		"rate_limit.burst",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files win
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
