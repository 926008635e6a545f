package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
	CORS   CORSConfig
	Sales  SalesConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SalesConfig holds sale engine behavior switches.
//
// RestoreStockOnDelete controls whether deleting a sale credits its line
// quantities back to stock. The legacy system restored stock when items
// were replaced on update but not on delete; the default here is the
// symmetric behavior, with the legacy one available by setting it false.
type SalesConfig struct {
	RestoreStockOnDelete bool `mapstructure:"restore_stock_on_delete"`
}

// Load reads configuration from environment variables with the BILLMINT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLMINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billmint")
	v.SetDefault("db.password", "billmint_secret")
	v.SetDefault("db.name", "billmint_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Sales defaults
	v.SetDefault("sales.restore_stock_on_delete", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "BILLMINT_SERVER_PORT",
		"server.read_timeout":           "BILLMINT_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "BILLMINT_SERVER_WRITE_TIMEOUT",
		"server.environment":            "BILLMINT_SERVER_ENVIRONMENT",
		"db.host":                       "BILLMINT_DB_HOST",
		"db.port":                       "BILLMINT_DB_PORT",
		"db.user":                       "BILLMINT_DB_USER",
		"db.password":                   "BILLMINT_DB_PASSWORD",
		"db.name":                       "BILLMINT_DB_NAME",
		"db.sslmode":                    "BILLMINT_DB_SSLMODE",
		"db.max_open":                   "BILLMINT_DB_MAX_OPEN",
		"db.max_idle":                   "BILLMINT_DB_MAX_IDLE",
		"log.level":                     "BILLMINT_LOG_LEVEL",
		"log.format":                    "BILLMINT_LOG_FORMAT",
		"cors.allowed_origins":          "BILLMINT_CORS_ALLOWED_ORIGINS",
		"sales.restore_stock_on_delete": "BILLMINT_SALES_RESTORE_STOCK_ON_DELETE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLMINT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLMINT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Sales = SalesConfig{
		RestoreStockOnDelete: v.GetBool("sales.restore_stock_on_delete"),
	}

	return cfg, nil
}
