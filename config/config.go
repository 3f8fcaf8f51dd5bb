package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Sandbox API the portal talks to.
	APIURL         string `mapstructure:"API_URL"`
	APIProxyPrefix string `mapstructure:"API_PROXY_PREFIX"`

	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	// Generated by navgen; the built-in page list is used when empty.
	NavigationFile string `mapstructure:"NAVIGATION_FILE"`

	// MongoDB (admin audit log).
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Admin console.
	AdminPageSize       int           `mapstructure:"ADMIN_PAGE_SIZE"`
	AdminPollInterval   time.Duration `mapstructure:"ADMIN_POLL_INTERVAL"`
	BackendServiceToken string        `mapstructure:"BACKEND_SERVICE_TOKEN"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("API_URL", "http://localhost:4000")
	v.SetDefault("API_PROXY_PREFIX", "/api/v1")
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("NAVIGATION_FILE", "")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "dpiportal")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("ADMIN_PAGE_SIZE", 10)
	v.SetDefault("ADMIN_POLL_INTERVAL", 3*time.Second)
	v.SetDefault("BACKEND_SERVICE_TOKEN", "")
}

// BackendBaseURL is the root of the auth and admin endpoints the portal calls
// itself. Playground drafts and proxied paths already carry the prefix and go
// to APIURL.
func (c Config) BackendBaseURL() string {
	prefix := strings.Trim(c.APIProxyPrefix, "/")
	if prefix == "" {
		return c.APIURL
	}
	return c.APIURL + "/" + prefix
}

// Load reads configuration from config.yaml (if present) and the environment
// into a fresh Config without touching AppConfig.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	// The browser build used NEXT_PUBLIC_API_URL for the same value.
	_ = v.BindEnv("API_URL", "API_URL", "NEXT_PUBLIC_API_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.AdminPageSize <= 0 {
		cfg.AdminPageSize = 10
	}
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
