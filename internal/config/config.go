package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/yukikurage/task-assignment-api/internal/constants"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is empty.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required")

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Store   StoreConfig
	Mongo   MongoConfig
	DB      DBConfig
	Session SessionConfig
	Cache   CacheConfig
}

type AppConfig struct {
	Env      string
	Name     string
	LogLevel string
}

type HTTPConfig struct {
	Port    int
	GinMode string
	CORSURL string
}

// Addr returns the listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

type StoreConfig struct {
	Driver string
}

type MongoConfig struct {
	URI      string
	Database string
}

// DBConfig describes the SQL backend used when the driver is mysql, postgres or sqlite.
type DBConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// MySQLDSN builds the DSN for gorm.io/driver/mysql. clientFoundRows makes
// updates report matched rows instead of changed rows.
func (c DBConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}

// PostgresDSN builds a postgres URL with the password escaped.
func (c DBConfig) PostgresDSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: fmt.Sprintf("sslmode=%s&timezone=UTC", c.SSLMode),
	}
	return u.String()
}

type SessionConfig struct {
	Secret       string
	CookieSecure bool
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// Enabled reports whether a Redis URL was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

// Load reads configuration from the environment, falling back to an optional
// .env file in the working directory. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "Task Assignment API"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Port:    getInt(v, "PORT", 3000),
			GinMode: getString(v, "GIN_MODE", "debug"),
			CORSURL: getString(v, "CORS_URL", "http://localhost:5173"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", DriverMongo)),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database: getString(v, "MONGO_DATABASE", "task_assignment"),
		},
		DB: DBConfig{
			Host:       getString(v, "DB_HOST", "localhost"),
			Port:       getInt(v, "DB_PORT", 3306),
			User:       getString(v, "DB_USER", "taskuser"),
			Password:   getString(v, "DB_PASSWORD", ""),
			Name:       getString(v, "DB_NAME", "task_assignment"),
			SSLMode:    getString(v, "DB_SSLMODE", "disable"),
			SQLitePath: getString(v, "SQLITE_PATH", "task_assignment.db"),
		},
		Session: SessionConfig{
			Secret:       getString(v, "JWT_SECRET", ""),
			CookieSecure: getBool(v, "COOKIE_SECURE", false),
		},
		Cache: CacheConfig{
			RedisURL: getString(v, "REDIS_URL", ""),
			TTL:      time.Duration(getInt(v, "CACHE_TTL_SECONDS", int(constants.DefaultCacheTTL/time.Second))) * time.Second,
		},
	}

	if cfg.Session.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	switch cfg.Store.Driver {
	case DriverMongo, DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("config: unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return n
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
