package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	LogLevel string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// NATSURL is optional; without it order.created events are not published.
	NATSURL                 string
	NATSOrderCreatedSubject string

	PincodeCacheTTL  time.Duration
	PincodeCacheSize int

	ZoneTimeout    time.Duration
	PersistTimeout time.Duration

	MetricsNamespace   string
	CacheStatsSchedule string
	CachePurgeSchedule string
}

var configDefaults = map[string]any{
	"ENV":                        "dev",
	"LOG_LEVEL":                  "info",
	"HTTP_PORT":                  "8080",
	"DB_HOST":                    "localhost",
	"DB_PORT":                    "5432",
	"DB_USER":                    "postgres",
	"DB_PASSWORD":                "postgres",
	"DB_NAME":                    "orderintake",
	"DB_SSLMODE":                 "disable",
	"NATS_URL":                   "",
	"NATS_ORDER_CREATED_SUBJECT": "orders.created",
	"PINCODE_CACHE_TTL":          "1h",
	"PINCODE_CACHE_SIZE":         10000,
	"ZONE_TIMEOUT":               "2s",
	"PERSIST_TIMEOUT":            "5s",
	"METRICS_NAMESPACE":          "orderintake",
	"CACHE_STATS_SCHEDULE":       "*/30 * * * * *",
	"CACHE_PURGE_SCHEDULE":       "",
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := Config{
		Env:                     v.GetString("ENV"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		HTTPPort:                v.GetString("HTTP_PORT"),
		DBHost:                  v.GetString("DB_HOST"),
		DBPort:                  v.GetString("DB_PORT"),
		DBUser:                  v.GetString("DB_USER"),
		DBPassword:              v.GetString("DB_PASSWORD"),
		DBName:                  v.GetString("DB_NAME"),
		DBSslMode:               v.GetString("DB_SSLMODE"),
		NATSURL:                 v.GetString("NATS_URL"),
		NATSOrderCreatedSubject: v.GetString("NATS_ORDER_CREATED_SUBJECT"),
		PincodeCacheTTL:         v.GetDuration("PINCODE_CACHE_TTL"),
		PincodeCacheSize:        v.GetInt("PINCODE_CACHE_SIZE"),
		ZoneTimeout:             v.GetDuration("ZONE_TIMEOUT"),
		PersistTimeout:          v.GetDuration("PERSIST_TIMEOUT"),
		MetricsNamespace:        v.GetString("METRICS_NAMESPACE"),
		CacheStatsSchedule:      v.GetString("CACHE_STATS_SCHEDULE"),
		CachePurgeSchedule:      v.GetString("CACHE_PURGE_SCHEDULE"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var err error
	if c.HTTPPort == "" {
		err = errors.Join(err, errors.New("HTTP_PORT must be set"))
	}
	if c.PincodeCacheTTL <= 0 {
		err = errors.Join(err, errors.New("PINCODE_CACHE_TTL must be a positive duration"))
	}
	if c.PincodeCacheSize <= 0 {
		err = errors.Join(err, errors.New("PINCODE_CACHE_SIZE must be positive"))
	}
	if c.ZoneTimeout <= 0 {
		err = errors.Join(err, errors.New("ZONE_TIMEOUT must be a positive duration"))
	}
	if c.PersistTimeout <= 0 {
		err = errors.Join(err, errors.New("PERSIST_TIMEOUT must be a positive duration"))
	}
	return err
}

// DSN is understood by both pgx (gorm) and lib/pq (migrations).
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
