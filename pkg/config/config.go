package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Cron         CronConfig
	Telemetry    TelemetryConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DEENERGY_APP_ENV" required:"true"`
	Port         string `envconfig:"DEENERGY_APP_PORT" default:"4000"`
	LogLevel     string `envconfig:"DEENERGY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DEENERGY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"DEENERGY_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"DEENERGY_DB_DSN"`
	Driver string `envconfig:"DEENERGY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DEENERGY_DB_HOST"`
	LegacyPort     int    `envconfig:"DEENERGY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DEENERGY_DB_USER"`
	LegacyPassword string `envconfig:"DEENERGY_DB_PASSWORD"`
	LegacyName     string `envconfig:"DEENERGY_DB_NAME"`
	LegacySSLMode  string `envconfig:"DEENERGY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DEENERGY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DEENERGY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DEENERGY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DEENERGY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DEENERGY_REDIS_URL" required:"true"`
	Password     string        `envconfig:"DEENERGY_REDIS_PASSWORD"`
	DB           int           `envconfig:"DEENERGY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DEENERGY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DEENERGY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DEENERGY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DEENERGY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DEENERGY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CronConfig drives both scheduled jobs. The yield exchange rate converts a
// dollar-denominated daily slice into yield tokens.
type CronConfig struct {
	Interval     time.Duration `envconfig:"DEENERGY_CRON_INTERVAL" default:"15m"`
	LockTTL      time.Duration `envconfig:"DEENERGY_CRON_LOCK_TTL" default:"20m"`
	ExchangeRate string        `envconfig:"DEENERGY_YIELD_EXCHANGE_RATE" default:"0.03"`
}

// TelemetryConfig points at the external PV monitoring portal. PlantID scopes
// every query; it is injected from here rather than read ad hoc from the
// environment.
type TelemetryConfig struct {
	BaseURL        string        `envconfig:"DEENERGY_TELEMETRY_BASE_URL"`
	APIKey         string        `envconfig:"DEENERGY_TELEMETRY_API_KEY"`
	PlantID        string        `envconfig:"DEENERGY_PLANT_ID"`
	RequestTimeout time.Duration `envconfig:"DEENERGY_TELEMETRY_TIMEOUT" default:"30s"`
	LatestLimit    int           `envconfig:"DEENERGY_ENERGY_LATEST_LIMIT" default:"8"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DEENERGY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
