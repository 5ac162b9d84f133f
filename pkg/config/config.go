package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	DB       DBConfig
	Redis    RedisConfig
	Checkout CheckoutConfig
	Session  SessionConfig
	Currency CurrencyConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.UsesSQL() {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Storage.UsesRedis() && !cfg.Redis.Configured() {
		return nil, fmt.Errorf("%s or %s is required for the redis storage backend", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RIDEGEAR_APP_ENV" required:"true"`
	Port         string `envconfig:"RIDEGEAR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"RIDEGEAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RIDEGEAR_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"RIDEGEAR_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where cart snapshots live.
type StorageConfig struct {
	Backend     string        `envconfig:"RIDEGEAR_STORAGE_BACKEND" default:"memory"`
	CartIdleTTL time.Duration `envconfig:"RIDEGEAR_CART_IDLE_TTL" default:"30m"`
}

func (s StorageConfig) normalized() string {
	return strings.ToLower(strings.TrimSpace(s.Backend))
}

func (s StorageConfig) UsesRedis() bool { return s.normalized() == StorageBackendRedis }

func (s StorageConfig) UsesSQL() bool { return s.normalized() == StorageBackendSQL }

func (s StorageConfig) UsesMemory() bool {
	v := s.normalized()
	return v == "" || v == StorageBackendMemory
}

func (s StorageConfig) validate() error {
	if s.UsesMemory() || s.UsesRedis() || s.UsesSQL() {
		return nil
	}
	return fmt.Errorf("unsupported %s %q (expected %s, %s or %s)",
		EnvStorageBackend, s.Backend, StorageBackendMemory, StorageBackendRedis, StorageBackendSQL)
}

type DBConfig struct {
	DSN    string `envconfig:"RIDEGEAR_DB_DSN"`
	Driver string `envconfig:"RIDEGEAR_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"RIDEGEAR_DB_HOST"`
	Port     int    `envconfig:"RIDEGEAR_DB_PORT" default:"5432"`
	User     string `envconfig:"RIDEGEAR_DB_USER"`
	Password string `envconfig:"RIDEGEAR_DB_PASSWORD"`
	Name     string `envconfig:"RIDEGEAR_DB_NAME"`
	SSLMode  string `envconfig:"RIDEGEAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RIDEGEAR_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"RIDEGEAR_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"RIDEGEAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RIDEGEAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver was selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"RIDEGEAR_REDIS_URL"`
	Address      string        `envconfig:"RIDEGEAR_REDIS_ADDR"`
	Password     string        `envconfig:"RIDEGEAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"RIDEGEAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RIDEGEAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RIDEGEAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RIDEGEAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RIDEGEAR_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"RIDEGEAR_REDIS_WRITE_TIMEOUT" default:"3s"`
	CartTTL      time.Duration `envconfig:"RIDEGEAR_REDIS_CART_TTL" default:"0"`
}

// Configured reports whether a redis endpoint was supplied. Redis also backs
// idempotency replay when the cart storage is not redis.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type CheckoutConfig struct {
	Delay     time.Duration `envconfig:"RIDEGEAR_CHECKOUT_DELAY" default:"2s"`
	Retention time.Duration `envconfig:"RIDEGEAR_CHECKOUT_RETENTION" default:"1h"`
}

type SessionConfig struct {
	Origin  string        `envconfig:"RIDEGEAR_AUTH_ORIGIN" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"RIDEGEAR_AUTH_TIMEOUT" default:"5s"`
}

// BaseURL returns the external auth origin without a trailing slash.
func (s SessionConfig) BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(s.Origin), "/")
}

type CurrencyConfig struct {
	Code        string `envconfig:"RIDEGEAR_CURRENCY_CODE" default:"INR"`
	Symbol      string `envconfig:"RIDEGEAR_CURRENCY_SYMBOL" default:"₹"`
	MinorDigits int32  `envconfig:"RIDEGEAR_CURRENCY_MINOR_DIGITS" default:"0"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"RIDEGEAR_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = defaultSQLiteDSN
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
