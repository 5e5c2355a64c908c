package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	Cart    CartConfig
	Catalog CatalogConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	if cfg.NeedsDB() {
		if err := cfg.DB.EnsureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.NeedsRedis() && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required when the cart slot driver is redis", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

// NeedsDB reports whether any configured component reads or writes the SQL database.
func (c *Config) NeedsDB() bool {
	return c.Cart.SlotDriver == SlotDriverSQL || c.Catalog.Enabled
}

// NeedsRedis reports whether the cart slot is stored in redis.
func (c *Config) NeedsRedis() bool {
	return c.Cart.SlotDriver == SlotDriverRedis
}

type AppConfig struct {
	Env          string        `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string        `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string        `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string        `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	LogWarnStack bool          `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_HTTP_WRITE_TIMEOUT" default:"10s"`
	ShutdownWait time.Duration `envconfig:"STOREFRONT_HTTP_SHUTDOWN_WAIT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"STOREFRONT_DB_HOST"`
	Port     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	User     string `envconfig:"STOREFRONT_DB_USER"`
	Password string `envconfig:"STOREFRONT_DB_PASSWORD"`
	Name     string `envconfig:"STOREFRONT_DB_NAME"`
	SSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"STOREFRONT_DB_AUTO_MIGRATE" default:"false"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type SessionConfig struct {
	Secret       string        `envconfig:"STOREFRONT_SESSION_SECRET" required:"true"`
	Issuer       string        `envconfig:"STOREFRONT_SESSION_ISSUER" default:"storefront"`
	TTL          time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"720h"`
	CookieName   string        `envconfig:"STOREFRONT_SESSION_COOKIE" default:"sf_session"`
	CookieSecure bool          `envconfig:"STOREFRONT_SESSION_COOKIE_SECURE" default:"false"`
}

type CartConfig struct {
	SlotDriver     string        `envconfig:"STOREFRONT_CART_SLOT_DRIVER" default:"memory"`
	SlotTTL        time.Duration `envconfig:"STOREFRONT_CART_SLOT_TTL" default:"0s"`
	CurrencySymbol string        `envconfig:"STOREFRONT_CART_CURRENCY_SYMBOL" default:"$"`
}

func (c CartConfig) validate() error {
	switch c.SlotDriver {
	case SlotDriverMemory, SlotDriverRedis, SlotDriverSQL:
		return nil
	}
	return fmt.Errorf("%s must be one of memory|redis|sql, got %q", EnvCartSlotDriver, c.SlotDriver)
}

type CatalogConfig struct {
	Enabled     bool `envconfig:"STOREFRONT_CATALOG_ENABLED" default:"false"`
	SeedOnStart bool `envconfig:"STOREFRONT_CATALOG_SEED" default:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}

// EnsureDSN fills DSN from the individual parts when it is not set directly.
func (db *DBConfig) EnsureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbPartEnvVars {
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
