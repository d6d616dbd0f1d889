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
	Service  ServiceConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Storage  StorageConfig
	Sync     SyncConfig
	Cron     CronConfig
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
	Env          string `envconfig:"PHOTODESK_APP_ENV" required:"true"`
	Port         string `envconfig:"PHOTODESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PHOTODESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHOTODESK_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"PHOTODESK_AUTO_MIGRATE" default:"false"`

	CORSOrigins []string `envconfig:"PHOTODESK_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"PHOTODESK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"PHOTODESK_DB_DSN"`
	Driver string `envconfig:"PHOTODESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PHOTODESK_DB_HOST"`
	LegacyPort     int    `envconfig:"PHOTODESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PHOTODESK_DB_USER"`
	LegacyPassword string `envconfig:"PHOTODESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PHOTODESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PHOTODESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PHOTODESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PHOTODESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PHOTODESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PHOTODESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PHOTODESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PHOTODESK_REDIS_ADDR"`
	Password     string        `envconfig:"PHOTODESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PHOTODESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PHOTODESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PHOTODESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PHOTODESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PHOTODESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PHOTODESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PHOTODESK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PHOTODESK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PHOTODESK_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PHOTODESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PHOTODESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PHOTODESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PHOTODESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PHOTODESK_ARGON_KEY_LEN" default:"32"`
}

type StorageConfig struct {
	RootDir        string `envconfig:"PHOTODESK_STORAGE_ROOT" default:"storage/photos"`
	PublicBaseURL  string `envconfig:"PHOTODESK_STORAGE_PUBLIC_BASE_URL" default:"/media"`
	MaxUploadMB    int    `envconfig:"PHOTODESK_MAX_UPLOAD_MB" default:"50"`
	ThumbnailBound int    `envconfig:"PHOTODESK_THUMBNAIL_BOUND" default:"300"`
}

type SyncConfig struct {
	BaseURL       string        `envconfig:"PHOTODESK_SYNC_BASE_URL"`
	BearerToken   string        `envconfig:"PHOTODESK_SYNC_BEARER_TOKEN"`
	Timeout       time.Duration `envconfig:"PHOTODESK_SYNC_TIMEOUT" default:"15s"`
	MaxAttempts   int           `envconfig:"PHOTODESK_SYNC_MAX_ATTEMPTS" default:"3"`
	RetryBackoff  time.Duration `envconfig:"PHOTODESK_SYNC_RETRY_BACKOFF" default:"2s"`
	SkipTLSVerify bool          `envconfig:"PHOTODESK_SYNC_SKIP_TLS_VERIFY" default:"true"`
}

type CronConfig struct {
	Interval               time.Duration `envconfig:"PHOTODESK_CRON_INTERVAL" default:"10m"`
	LockTTL                time.Duration `envconfig:"PHOTODESK_CRON_LOCK_TTL" default:"9m"`
	SelectionRetentionDays int           `envconfig:"PHOTODESK_SELECTION_RETENTION_DAYS" default:"7"`
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
