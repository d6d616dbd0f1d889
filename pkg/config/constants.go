package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names.
const EnvPrefix = "PHOTODESK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "PHOTODESK_APP_ENV"
	EnvPort       = "PHOTODESK_APP_PORT"
	EnvDBDSN      = "PHOTODESK_DB_DSN"
	EnvDBHost     = "PHOTODESK_DB_HOST"
	EnvDBUser     = "PHOTODESK_DB_USER"
	EnvDBName     = "PHOTODESK_DB_NAME"
	EnvRedisURL   = "PHOTODESK_REDIS_URL"
	EnvJWTSecret  = "PHOTODESK_JWT_SECRET"
	EnvJWTIssuer  = "PHOTODESK_JWT_ISSUER"
	EnvJWTExpMins = "PHOTODESK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
