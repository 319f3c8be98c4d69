package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "AJE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "AJE_DB_DSN"
	EnvDBHost = "AJE_DB_HOST"
	EnvDBUser = "AJE_DB_USER"
	EnvDBName = "AJE_DB_NAME"
)

const (
	EnvAppEnv                 = "AJE_APP_ENV"
	EnvPort                   = "AJE_APP_PORT"
	EnvRedisURL               = "AJE_REDIS_URL"
	EnvJWTSecret              = "AJE_JWT_SECRET"
	EnvJWTIssuer              = "AJE_JWT_ISSUER"
	EnvJWTExpMins             = "AJE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "AJE_REFRESH_TOKEN_TTL_MINUTES"
	EnvGCPProjectID           = "AJE_GCP_PROJECT_ID"
	EnvGCSBucket              = "AJE_GCS_BUCKET_NAME"
	EnvPubSubAuditTopic       = "AJE_PUBSUB_AUDIT_TOPIC"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
