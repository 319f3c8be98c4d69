package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
	PubSub        PubSubConfig
	Cron          CronConfig
	Retention     RetentionConfig
	PDF           PDFConfig
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
	Env          string `envconfig:"AJE_APP_ENV" required:"true"`
	Port         string `envconfig:"AJE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AJE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AJE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"AJE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"AJE_DB_DSN"`
	Driver string `envconfig:"AJE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AJE_DB_HOST"`
	LegacyPort     int    `envconfig:"AJE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AJE_DB_USER"`
	LegacyPassword string `envconfig:"AJE_DB_PASSWORD"`
	LegacyName     string `envconfig:"AJE_DB_NAME"`
	LegacySSLMode  string `envconfig:"AJE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AJE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AJE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AJE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AJE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AJE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AJE_REDIS_ADDR"`
	Password     string        `envconfig:"AJE_REDIS_PASSWORD"`
	DB           int           `envconfig:"AJE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AJE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AJE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AJE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AJE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AJE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"AJE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"AJE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"AJE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"AJE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AJE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AJE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AJE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AJE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AJE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"AJE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"AJE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"AJE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	IntakeWindow    time.Duration `envconfig:"AJE_INTAKE_RATE_LIMIT_WINDOW" default:"1m"`
	IntakeIPLimit   int           `envconfig:"AJE_INTAKE_RATE_LIMIT_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite     bool   `envconfig:"AJE_USE_SQLITE" default:"false"`
	AutoMigrate   bool   `envconfig:"AJE_AUTO_MIGRATE" default:"false"`
	GCSAccessMode string `envconfig:"AJE_GCS_ACCESS_MODE" default:"public"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"AJE_CORS_ALLOWED_ORIGINS" default:"https://agence-judiciaire.gouv.fr"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"AJE_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"AJE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"AJE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"AJE_GCS_BUCKET_NAME" required:"true"`
	UploadURLExpiry   time.Duration `envconfig:"AJE_GCS_UPLOAD_URL_EXPIRY" default:"15m"`
	DownloadURLExpiry time.Duration `envconfig:"AJE_GCS_DOWNLOAD_URL_EXPIRY" default:"1h"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"AJE_MAX_UPLOAD_MB" default:"200"`
	MaxVideoMB  int `envconfig:"AJE_MAX_VIDEO_MB" default:"50"`
}

type PubSubConfig struct {
	AuditTopic        string `envconfig:"AJE_PUBSUB_AUDIT_TOPIC" default:"aje-audit-events"`
	AuditSubscription string `envconfig:"AJE_PUBSUB_AUDIT_SUBSCRIPTION"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"AJE_CRON_INTERVAL" default:"5m"`
	LockTTL  time.Duration `envconfig:"AJE_CRON_LOCK_TTL" default:"4m"`
}

type RetentionConfig struct {
	IntakeRetention time.Duration `envconfig:"AJE_INTAKE_RETENTION" default:"8760h"`
}

type PDFConfig struct {
	Port          string        `envconfig:"AJE_PDF_PORT" default:"8090"`
	PagePoolSize  int           `envconfig:"AJE_PDF_PAGE_POOL_SIZE" default:"4"`
	RenderTimeout time.Duration `envconfig:"AJE_PDF_RENDER_TIMEOUT" default:"30s"`
	BaseURL       string        `envconfig:"AJE_PDF_TEMPLATE_BASE_URL"`
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
