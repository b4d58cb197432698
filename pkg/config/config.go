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
	DB           DBConfig
	Google       GoogleConfig
	OpenAI       OpenAIConfig
	Session      SessionConfig
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
	Env          string `envconfig:"LESSONPLANNER_APP_ENV" required:"true"`
	Port         string `envconfig:"LESSONPLANNER_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"LESSONPLANNER_APP_BASE_URL" default:"http://localhost:8080"`
	LogLevel     string `envconfig:"LESSONPLANNER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LESSONPLANNER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LESSONPLANNER_DB_DSN"`
	Driver string `envconfig:"LESSONPLANNER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LESSONPLANNER_DB_HOST"`
	LegacyPort     int    `envconfig:"LESSONPLANNER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LESSONPLANNER_DB_USER"`
	LegacyPassword string `envconfig:"LESSONPLANNER_DB_PASSWORD"`
	LegacyName     string `envconfig:"LESSONPLANNER_DB_NAME"`
	LegacySSLMode  string `envconfig:"LESSONPLANNER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LESSONPLANNER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LESSONPLANNER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LESSONPLANNER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LESSONPLANNER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type GoogleConfig struct {
	ClientID     string `envconfig:"LESSONPLANNER_GOOGLE_CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"LESSONPLANNER_GOOGLE_CLIENT_SECRET" required:"true"`
	RedirectURL  string `envconfig:"LESSONPLANNER_GOOGLE_REDIRECT_URL"`

	// Endpoint overrides for tests.
	AuthURL     string `envconfig:"LESSONPLANNER_GOOGLE_AUTH_URL"`
	TokenURL    string `envconfig:"LESSONPLANNER_GOOGLE_TOKEN_URL"`
	UserInfoURL string `envconfig:"LESSONPLANNER_GOOGLE_USERINFO_URL"`
}

type OpenAIConfig struct {
	APIKey    string        `envconfig:"LESSONPLANNER_OPENAI_API_KEY"`
	BaseURL   string        `envconfig:"LESSONPLANNER_OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	Model     string        `envconfig:"LESSONPLANNER_OPENAI_MODEL" default:"gpt-4"`
	Timeout   time.Duration `envconfig:"LESSONPLANNER_OPENAI_TIMEOUT" default:"0"`
	MaxTokens int           `envconfig:"LESSONPLANNER_OPENAI_MAX_TOKENS" default:"2000"`
}

type SessionConfig struct {
	CookieName   string        `envconfig:"LESSONPLANNER_SESSION_COOKIE_NAME" default:"session"`
	TTL          time.Duration `envconfig:"LESSONPLANNER_SESSION_TTL" default:"168h"`
	CookieSecure bool          `envconfig:"LESSONPLANNER_SESSION_COOKIE_SECURE" default:"true"`
}

// MaxAge returns the cookie Max-Age in whole seconds.
func (s SessionConfig) MaxAge() int {
	return int(s.TTL / time.Second)
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LESSONPLANNER_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LESSONPLANNER_AUTO_MIGRATE" default:"false"`
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
