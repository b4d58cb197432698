package config

const EnvPrefix = "LESSONPLANNER"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "LESSONPLANNER_APP_ENV"
	EnvPort   = "LESSONPLANNER_APP_PORT"

	EnvDBDSN  = "LESSONPLANNER_DB_DSN"
	EnvDBHost = "LESSONPLANNER_DB_HOST"
	EnvDBUser = "LESSONPLANNER_DB_USER"
	EnvDBName = "LESSONPLANNER_DB_NAME"

	EnvGoogleClientID     = "LESSONPLANNER_GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "LESSONPLANNER_GOOGLE_CLIENT_SECRET"

	EnvOpenAIAPIKey = "LESSONPLANNER_OPENAI_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
