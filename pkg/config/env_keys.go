package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "catalog"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv           = "CATALOG_APP_ENV"
	EnvPort             = "CATALOG_APP_PORT"
	EnvDBDSN            = "CATALOG_DB_DSN"
	EnvDBHost           = "CATALOG_DB_HOST"
	EnvDBUser           = "CATALOG_DB_USER"
	EnvDBName           = "CATALOG_DB_NAME"
	EnvStoragePublicURL = "CATALOG_STORAGE_PUBLIC_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
