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
	Storage      StorageConfig
	Catalog      CatalogConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"CATALOG_APP_ENV" required:"true"`
	Port         string `envconfig:"CATALOG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CATALOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CATALOG_DB_DSN"`
	Driver string `envconfig:"CATALOG_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CATALOG_DB_HOST"`
	LegacyPort     int    `envconfig:"CATALOG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CATALOG_DB_USER"`
	LegacyPassword string `envconfig:"CATALOG_DB_PASSWORD"`
	LegacyName     string `envconfig:"CATALOG_DB_NAME"`
	LegacySSLMode  string `envconfig:"CATALOG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CATALOG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CATALOG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// StorageConfig describes the public image store backing product assets.
type StorageConfig struct {
	// Root is the directory files are written under; the router also serves
	// it read-only at /storage/.
	Root string `envconfig:"CATALOG_STORAGE_ROOT" default:"storage/public"`
	// PublicBaseURL is the externally reachable prefix for stored paths,
	// e.g. http://localhost:8080/storage.
	PublicBaseURL string `envconfig:"CATALOG_STORAGE_PUBLIC_URL" required:"true"`
}

// CatalogConfig holds product listing and upload policy knobs.
type CatalogConfig struct {
	PageSize        int    `envconfig:"CATALOG_PAGE_SIZE" default:"12"`
	DefaultImage    string `envconfig:"CATALOG_DEFAULT_IMAGE" default:"products/default.jpg"`
	MaxImageSizeKB  int    `envconfig:"CATALOG_MAX_IMAGE_KB" default:"2048"`
	AllowedImageExt string `envconfig:"CATALOG_ALLOWED_IMAGE_EXT" default:"jpg,jpeg,png"`
}

// MaxImageBytes returns the upload bound in bytes.
func (c CatalogConfig) MaxImageBytes() int64 {
	return int64(c.MaxImageSizeKB) * 1024
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CATALOG_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CATALOG_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CATALOG_AUTO_MIGRATE" default:"false"`
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
