// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/stratajobs/internal/app/system/authutil"
	"github.com/dalemusser/stratajobs/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATAJOBS"

// minSecretLength is the shortest session/CSRF key accepted in prod.
const minSecretLength = 32

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: STRATAJOBS_MONGO_URI, STRATAJOBS_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "stratajobs", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "stratajobs-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie max age (e.g., 24h, 720h, 30m)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Read-only JSON API
	{Name: "api_key", Default: "", Desc: "Bearer key for /api/jobs (leave empty to disable the API)"},
	{Name: "api_allowed_origins", Default: "", Desc: "Comma-separated CORS origins for the API (empty allows any)"},

	// Job board behavior
	{Name: "site_name", Default: "StrataJobs", Desc: "Site name shown in the page header"},
	{Name: "jobs_per_page", Default: 3, Desc: "Jobs per listing page"},
	{Name: "enforce_job_ownership", Default: true, Desc: "Only the employer's owning user may edit or delete a job"},
	{Name: "metrics_enabled", Default: true, Desc: "Serve Prometheus metrics at /metrics"},
	{Name: "query_timeout_short", Default: "5s", Desc: "Deadline for single-document reads and writes"},
	{Name: "query_timeout_medium", Default: "10s", Desc: "Deadline for listing queries"},

	// Admin seeding configuration
	{Name: "seed_admin_email", Default: "", Desc: "Email of admin user to create on startup"},
	{Name: "seed_admin_name", Default: "Admin", Desc: "Name of admin user to create on startup"},
	{Name: "seed_admin_password", Default: "", Desc: "Initial password for the seeded admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// Precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		APIKey:            appValues.String("api_key"),
		APIAllowedOrigins: splitList(appValues.String("api_allowed_origins")),

		SiteName:            appValues.String("site_name"),
		JobsPerPage:         appValues.Int("jobs_per_page"),
		EnforceJobOwnership: appValues.Bool("enforce_job_ownership"),
		MetricsEnabled:      appValues.Bool("metrics_enabled"),
		QueryTimeoutShort:   appValues.Duration("query_timeout_short", timeouts.DefaultShort),
		QueryTimeoutMedium:  appValues.Duration("query_timeout_medium", timeouts.DefaultMedium),

		SeedAdminEmail:    appValues.String("seed_admin_email"),
		SeedAdminName:     appValues.String("seed_admin_name"),
		SeedAdminPassword: appValues.String("seed_admin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateAppConfig(coreCfg.Env, appCfg); err != nil {
		logger.Error("invalid app config", zap.Error(err))
		return err
	}
	return nil
}

// validateAppConfig holds the checks that don't need WAFFLE.
func validateAppConfig(env string, appCfg AppConfig) error {
	var errs []error

	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		errs = append(errs, errors.New("mongo_database is required"))
	}
	if appCfg.JobsPerPage < 1 {
		errs = append(errs, fmt.Errorf("jobs_per_page must be at least 1, got %d", appCfg.JobsPerPage))
	}
	if appCfg.QueryTimeoutShort < 0 || appCfg.QueryTimeoutMedium < 0 {
		errs = append(errs, errors.New("query timeouts must not be negative"))
	}
	if env == "prod" {
		if len(appCfg.SessionKey) < minSecretLength {
			errs = append(errs, fmt.Errorf("session_key must be at least %d characters in prod", minSecretLength))
		}
		if len(appCfg.CSRFKey) < minSecretLength {
			errs = append(errs, fmt.Errorf("csrf_key must be at least %d characters in prod", minSecretLength))
		}
	}
	if appCfg.SeedAdminEmail != "" {
		if err := authutil.ValidatePassword(appCfg.SeedAdminPassword); err != nil {
			errs = append(errs, fmt.Errorf("seed_admin_password: %w", err))
		}
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
