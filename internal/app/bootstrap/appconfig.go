// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers the framework-level settings (ports, TLS,
// logging, CORS, body limits, DB timeouts). Everything specific to the job
// board lives here and is passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: stratajobs-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Read-only JSON API. Empty disables /api/jobs entirely.
	APIKey            string
	APIAllowedOrigins []string // CORS origins for the API; empty allows any

	// Site and listing behavior
	SiteName            string
	JobsPerPage         int  // page size for /jobs and /api/jobs (default: 3)
	EnforceJobOwnership bool // only the employer's owning user may edit (default: true)

	// Prometheus exposition at /metrics
	MetricsEnabled bool

	// Deadlines around store calls (zero keeps the package default)
	QueryTimeoutShort  time.Duration
	QueryTimeoutMedium time.Duration

	// Admin seeding configuration
	SeedAdminEmail    string // Email of the admin user to create on startup (if set)
	SeedAdminName     string // Name of the admin user to create on startup
	SeedAdminPassword string // Initial password; required when SeedAdminEmail is set
}
