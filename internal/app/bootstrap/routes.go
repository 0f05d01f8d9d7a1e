// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/stratajobs/internal/app/features/errors"
	healthfeature "github.com/dalemusser/stratajobs/internal/app/features/health"
	homefeature "github.com/dalemusser/stratajobs/internal/app/features/home"
	jobsfeature "github.com/dalemusser/stratajobs/internal/app/features/jobs"
	jobsapifeature "github.com/dalemusser/stratajobs/internal/app/features/jobsapi"
	loginfeature "github.com/dalemusser/stratajobs/internal/app/features/login"
	logoutfeature "github.com/dalemusser/stratajobs/internal/app/features/logout"
	pagesfeature "github.com/dalemusser/stratajobs/internal/app/features/pages"
	registerfeature "github.com/dalemusser/stratajobs/internal/app/features/register"
	appresources "github.com/dalemusser/stratajobs/internal/app/resources"
	userstore "github.com/dalemusser/stratajobs/internal/app/store/users"
	"github.com/dalemusser/stratajobs/internal/app/system/auth"
	"github.com/dalemusser/stratajobs/internal/app/system/methodoverride"
	"github.com/dalemusser/stratajobs/internal/app/system/metrics"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed.
//
// Browser routes use session auth and CSRF. The JSON API under /api/jobs
// is read-only and authenticated by bearer key, so CSRF never blocks it.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Re-read the user on each request so disabled accounts lose access at once.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase, logger))

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	r.Use(metrics.Middleware)

	// HTML forms can only POST; _method turns them into PATCH/DELETE before routing.
	r.Use(methodoverride.Middleware)

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("stratajobs_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

	// ─────────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	if appCfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Public pages
	homeHandler := homefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	pagesHandler := pagesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Get("/about", pagesHandler.Show(models.PageSlugAbout, "About"))
	r.Get("/contact", pagesHandler.Show(models.PageSlugContact, "Contact"))
	r.Mount("/pages", pagesfeature.EditRoutes(pagesHandler, sessionMgr))

	// Job listings
	jobsHandler := jobsfeature.NewHandler(deps.MongoDatabase, jobsfeature.Config{
		PerPage:          appCfg.JobsPerPage,
		EnforceOwnership: appCfg.EnforceJobOwnership,
	}, errLog, logger)
	r.Mount("/jobs", jobsfeature.Routes(jobsHandler, sessionMgr))

	if !appCfg.EnforceJobOwnership {
		logger.Warn("job ownership checks are disabled; any signed-in user may edit any job")
	}

	// Read-only JSON API (only mounted when a key is configured)
	if appCfg.APIKey != "" {
		apiHandler := jobsapifeature.NewHandler(deps.MongoDatabase, appCfg.JobsPerPage, errLog)
		r.Mount("/api/jobs", jobsapifeature.Routes(apiHandler, appCfg.APIKey, appCfg.APIAllowedOrigins, logger))
	}

	// Authentication
	registerHandler := registerfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// 404 catch-all for unmatched routes
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
