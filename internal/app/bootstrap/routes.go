// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	auditadminfeature "github.com/dalemusser/stratadocs/internal/app/features/auditadmin"
	backupfeature "github.com/dalemusser/stratadocs/internal/app/features/backup"
	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	healthfeature "github.com/dalemusser/stratadocs/internal/app/features/health"
	iconsadminfeature "github.com/dalemusser/stratadocs/internal/app/features/iconsadmin"
	integrityfeature "github.com/dalemusser/stratadocs/internal/app/features/integrity"
	loginfeature "github.com/dalemusser/stratadocs/internal/app/features/login"
	logoutfeature "github.com/dalemusser/stratadocs/internal/app/features/logout"
	pagesadminfeature "github.com/dalemusser/stratadocs/internal/app/features/pagesadmin"
	settingsadminfeature "github.com/dalemusser/stratadocs/internal/app/features/settingsadmin"
	tagsadminfeature "github.com/dalemusser/stratadocs/internal/app/features/tagsadmin"
	usersadminfeature "github.com/dalemusser/stratadocs/internal/app/features/usersadmin"
	viewerfeature "github.com/dalemusser/stratadocs/internal/app/features/viewer"
	appresources "github.com/dalemusser/stratadocs/internal/app/resources"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	iconstore "github.com/dalemusser/stratadocs/internal/app/store/customicons"
	pagestore "github.com/dalemusser/stratadocs/internal/app/store/pages"
	userstore "github.com/dalemusser/stratadocs/internal/app/store/users"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/app/system/auth"
	"github.com/dalemusser/stratadocs/internal/app/system/pageaccess"
	"github.com/dalemusser/stratadocs/internal/app/system/svgsanitize"
	"github.com/dalemusser/stratadocs/internal/app/system/viewdata"
	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It creates the router, mounts feature
// routers, and adds route-specific middleware.
//
// Route layout:
//   - /admin/api/* - JSON management APIs (session auth, role-gated)
//   - /login, /logout - session authentication
//   - /health, /assets, /static - infrastructure
//   - /* - the public page viewer (catch-all, mounted last)
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. Role changes and disabled accounts take effect
	// immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db, logger))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Initialize viewdata with the database for settings loading.
	viewdata.Init(db)

	// Create error logger and error page handler.
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	// Create audit store and logger for security event tracking.
	auditStore := audit.New(db)
	auditLogger := auditlog.New(auditStore, logger, auditlog.Config{
		Auth:    appCfg.AuditLogAuth,
		Content: appCfg.AuditLogContent,
		Admin:   appCfg.AuditLogAdmin,
	})

	// Page access evaluation: role checks plus page password grants.
	// Startup creates the grant store; direct handler construction in tests
	// does not run Startup, so create one here if needed.
	if grantStore == nil {
		grantStore = pageaccess.NewGrantStore(appCfg.GrantTTL)
	}
	evaluator := pageaccess.New(grantStore, logger)

	// Block registry with live selectors so page links and icon references
	// resolve against current data.
	registry := content.NewRegistry(logger,
		content.WithPageSelector(pagestore.New(db)),
		content.WithIconSelector(iconstore.New(db)),
	)

	// SVG sanitizer for custom icons and the branding logo.
	sanitizer := svgsanitize.New(appCfg.SVGMaxBytes)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection middleware. The admin JSON APIs are session
	// authenticated, so they stay behind CSRF too; API clients send the
	// token in the X-CSRF-Token header.
	// Cookie name is "stratadocs_csrf" to avoid collisions with other
	// services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("stratadocs_csrf"),
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

	// ─────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Static assets with pre-compressed file support (gzip/brotli)
	// /static/* serves files from disk (static directory)
	r.Handle("/static/*", fileserver.Handler("/static", "static"))

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, auditLogger, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLogger, grantStore, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// ─────────────────────────────────────────────────────────────────────
	// Admin JSON APIs
	// Content management (pages, tags, icons) is open to editors and
	// admins; users, settings, backups, integrity, and the audit log are
	// admin only.
	// ─────────────────────────────────────────────────────────────────────
	r.Route("/admin/api", func(api chi.Router) {
		api.Group(func(cr chi.Router) {
			cr.Use(sessionMgr.RequireRole(models.RoleAdmin, models.RoleEditor))

			pagesHandler := pagesadminfeature.NewHandler(db, registry, errLog, auditLogger, logger)
			cr.Mount("/pages", pagesadminfeature.Routes(pagesHandler))

			tagsHandler := tagsadminfeature.NewHandler(db, errLog, auditLogger, logger)
			cr.Mount("/tags", tagsadminfeature.Routes(tagsHandler))

			iconsHandler := iconsadminfeature.NewHandler(db, sanitizer, errLog, auditLogger, logger)
			cr.Mount("/icons", iconsadminfeature.Routes(iconsHandler))
		})

		api.Group(func(ar chi.Router) {
			ar.Use(sessionMgr.RequireRole(models.RoleAdmin))

			usersHandler := usersadminfeature.NewHandler(db, errLog, auditLogger, logger)
			ar.Mount("/users", usersadminfeature.Routes(usersHandler))

			settingsHandler := settingsadminfeature.NewHandler(db, sanitizer, errLog, auditLogger, logger)
			ar.Mount("/settings", settingsadminfeature.Routes(settingsHandler))

			backupHandler := backupfeature.NewHandler(db, registry, errLog, auditLogger, logger)
			ar.Mount("/backups", backupfeature.Routes(backupHandler))

			integrityHandler := integrityfeature.NewHandler(db, registry, errLog, logger)
			ar.Mount("/integrity", integrityfeature.Routes(integrityHandler))

			auditHandler := auditadminfeature.NewHandler(db, errLog, logger)
			ar.Mount("/audit", auditadminfeature.Routes(auditHandler))
		})
	})

	// Public page viewer: resolves slug paths, redirects, page passwords.
	// Mounted last so every unmatched path falls through to it; the viewer
	// renders its own 404 for paths that resolve to nothing.
	viewerHandler := viewerfeature.NewHandler(db, registry, evaluator, sessionMgr, errorsHandler, errLog, auditLogger, logger)
	r.Mount("/", viewerfeature.Routes(viewerHandler))

	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
