// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, CORS, and request body limits.
// AppConfig is where everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: stratadocs-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Page password grant configuration
	// A verified page password grants the session access to that page until
	// the grant expires or the session signs out.
	GrantTTL time.Duration // Grant lifetime (default: 12h)

	// SVG upload limits (custom icons, branding logo)
	SVGMaxBytes int // Maximum accepted SVG payload in bytes (default: 51200)

	// Audit logging configuration
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	AuditLogAuth      string        // Authentication events (login, logout, page passwords)
	AuditLogContent   string        // Content events (page, tag, icon changes)
	AuditLogAdmin     string        // Admin actions (user CRUD, settings, backups)
	AuditLogRetention time.Duration // Delete audit events older than this (0 disables trimming)

	// Admin seeding configuration
	SeedAdminLoginID  string // Login id of the admin user to create on startup (if set)
	SeedAdminPassword string // Initial password for the seeded admin
	SeedAdminName     string // Display name of the seeded admin
}
