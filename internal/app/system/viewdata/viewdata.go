// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"context"
	"html/template"
	"net/http"

	settingsstore "github.com/dalemusser/stratadocs/internal/app/store/settings"
	"github.com/dalemusser/stratadocs/internal/app/system/auth"
	"github.com/dalemusser/stratadocs/internal/app/system/authz"
	"github.com/dalemusser/stratadocs/internal/app/system/timeouts"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/mongo"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
type BaseVM struct {
	// Site settings (from database)
	SiteName    string
	Description string
	BrandingSVG template.HTML

	// User context (from auth middleware)
	IsLoggedIn bool
	UserID     string
	LoginID    string
	Role       string
	IsAdmin    bool
	IsEditor   bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

// globalDB is set by Init and used by New() to load settings.
var globalDB *mongo.Database

// Init sets the database for viewdata.
// Call this once at startup from bootstrap.
func Init(db *mongo.Database) {
	globalDB = db
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - db: database for loading site settings (can be nil for defaults)
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, db *mongo.Database, title, backDefault string) BaseVM {
	vm := newUserVM(r)
	vm.Title = title
	vm.BackURL = httpnav.ResolveBackURL(r, backDefault)
	loadSettings(r, db, &vm)
	return vm
}

// New creates a BaseVM with site settings loaded from the database set in
// Init. This is the standard way to create a BaseVM for most handlers.
func New(r *http.Request) BaseVM {
	vm := newUserVM(r)
	loadSettings(r, globalDB, &vm)
	return vm
}

func newUserVM(r *http.Request) BaseVM {
	role, _, userID, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    models.DefaultSiteName,
		IsLoggedIn:  signedIn,
		UserID:      userID,
		Role:        role,
		IsAdmin:     signedIn && role == models.RoleAdmin,
		IsEditor:    signedIn && models.RoleSatisfies(role, models.RoleEditor),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if signedIn {
		if user, ok := auth.CurrentUser(r); ok {
			vm.LoginID = user.LoginID
		}
	}
	return vm
}

func loadSettings(r *http.Request, db *mongo.Database, vm *BaseVM) {
	if db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	store := settingsstore.New(db)
	settings, err := store.Get(ctx)
	if err != nil || settings == nil {
		return
	}
	vm.SiteName = settings.SiteName
	vm.Description = settings.Description
	// BrandingSVG was sanitized on upload; safe to inline.
	vm.BrandingSVG = template.HTML(settings.BrandingSVG)
}

// GetSiteName returns the site name from settings, or the default if not available.
func GetSiteName(ctx context.Context, db *mongo.Database) string {
	if db == nil {
		return models.DefaultSiteName
	}

	store := settingsstore.New(db)
	settings, err := store.Get(ctx)
	if err != nil || settings == nil {
		return models.DefaultSiteName
	}
	return settings.SiteName
}

// GetSettings returns the full site settings, or defaults if not available.
func GetSettings(ctx context.Context, db *mongo.Database) models.SiteSettings {
	if db == nil {
		return models.SiteSettings{SiteName: models.DefaultSiteName}
	}

	store := settingsstore.New(db)
	settings, err := store.Get(ctx)
	if err != nil || settings == nil {
		return models.SiteSettings{SiteName: models.DefaultSiteName}
	}
	return *settings
}
