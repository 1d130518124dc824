// internal/app/features/settingsadmin/settingsadmin.go

// Package settingsadmin provides the JSON API for the site settings
// singleton.
//
// Endpoints (mounted under /admin/api/settings):
//   - GET /           - fetch current settings
//   - PUT /           - replace settings (branding SVG is sanitized)
//   - DELETE /branding - clear the branding SVG
package settingsadmin

import (
	"errors"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	settingsstore "github.com/dalemusser/stratadocs/internal/app/store/settings"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/app/system/authz"
	"github.com/dalemusser/stratadocs/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadocs/internal/app/system/svgsanitize"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles settings admin API requests.
type Handler struct {
	settingsStore *settingsstore.Store
	sanitizer     *svgsanitize.Sanitizer
	errLog        *errorsfeature.ErrorLogger
	auditLogger   *auditlog.Logger
	logger        *zap.Logger
}

// NewHandler creates a new settingsadmin Handler.
func NewHandler(
	db *mongo.Database,
	sanitizer *svgsanitize.Sanitizer,
	errLog *errorsfeature.ErrorLogger,
	auditLogger *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		settingsStore: settingsstore.New(db),
		sanitizer:     sanitizer,
		errLog:        errLog,
		auditLogger:   auditLogger,
		logger:        logger,
	}
}

// Routes returns a chi.Router with the settings admin endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.getSettings)
	r.Put("/", h.saveSettings)
	r.Delete("/branding", h.clearBranding)
	return r
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsStore.Get(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load settings", err)
		jsonutil.InternalError(w, "failed to load settings")
		return
	}
	jsonutil.OK(w, settings)
}

// saveSettings replaces the settings singleton. A branding SVG in the
// payload is sanitized here so viewdata can inline it without re-checking.
func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SiteSettings
	if err := jsonutil.Decode(r, &settings); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	settings.SiteName = strings.TrimSpace(settings.SiteName)
	if settings.SiteName == "" {
		settings.SiteName = models.DefaultSiteName
	}

	for i, redirect := range settings.Redirects {
		if !strings.HasPrefix(redirect.From, "/") || redirect.To == "" {
			jsonutil.BadRequest(w, "redirects need an absolute from path and a non-empty target")
			return
		}
		if redirect.From == redirect.To {
			jsonutil.BadRequest(w, "a redirect cannot point at itself")
			return
		}
		settings.Redirects[i].From = strings.TrimRight(redirect.From, "/")
	}

	if settings.BrandingSVG != "" {
		clean, err := h.sanitizer.Sanitize(settings.BrandingSVG)
		if err != nil {
			switch {
			case errors.Is(err, svgsanitize.ErrTooLarge):
				jsonutil.BadRequest(w, "branding svg exceeds the size limit")
			case errors.Is(err, svgsanitize.ErrNotSVG):
				jsonutil.BadRequest(w, "branding payload is not an svg document")
			default:
				jsonutil.BadRequest(w, err.Error())
			}
			return
		}
		settings.BrandingSVG = clean
	}

	if err := h.settingsStore.Save(r.Context(), settings); err != nil {
		h.errLog.Log(r, "failed to save settings", err)
		jsonutil.InternalError(w, "failed to save settings")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.AdminEvent(r.Context(), r, audit.EventSettingsUpdated, actorID, "", map[string]string{
		"site_name": settings.SiteName,
	})

	jsonutil.OK(w, settings)
}

func (h *Handler) clearBranding(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsStore.Get(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load settings", err)
		jsonutil.InternalError(w, "failed to load settings")
		return
	}

	settings.BrandingSVG = ""
	if err := h.settingsStore.Save(r.Context(), *settings); err != nil {
		h.errLog.Log(r, "failed to save settings", err)
		jsonutil.InternalError(w, "failed to save settings")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.AdminEvent(r.Context(), r, audit.EventSettingsUpdated, actorID, "", map[string]string{
		"branding": "cleared",
	})

	jsonutil.NoContent(w)
}
