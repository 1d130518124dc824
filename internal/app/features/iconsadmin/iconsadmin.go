// internal/app/features/iconsadmin/iconsadmin.go

// Package iconsadmin provides the JSON API for custom icon management.
//
// Endpoints (mounted under /admin/api/icons):
//   - GET    /      - list all icons
//   - POST   /      - upload an icon (SVG is sanitized before storage)
//   - DELETE /{id}  - delete an icon
package iconsadmin

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	iconstore "github.com/dalemusser/stratadocs/internal/app/store/customicons"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/app/system/authz"
	"github.com/dalemusser/stratadocs/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadocs/internal/app/system/normalize"
	"github.com/dalemusser/stratadocs/internal/app/system/svgsanitize"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles icon admin API requests.
type Handler struct {
	iconStore   *iconstore.Store
	sanitizer   *svgsanitize.Sanitizer
	errLog      *errorsfeature.ErrorLogger
	auditLogger *auditlog.Logger
	logger      *zap.Logger
}

// NewHandler creates a new iconsadmin Handler.
func NewHandler(
	db *mongo.Database,
	sanitizer *svgsanitize.Sanitizer,
	errLog *errorsfeature.ErrorLogger,
	auditLogger *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		iconStore:   iconstore.New(db),
		sanitizer:   sanitizer,
		errLog:      errLog,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// Routes returns a chi.Router with the icon admin endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listIcons)
	r.Post("/", h.uploadIcon)
	r.Delete("/{id}", h.deleteIcon)
	return r
}

func (h *Handler) listIcons(w http.ResponseWriter, r *http.Request) {
	icons, err := h.iconStore.GetAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list icons", err)
		jsonutil.InternalError(w, "failed to list icons")
		return
	}
	if icons == nil {
		icons = []models.CustomIcon{}
	}
	jsonutil.OK(w, icons)
}

// uploadIcon stores a new icon. The SVG is sanitized here, on the way in;
// everything downstream (rendering, export) treats stored SVG as safe.
func (h *Handler) uploadIcon(w http.ResponseWriter, r *http.Request) {
	var icon models.CustomIcon
	if err := jsonutil.Decode(r, &icon); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	icon.Name = normalize.Slug(icon.Name)
	icon.Category = normalize.Label(icon.Category)
	if icon.Name == "" {
		jsonutil.BadRequest(w, "name is required")
		return
	}

	clean, err := h.sanitizer.Sanitize(icon.SVG)
	if err != nil {
		switch {
		case errors.Is(err, svgsanitize.ErrTooLarge):
			jsonutil.BadRequest(w, "svg exceeds the size limit")
		case errors.Is(err, svgsanitize.ErrNotSVG):
			jsonutil.BadRequest(w, "payload is not an svg document")
		default:
			jsonutil.BadRequest(w, err.Error())
		}
		return
	}
	icon.SVG = clean

	created, err := h.iconStore.Create(r.Context(), icon)
	if err != nil {
		if errors.Is(err, iconstore.ErrDuplicateName) {
			jsonutil.Conflict(w, "an icon with this name already exists")
			return
		}
		h.errLog.Log(r, "failed to create icon", err)
		jsonutil.InternalError(w, "failed to create icon")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.ContentEvent(r.Context(), r, audit.EventIconUploaded, actorID, created.ID, map[string]string{
		"name": created.Name,
	})

	jsonutil.Created(w, created)
}

// deleteIcon removes the icon record. Icon blocks keep their inline SVG
// copy, so pages that used the icon keep rendering.
func (h *Handler) deleteIcon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.iconStore.Delete(r.Context(), id)
	if err != nil {
		h.errLog.Log(r, "failed to delete icon", err)
		jsonutil.InternalError(w, "failed to delete icon")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "icon not found")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.ContentEvent(r.Context(), r, audit.EventIconDeleted, actorID, id, nil)

	jsonutil.NoContent(w)
}
