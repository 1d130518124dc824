// internal/app/features/tagsadmin/tagsadmin.go

// Package tagsadmin provides the JSON API for page tag management.
//
// Endpoints (mounted under /admin/api/tags):
//   - GET    /         - list all tags
//   - PUT    /         - create or update a tag
//   - DELETE /{label}  - delete a tag
package tagsadmin

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	tagstore "github.com/dalemusser/stratadocs/internal/app/store/tags"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/app/system/authz"
	"github.com/dalemusser/stratadocs/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadocs/internal/app/system/normalize"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles tag admin API requests.
type Handler struct {
	tagStore    *tagstore.Store
	errLog      *errorsfeature.ErrorLogger
	auditLogger *auditlog.Logger
	logger      *zap.Logger
}

// NewHandler creates a new tagsadmin Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, auditLogger *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		tagStore:    tagstore.New(db),
		errLog:      errLog,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// Routes returns a chi.Router with the tag admin endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listTags)
	r.Put("/", h.saveTag)
	r.Delete("/{label}", h.deleteTag)
	return r
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagStore.GetAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list tags", err)
		jsonutil.InternalError(w, "failed to list tags")
		return
	}
	if tags == nil {
		tags = []models.PageTag{}
	}
	jsonutil.OK(w, tags)
}

// saveTag upserts by label. Pages reference tags by label, so tags have no
// separate id to address.
func (h *Handler) saveTag(w http.ResponseWriter, r *http.Request) {
	var tag models.PageTag
	if err := jsonutil.Decode(r, &tag); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	tag.Label = normalize.Label(tag.Label)
	if tag.Label == "" {
		jsonutil.BadRequest(w, "label is required")
		return
	}

	if err := h.tagStore.Upsert(r.Context(), tag); err != nil {
		h.errLog.Log(r, "failed to save tag", err)
		jsonutil.InternalError(w, "failed to save tag")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.ContentEvent(r.Context(), r, audit.EventTagSaved, actorID, tag.Label, nil)

	jsonutil.OK(w, tag)
}

// deleteTag removes the tag record. Pages referencing the label keep it;
// the reference is weak and simply stops resolving to a color.
func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	label := normalize.Label(chi.URLParam(r, "label"))

	deleted, err := h.tagStore.Delete(r.Context(), label)
	if err != nil {
		h.errLog.Log(r, "failed to delete tag", err)
		jsonutil.InternalError(w, "failed to delete tag")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "tag not found")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.ContentEvent(r.Context(), r, audit.EventTagDeleted, actorID, label, nil)

	jsonutil.NoContent(w)
}
