// internal/app/features/backup/backup.go

// Package backup provides the JSON API for site backups and full-site
// export/import.
//
// Endpoints (mounted under /admin/api/backups):
//   - GET    /              - list backups (metadata only)
//   - POST   /              - create a backup of the current state
//   - POST   /{id}/restore  - restore a backup
//   - DELETE /{id}          - delete a backup
//   - GET    /export        - download the current state as JSON
//   - POST   /import        - replace the site from an exported snapshot
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	backupstore "github.com/dalemusser/stratadocs/internal/app/store/backups"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/app/system/authz"
	"github.com/dalemusser/stratadocs/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadocs/internal/app/system/timeouts"
	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxImportBytes caps the import payload. Snapshots are text-heavy but a
// whole site with inline SVG still fits comfortably.
const maxImportBytes = 32 << 20

// Handler handles backup and export/import API requests.
type Handler struct {
	db          *mongo.Database
	backupStore *backupstore.Store
	registry    *content.Registry
	errLog      *errorsfeature.ErrorLogger
	auditLogger *auditlog.Logger
	logger      *zap.Logger
}

// NewHandler creates a new backup Handler.
func NewHandler(
	db *mongo.Database,
	registry *content.Registry,
	errLog *errorsfeature.ErrorLogger,
	auditLogger *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		db:          db,
		backupStore: backupstore.New(db),
		registry:    registry,
		errLog:      errLog,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// Routes returns a chi.Router with the backup endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listBackups)
	r.Post("/", h.createBackup)
	r.Get("/export", h.exportSite)
	r.Post("/import", h.importSite)
	r.Post("/{id}/restore", h.restoreBackup)
	r.Delete("/{id}", h.deleteBackup)
	return r
}

func (h *Handler) listBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.backupStore.GetAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list backups", err)
		jsonutil.InternalError(w, "failed to list backups")
		return
	}
	if backups == nil {
		backups = []models.Backup{}
	}
	jsonutil.OK(w, backups)
}

func (h *Handler) createBackup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	// The body is optional; an unlabeled backup is fine.
	if err := jsonutil.Decode(r, &req); err != nil && !errors.Is(err, jsonutil.ErrEmptyBody) {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	snap, err := BuildSnapshot(ctx, h.db)
	if err != nil {
		h.errLog.Log(r, "failed to build snapshot", err)
		jsonutil.InternalError(w, "failed to create backup")
		return
	}

	created, err := h.backupStore.Insert(ctx, models.Backup{
		Label:    strings.TrimSpace(req.Label),
		Snapshot: snap,
	})
	if err != nil {
		h.errLog.Log(r, "failed to store backup", err)
		jsonutil.InternalError(w, "failed to create backup")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.AdminEvent(r.Context(), r, audit.EventBackupCreated, actorID, created.ID, map[string]string{
		"label": created.Label,
	})

	// Strip the snapshot from the response; listing stays metadata-only.
	created.Snapshot = models.Snapshot{}
	jsonutil.Created(w, created)
}

func (h *Handler) restoreBackup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	b, err := h.backupStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, backupstore.ErrNotFound) {
			jsonutil.NotFound(w, "backup not found")
			return
		}
		h.errLog.Log(r, "failed to load backup", err)
		jsonutil.InternalError(w, "failed to restore backup")
		return
	}

	if err := ValidateSnapshot(h.registry, b.Snapshot); err != nil {
		h.errLog.Log(r, "backup snapshot failed validation", err)
		jsonutil.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := ApplySnapshot(ctx, h.db, b.Snapshot); err != nil {
		h.errLog.Log(r, "failed to apply backup", err)
		jsonutil.InternalError(w, "failed to restore backup")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.AdminEvent(r.Context(), r, audit.EventBackupRestored, actorID, id, map[string]string{
		"label": b.Label,
	})

	jsonutil.OK(w, map[string]string{"restored": id})
}

func (h *Handler) deleteBackup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.backupStore.Delete(r.Context(), id)
	if err != nil {
		h.errLog.Log(r, "failed to delete backup", err)
		jsonutil.InternalError(w, "failed to delete backup")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "backup not found")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.AdminEvent(r.Context(), r, audit.EventBackupDeleted, actorID, id, nil)

	jsonutil.NoContent(w)
}

// exportSite streams the current site state as a JSON download.
func (h *Handler) exportSite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	snap, err := BuildSnapshot(ctx, h.db)
	if err != nil {
		h.errLog.Log(r, "failed to build export snapshot", err)
		jsonutil.InternalError(w, "failed to export site")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.AdminEvent(r.Context(), r, audit.EventSiteExported, actorID, "", nil)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="stratadocs-export.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		h.logger.Error("failed to encode export", zap.Error(err))
	}
}

// importSite replaces the whole site from an exported snapshot. The
// snapshot is validated in full before any collection is written.
func (h *Handler) importSite(w http.ResponseWriter, r *http.Request) {
	var snap models.Snapshot
	dec := json.NewDecoder(io.LimitReader(r.Body, maxImportBytes))
	if err := dec.Decode(&snap); err != nil {
		jsonutil.BadRequest(w, "invalid snapshot payload: "+err.Error())
		return
	}

	if err := ValidateSnapshot(h.registry, snap); err != nil {
		jsonutil.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	if err := ApplySnapshot(ctx, h.db, snap); err != nil {
		h.errLog.Log(r, "failed to apply import", err)
		jsonutil.InternalError(w, "failed to import site")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.AdminEvent(r.Context(), r, audit.EventSiteImported, actorID, "", map[string]string{
		"pages": strconv.Itoa(len(snap.Pages)),
	})

	jsonutil.OK(w, map[string]int{
		"pages": len(snap.Pages),
		"tags":  len(snap.Tags),
		"icons": len(snap.CustomIcons),
		"users": len(snap.Users),
	})
}
