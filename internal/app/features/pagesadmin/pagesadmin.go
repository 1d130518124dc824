// internal/app/features/pagesadmin/pagesadmin.go

// Package pagesadmin provides the JSON API for page management.
//
// Endpoints (mounted under /admin/api/pages):
//   - GET    /       - list all pages
//   - GET    /{id}   - fetch one page
//   - POST   /       - create a page
//   - PUT    /{id}   - replace a page
//   - DELETE /{id}   - delete a page and its descendants
package pagesadmin

import (
	"errors"
	"fmt"
	"net/http"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	pagestore "github.com/dalemusser/stratadocs/internal/app/store/pages"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/app/system/authz"
	"github.com/dalemusser/stratadocs/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadocs/internal/app/system/normalize"
	"github.com/dalemusser/stratadocs/internal/app/system/pageaccess"
	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/stratadocs/internal/domain/pagetree"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles page admin API requests.
type Handler struct {
	pageStore   *pagestore.Store
	registry    *content.Registry
	errLog      *errorsfeature.ErrorLogger
	auditLogger *auditlog.Logger
	logger      *zap.Logger
}

// NewHandler creates a new pagesadmin Handler.
func NewHandler(
	db *mongo.Database,
	registry *content.Registry,
	errLog *errorsfeature.ErrorLogger,
	auditLogger *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		pageStore:   pagestore.New(db),
		registry:    registry,
		errLog:      errLog,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// Routes returns a chi.Router with the page admin endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listPages)
	r.Post("/", h.createPage)
	r.Get("/{id}", h.getPage)
	r.Put("/{id}", h.updatePage)
	r.Delete("/{id}", h.deletePage)
	return r
}

// pageRequest is the create/update payload. The plaintext Password field is
// hashed before storage and never persisted; RemovePassword clears page
// protection on update.
type pageRequest struct {
	models.Page
	Password       string `json:"password,omitempty"`
	RemovePassword bool   `json:"removePassword,omitempty"`
}

func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pageStore.GetAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list pages", err)
		jsonutil.InternalError(w, "failed to list pages")
		return
	}
	if pages == nil {
		pages = []models.Page{}
	}
	jsonutil.OK(w, pages)
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pagestore.ErrNotFound) {
			jsonutil.NotFound(w, "page not found")
			return
		}
		h.errLog.Log(r, "failed to load page", err)
		jsonutil.InternalError(w, "failed to load page")
		return
	}
	jsonutil.OK(w, page)
}

func (h *Handler) createPage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	req.Page.ID = "" // ids are assigned by the store

	page, errMsg := h.preparePage(r, req, models.Page{})
	if errMsg != "" {
		jsonutil.BadRequest(w, errMsg)
		return
	}

	created, err := h.pageStore.Insert(r.Context(), page)
	if err != nil {
		h.errLog.Log(r, "failed to create page", err)
		jsonutil.InternalError(w, "failed to create page")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.ContentEvent(r.Context(), r, audit.EventPageCreated, actorID, created.ID, map[string]string{
		"title": created.Title,
		"slug":  created.Slug,
	})

	jsonutil.Created(w, created)
}

func (h *Handler) updatePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.pageStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pagestore.ErrNotFound) {
			jsonutil.NotFound(w, "page not found")
			return
		}
		h.errLog.Log(r, "failed to load page", err)
		jsonutil.InternalError(w, "failed to load page")
		return
	}

	var req pageRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	req.Page.ID = id

	page, errMsg := h.preparePage(r, req, existing)
	if errMsg != "" {
		jsonutil.BadRequest(w, errMsg)
		return
	}

	if err := h.pageStore.Replace(r.Context(), page); err != nil {
		if errors.Is(err, pagestore.ErrNotFound) {
			jsonutil.NotFound(w, "page not found")
			return
		}
		h.errLog.Log(r, "failed to update page", err)
		jsonutil.InternalError(w, "failed to update page")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.ContentEvent(r.Context(), r, audit.EventPageUpdated, actorID, id, map[string]string{
		"title": page.Title,
		"slug":  page.Slug,
	})

	jsonutil.OK(w, page)
}

func (h *Handler) deletePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pages, err := h.pageStore.GetAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load pages", err)
		jsonutil.InternalError(w, "failed to delete page")
		return
	}
	found := false
	for _, p := range pages {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		jsonutil.NotFound(w, "page not found")
		return
	}

	// Deleting a page takes its whole subtree with it; descendants must not
	// become orphans.
	descendants := pagetree.Descendants(pages, id)
	deleted, err := h.pageStore.Delete(r.Context(), id, descendants)
	if err != nil {
		h.errLog.Log(r, "failed to delete page", err)
		jsonutil.InternalError(w, "failed to delete page")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.ContentEvent(r.Context(), r, audit.EventPageDeleted, actorID, id, map[string]string{
		"deleted_count": fmt.Sprintf("%d", deleted),
	})

	jsonutil.OK(w, map[string]int64{"deleted": deleted})
}

// preparePage validates a request against the content and tree rules and
// resolves the password fields. It returns the page to persist, or a
// non-empty error message for the client.
func (h *Handler) preparePage(r *http.Request, req pageRequest, existing models.Page) (models.Page, string) {
	page := req.Page
	page.Title = normalize.Label(page.Title)
	page.Slug = normalize.Slug(page.Slug)

	if page.Title == "" {
		return page, "title is required"
	}
	if page.Status == "" {
		page.Status = models.StatusDraft
	}
	if !models.IsValidStatus(page.Status) {
		return page, "invalid status"
	}
	if page.Visibility == "" {
		page.Visibility = models.VisibilityPublic
	}
	if !models.IsValidVisibility(page.Visibility) {
		return page, "invalid visibility"
	}
	if page.Visibility == models.VisibilityRoleRestricted && !models.IsValidRole(page.RequiredRole) {
		return page, "role-restricted pages need a valid required role"
	}
	if !models.IsValidLayout(page.Layout) {
		return page, "invalid layout"
	}
	if page.HasTabs() && page.Content != nil && !page.Content.Empty() {
		return page, "a page cannot have both content and tabs"
	}

	if page.Content != nil {
		if err := h.registry.ValidateDocument(*page.Content); err != nil {
			return page, err.Error()
		}
	}
	for _, tab := range page.Tabs {
		if tab.Title == "" {
			return page, "every tab needs a title"
		}
		if err := h.registry.ValidateDocument(tab.Content); err != nil {
			return page, fmt.Sprintf("tab %q: %v", tab.Title, err)
		}
	}

	pages, err := h.pageStore.GetAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load pages for validation", err)
		return page, "failed to validate page"
	}
	if err := pagetree.ValidateUpsert(pages, page); err != nil {
		return page, err.Error()
	}

	// Password handling. The hash never travels in JSON, so updates carry
	// the existing hash forward unless explicitly replaced or removed.
	page.PasswordHash = existing.PasswordHash
	switch {
	case req.RemovePassword:
		page.PasswordProtected = false
		page.PasswordHash = ""
		page.PasswordHint = ""
	case req.Password != "":
		if err := pageaccess.ValidatePassword(req.Password); err != nil {
			return page, err.Error()
		}
		hash, err := pageaccess.HashPassword(req.Password)
		if err != nil {
			h.errLog.Log(r, "failed to hash page password", err)
			return page, "failed to set page password"
		}
		page.PasswordProtected = true
		page.PasswordHash = hash
	case page.PasswordProtected && page.PasswordHash == "":
		return page, "password-protected pages need a password"
	}

	return page, ""
}
