// internal/app/features/viewer/viewer.go

// Package viewer serves the public documentation site. Every request path is
// resolved against the page tree by walking slug segments, so pages have no
// registered routes of their own; the feature owns the catch-all.
package viewer

import (
	"html/template"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	pagestore "github.com/dalemusser/stratadocs/internal/app/store/pages"
	settingsstore "github.com/dalemusser/stratadocs/internal/app/store/settings"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/app/system/auth"
	"github.com/dalemusser/stratadocs/internal/app/system/authz"
	"github.com/dalemusser/stratadocs/internal/app/system/pageaccess"
	"github.com/dalemusser/stratadocs/internal/app/system/viewdata"
	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/stratadocs/internal/domain/pagetree"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves rendered documentation pages.
type Handler struct {
	pageStore     *pagestore.Store
	settingsStore *settingsstore.Store
	registry      *content.Registry
	evaluator     *pageaccess.Evaluator
	sessionMgr    *auth.SessionManager
	errPages      *errorsfeature.Handler
	errLog        *errorsfeature.ErrorLogger
	auditLogger   *auditlog.Logger
	logger        *zap.Logger
}

// NewHandler creates a new viewer Handler.
func NewHandler(
	db *mongo.Database,
	registry *content.Registry,
	evaluator *pageaccess.Evaluator,
	sessionMgr *auth.SessionManager,
	errPages *errorsfeature.Handler,
	errLog *errorsfeature.ErrorLogger,
	auditLogger *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		pageStore:     pagestore.New(db),
		settingsStore: settingsstore.New(db),
		registry:      registry,
		evaluator:     evaluator,
		sessionMgr:    sessionMgr,
		errPages:      errPages,
		errLog:        errLog,
		auditLogger:   auditLogger,
		logger:        logger,
	}
}

// Routes returns a chi.Router serving the site catch-all. POST handles the
// page password form, which submits back to the page's own URL.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/*", h.showPage)
	r.Post("/*", h.showPage)
	return r
}

// NavItem is one entry in the sidebar navigation. Path is the full
// slug path from the root.
type NavItem struct {
	Title    string
	Path     string
	Icon     string
	Active   bool
	Children []NavItem
}

// TabVM is one rendered tab of a tabbed page.
type TabVM struct {
	ID    string
	Title string
	HTML  template.HTML
}

// PageVM is the view model for a rendered documentation page.
type PageVM struct {
	viewdata.BaseVM
	Page        models.Page
	Layout      string
	ContentHTML template.HTML
	Tabs        []TabVM
	Breadcrumbs []models.Page
	Crumbpaths  []string // full paths aligned with Breadcrumbs
	Nav         []NavItem
	Children    []models.Page
	ChildPaths  []string
	IsPreview   bool // drafts and archived pages shown to editors
}

// PasswordVM is the view model for the page password form.
type PasswordVM struct {
	viewdata.BaseVM
	PageTitle string
	Hint      string
	Error     string
	ActionURL string
}

// showPage resolves the request path against the page tree and renders the
// page, the password form, or an error page as the access decision dictates.
func (h *Handler) showPage(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")

	// Redirects are checked before resolution so retired paths keep
	// working even when a page now occupies the old slug's spot.
	if target, ok := h.lookupRedirect(r, "/"+path); ok {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	pages, err := h.pageStore.GetAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load pages", err)
		h.errPages.InternalError(w, r)
		return
	}
	tree := pagetree.Build(pages)
	role, _, _, signedIn := authz.UserCtx(r)
	canPreview := signedIn && models.RoleSatisfies(role, models.RoleEditor)

	if path == "" {
		h.showHome(w, r, tree, canPreview)
		return
	}

	node, ok := tree.ResolvePath(strings.Split(path, "/"))
	if !ok {
		h.errPages.NotFound(w, r)
		return
	}
	page := node.Page

	// Drafts and archived pages are invisible to readers but render as a
	// preview for editors and admins.
	isPreview := page.Status != models.StatusPublished
	if isPreview && !canPreview {
		h.errPages.NotFound(w, r)
		return
	}

	viewer := pageaccess.Viewer{
		Authenticated: signedIn,
		Role:          role,
	}
	password := ""
	if page.PasswordProtected {
		token, err := h.sessionMgr.EnsureSessionToken(w, r)
		if err != nil {
			h.errLog.Log(r, "failed to establish session token", err)
			h.errPages.InternalError(w, r)
			return
		}
		viewer.SessionToken = token
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				h.errLog.Log(r, "failed to parse password form", err)
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}
			password = r.FormValue("page_password")
		}
	}

	decision := h.evaluator.Evaluate(page, viewer, password)
	switch decision.Outcome {
	case pageaccess.Granted:
		if password != "" {
			// Password just verified: audit it and finish with a
			// redirect so a refresh does not resubmit the form.
			actorID := ""
			if u, ok := auth.CurrentUser(r); ok {
				actorID = u.ID
			}
			h.auditLogger.PagePasswordVerified(r.Context(), r, actorID, page.ID)
			http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
			return
		}
	case pageaccess.AwaitingPassword:
		vm := PasswordVM{
			BaseVM:    viewdata.New(r),
			PageTitle: page.Title,
			Hint:      decision.PasswordHint,
			ActionURL: r.URL.Path,
		}
		vm.Title = page.Title
		if r.Method == http.MethodPost {
			vm.Error = "Incorrect password. Please try again."
		}
		templates.Render(w, r, "viewer/password", vm)
		return
	case pageaccess.DeniedLoginRequired:
		http.Redirect(w, r, "/login?return="+r.URL.Path, http.StatusSeeOther)
		return
	case pageaccess.DeniedInsufficientRole:
		h.errPages.Forbidden(w, r)
		return
	default:
		h.errPages.Forbidden(w, r)
		return
	}

	h.renderPage(w, r, tree, node, canPreview, isPreview)
}

// showHome sends visitors to the first published root page. A site with no
// visible pages renders a placeholder instead of a 404.
func (h *Handler) showHome(w http.ResponseWriter, r *http.Request, tree *pagetree.Tree, canPreview bool) {
	for _, root := range tree.Roots() {
		if root.Page.Status == models.StatusPublished || canPreview {
			http.Redirect(w, r, "/"+root.Page.Slug, http.StatusSeeOther)
			return
		}
	}

	vm := viewdata.New(r)
	vm.Title = vm.SiteName
	templates.Render(w, r, "viewer/empty", vm)
}

// renderPage builds the full page view model and renders it.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, tree *pagetree.Tree, node *pagetree.Node, canPreview, isPreview bool) {
	page := node.Page

	vm := PageVM{
		BaseVM:    viewdata.New(r),
		Page:      page,
		Layout:    page.EffectiveLayout(),
		Nav:       h.buildNav(tree, page.ID, canPreview),
		IsPreview: isPreview,
	}
	vm.Title = page.Title

	crumbs, err := tree.Breadcrumbs(page.ID)
	if err != nil {
		// A broken chain is a data problem, not a render problem; log it
		// and show the partial trail.
		h.logger.Warn("breadcrumb chain broken",
			zap.String("page_id", page.ID),
			zap.Error(err))
	}
	vm.Breadcrumbs = crumbs
	vm.Crumbpaths = crumbPaths(crumbs)

	if page.HasTabs() {
		for _, tab := range page.Tabs {
			vm.Tabs = append(vm.Tabs, TabVM{
				ID:    tab.ID,
				Title: tab.Title,
				HTML:  h.registry.RenderDocument(tab.Content),
			})
		}
	} else if page.Content != nil {
		vm.ContentHTML = h.registry.RenderDocument(*page.Content)
	}

	if page.LayoutConfig.ShowChildren || vm.Layout == models.LayoutLanding || vm.Layout == models.LayoutGrid {
		basePath := strings.Trim(r.URL.Path, "/")
		for _, child := range node.Children {
			if child.Page.Status != models.StatusPublished && !canPreview {
				continue
			}
			vm.Children = append(vm.Children, child.Page)
			vm.ChildPaths = append(vm.ChildPaths, "/"+basePath+"/"+child.Page.Slug)
		}
	}

	templates.Render(w, r, "viewer/page", vm)
}

// buildNav projects the tree into sidebar items, dropping unpublished pages
// for readers and computing full paths as it descends.
func (h *Handler) buildNav(tree *pagetree.Tree, activeID string, canPreview bool) []NavItem {
	var walk func(nodes []*pagetree.Node, prefix string) []NavItem
	walk = func(nodes []*pagetree.Node, prefix string) []NavItem {
		var items []NavItem
		for _, n := range nodes {
			if n.Page.Status != models.StatusPublished && !canPreview {
				continue
			}
			path := prefix + "/" + n.Page.Slug
			items = append(items, NavItem{
				Title:    n.Page.Title,
				Path:     path,
				Icon:     n.Page.Icon,
				Active:   n.Page.ID == activeID,
				Children: walk(n.Children, path),
			})
		}
		return items
	}
	return walk(tree.Roots(), "")
}

// lookupRedirect checks the configured redirects for the request path.
func (h *Handler) lookupRedirect(r *http.Request, path string) (string, bool) {
	settings, err := h.settingsStore.Get(r.Context())
	if err != nil || settings == nil {
		return "", false
	}
	for _, redirect := range settings.Redirects {
		if redirect.From == path {
			return redirect.To, true
		}
	}
	return "", false
}

// crumbPaths derives the full slug path for each breadcrumb entry.
func crumbPaths(crumbs []models.Page) []string {
	paths := make([]string, len(crumbs))
	prefix := ""
	for i, c := range crumbs {
		prefix = prefix + "/" + c.Slug
		paths[i] = prefix
	}
	return paths
}
