// internal/app/features/integrity/integrity.go

// Package integrity provides the content integrity report for admins.
//
// Endpoints (mounted under /admin/api/integrity):
//   - GET / - report orphaned pages and unknown block types
package integrity

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	pagestore "github.com/dalemusser/stratadocs/internal/app/store/pages"
	"github.com/dalemusser/stratadocs/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/pagetree"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles integrity report requests.
type Handler struct {
	pageStore *pagestore.Store
	registry  *content.Registry
	errLog    *errorsfeature.ErrorLogger
	logger    *zap.Logger
}

// NewHandler creates a new integrity Handler.
func NewHandler(db *mongo.Database, registry *content.Registry, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		pageStore: pagestore.New(db),
		registry:  registry,
		errLog:    errLog,
		logger:    logger,
	}
}

// Routes returns a chi.Router with the integrity endpoint.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.report)
	return r
}

// Report is the integrity check result. Orphans are pages whose parent no
// longer exists; unknown block types render as fallbacks but are worth
// surfacing so editors know content is invisible on this instance.
type Report struct {
	PageCount         int                 `json:"pageCount"`
	OrphanCount       int                 `json:"orphanCount"`
	OrphanIDs         []string            `json:"orphanIds,omitempty"`
	UnknownBlockTypes map[string][]string `json:"unknownBlockTypes,omitempty"` // page id -> types
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pageStore.GetAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load pages", err)
		jsonutil.InternalError(w, "failed to run integrity check")
		return
	}

	tree := pagetree.Build(pages)
	report := Report{
		PageCount:   len(pages),
		OrphanCount: tree.OrphanCount(),
		OrphanIDs:   tree.OrphanIDs(),
	}

	for _, p := range pages {
		var unknown []string
		if p.Content != nil {
			unknown = append(unknown, h.registry.UnknownTypes(*p.Content)...)
		}
		for _, tab := range p.Tabs {
			unknown = append(unknown, h.registry.UnknownTypes(tab.Content)...)
		}
		if len(unknown) > 0 {
			if report.UnknownBlockTypes == nil {
				report.UnknownBlockTypes = make(map[string][]string)
			}
			report.UnknownBlockTypes[p.ID] = dedupe(unknown)
		}
	}

	jsonutil.OK(w, report)
}

func dedupe(types []string) []string {
	seen := make(map[string]struct{}, len(types))
	var out []string
	for _, t := range types {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
