// internal/app/features/auditadmin/auditadmin.go

// Package auditadmin provides the JSON API for browsing the audit log.
//
// Endpoints (mounted under /admin/api/audit):
//   - GET / - query events, filterable by category, event type, actor,
//     target, and limit
package auditadmin

import (
	"net/http"
	"strconv"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	"github.com/dalemusser/stratadocs/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadocs/internal/app/system/normalize"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles audit log API requests.
type Handler struct {
	auditStore *audit.Store
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new auditadmin Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		auditStore: audit.New(db),
		errLog:     errLog,
		logger:     logger,
	}
}

// Routes returns a chi.Router with the audit log endpoint.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listEvents)
	return r
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := audit.QueryFilter{
		Category:  normalize.QueryParam(q.Get("category")),
		EventType: normalize.QueryParam(q.Get("event_type")),
		ActorID:   normalize.QueryParam(q.Get("actor_id")),
		TargetID:  normalize.QueryParam(q.Get("target_id")),
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			jsonutil.BadRequest(w, "limit must be a positive integer")
			return
		}
		filter.Limit = int64(n)
	}
	if page := q.Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			jsonutil.BadRequest(w, "page must be a positive integer")
			return
		}
		filter.Page = int64(n)
	}

	events, err := h.auditStore.Query(r.Context(), filter)
	if err != nil {
		h.errLog.Log(r, "failed to query audit log", err)
		jsonutil.InternalError(w, "failed to query audit log")
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	jsonutil.OK(w, events)
}
