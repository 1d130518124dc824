// internal/app/features/usersadmin/usersadmin.go

// Package usersadmin provides the JSON API for account management.
//
// Endpoints (mounted under /admin/api/users):
//   - GET    /      - list all users (password hashes are never serialized)
//   - POST   /      - create a user
//   - PUT    /{id}  - update a user
//   - DELETE /{id}  - delete a user
package usersadmin

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	userstore "github.com/dalemusser/stratadocs/internal/app/store/users"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/app/system/authutil"
	"github.com/dalemusser/stratadocs/internal/app/system/authz"
	"github.com/dalemusser/stratadocs/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadocs/internal/app/system/normalize"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles user admin API requests.
type Handler struct {
	userStore   *userstore.Store
	errLog      *errorsfeature.ErrorLogger
	auditLogger *auditlog.Logger
	logger      *zap.Logger
}

// NewHandler creates a new usersadmin Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, auditLogger *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		userStore:   userstore.New(db),
		errLog:      errLog,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// Routes returns a chi.Router with the user admin endpoints.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listUsers)
	r.Post("/", h.createUser)
	r.Put("/{id}", h.updateUser)
	r.Delete("/{id}", h.deleteUser)
	return r
}

// userRequest is the create/update payload. Password is plaintext input,
// hashed before storage.
type userRequest struct {
	LoginID  string `json:"loginId"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password,omitempty"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.GetAll(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to list users", err)
		jsonutil.InternalError(w, "failed to list users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	jsonutil.OK(w, users)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if req.LoginID == "" {
		jsonutil.BadRequest(w, "loginId is required")
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.errLog.Log(r, "failed to hash password", err)
		jsonutil.InternalError(w, "failed to create user")
		return
	}

	created, err := h.userStore.Create(r.Context(), models.User{
		LoginID:      req.LoginID,
		FullName:     req.FullName,
		Role:         req.Role,
		Status:       req.Status,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateLoginID) {
			jsonutil.Conflict(w, "login id is already taken")
			return
		}
		h.errLog.Log(r, "failed to create user", err)
		jsonutil.BadRequest(w, err.Error())
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.auditLogger.AdminEvent(r.Context(), r, audit.EventUserCreated, actorID, created.ID, map[string]string{
		"login_id": created.LoginID,
		"role":     created.Role,
	})

	jsonutil.Created(w, created)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req userRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	upd := userstore.UserUpdate{
		LoginID:  normalize.LoginID(req.LoginID),
		FullName: req.FullName,
		Role:     normalize.Role(req.Role),
		Status:   normalize.Status(req.Status),
	}
	if upd.Status == "" {
		upd.Status = models.UserStatusActive
	}
	if !models.IsValidRole(upd.Role) {
		jsonutil.BadRequest(w, "invalid role")
		return
	}
	if req.Password != "" {
		if err := authutil.ValidatePassword(req.Password); err != nil {
			jsonutil.BadRequest(w, err.Error())
			return
		}
		hash, err := authutil.HashPassword(req.Password)
		if err != nil {
			h.errLog.Log(r, "failed to hash password", err)
			jsonutil.InternalError(w, "failed to update user")
			return
		}
		upd.PasswordHash = &hash
	}

	// Admins cannot demote or disable themselves; that is how sites end up
	// with no working admin account.
	_, _, actorID, _ := authz.UserCtx(r)
	if id == actorID && (upd.Role != models.RoleAdmin || upd.Status != models.UserStatusActive) {
		jsonutil.BadRequest(w, "you cannot demote or disable your own account")
		return
	}

	if err := h.userStore.Update(r.Context(), id, upd); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			jsonutil.NotFound(w, "user not found")
			return
		}
		h.errLog.Log(r, "failed to update user", err)
		jsonutil.BadRequest(w, err.Error())
		return
	}

	h.auditLogger.AdminEvent(r.Context(), r, audit.EventUserUpdated, actorID, id, map[string]string{
		"login_id": upd.LoginID,
		"role":     upd.Role,
		"status":   upd.Status,
	})

	jsonutil.NoContent(w)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, _, actorID, _ := authz.UserCtx(r)
	if id == actorID {
		jsonutil.BadRequest(w, "you cannot delete your own account")
		return
	}

	deleted, err := h.userStore.Delete(r.Context(), id)
	if err != nil {
		h.errLog.Log(r, "failed to delete user", err)
		jsonutil.InternalError(w, "failed to delete user")
		return
	}
	if deleted == 0 {
		jsonutil.NotFound(w, "user not found")
		return
	}

	h.auditLogger.AdminEvent(r.Context(), r, audit.EventUserDeleted, actorID, id, nil)

	jsonutil.NoContent(w)
}
