// internal/app/features/login/login.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The stable string id (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/stratadocs/internal/app/features/errors"
	"github.com/dalemusser/stratadocs/internal/app/store/audit"
	userstore "github.com/dalemusser/stratadocs/internal/app/store/users"
	"github.com/dalemusser/stratadocs/internal/app/system/auditlog"
	"github.com/dalemusser/stratadocs/internal/app/system/auth"
	"github.com/dalemusser/stratadocs/internal/app/system/authutil"
	"github.com/dalemusser/stratadocs/internal/app/system/viewdata"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides login handlers.
type Handler struct {
	userStore   *userstore.Store
	sessionMgr  *auth.SessionManager
	errLog      *errorsfeature.ErrorLogger
	auditLogger *auditlog.Logger
	logger      *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *errorsfeature.ErrorLogger,
	auditLogger *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		userStore:   userstore.New(db),
		sessionMgr:  sessionMgr,
		errLog:      errLog,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	viewdata.BaseVM
	Error     string
	LoginID   string
	ReturnURL string
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showLogin)
	r.Post("/", h.handleLogin)
	return r
}

// showLogin displays the login form.
func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	// Already signed in? Go home.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	vm := LoginVM{
		BaseVM:    viewdata.New(r),
		ReturnURL: query.Get(r, "return"),
	}
	vm.Title = "Login"

	templates.Render(w, r, "login/index", vm)
}

// handleLogin checks the login_id/password pair and creates a session.
//
// All credential failures render the same "Invalid credentials" message so
// the form cannot be used to enumerate accounts; the audit log records the
// real reason.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	loginID := r.FormValue("login_id")
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	if loginID == "" || password == "" {
		h.renderError(w, r, "Please enter your Login ID and password", loginID, returnURL)
		return
	}

	user, err := h.userStore.GetByLoginID(r.Context(), loginID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.auditLogger.LoginFailed(r.Context(), r, audit.EventLoginFailedUserNotFound, loginID, "user not found")
			h.renderError(w, r, "Invalid credentials", loginID, returnURL)
			return
		}
		h.errLog.Log(r, "database error during login lookup", err)
		h.renderError(w, r, "Service temporarily unavailable. Please try again.", loginID, returnURL)
		return
	}

	if user.Status != models.UserStatusActive {
		h.auditLogger.LoginFailed(r.Context(), r, audit.EventLoginFailedUserDisabled, loginID, "user disabled")
		h.renderError(w, r, "Account is disabled", loginID, returnURL)
		return
	}

	if user.PasswordHash == "" || !authutil.CheckPassword(password, user.PasswordHash) {
		h.auditLogger.LoginFailed(r.Context(), r, audit.EventLoginFailedWrongPassword, loginID, "wrong password")
		h.renderError(w, r, "Invalid credentials", loginID, returnURL)
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.errLog.Log(r, "failed to generate session token", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := h.sessionMgr.CreateSession(w, r, user.ID, user.Role, token); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.auditLogger.LoginSuccess(r.Context(), r, user.ID, user.LoginID)

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/"), http.StatusSeeOther)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, msg, loginID, returnURL string) {
	vm := LoginVM{
		BaseVM:    viewdata.New(r),
		Error:     msg,
		LoginID:   loginID,
		ReturnURL: returnURL,
	}
	vm.Title = "Login"
	templates.Render(w, r, "login/index", vm)
}
