// internal/app/features/login/login.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in (their email)

import (
	"context"
	"errors"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratajobs/internal/app/features/errors"
	userstore "github.com/dalemusser/stratajobs/internal/app/store/users"
	"github.com/dalemusser/stratajobs/internal/app/system/auth"
	"github.com/dalemusser/stratajobs/internal/app/system/authutil"
	"github.com/dalemusser/stratajobs/internal/app/system/network"
	"github.com/dalemusser/stratajobs/internal/app/system/timeouts"
	"github.com/dalemusser/stratajobs/internal/app/system/viewdata"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const msgInvalid = "Invalid email or password."

// Handler provides login handlers.
type Handler struct {
	userStore  *userstore.Store
	sessionMgr *auth.SessionManager
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		userStore:  userstore.New(db),
		sessionMgr: sessionMgr,
		errLog:     errLog,
		logger:     logger,
	}
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.showLogin)
	r.Post("/", h.handleLogin)
	return r
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, email, returnURL, errMsg string) {
	vm := LoginVM{
		BaseVM:    viewdata.New(r),
		Error:     errMsg,
		Email:     email,
		ReturnURL: returnURL,
	}
	vm.Title = "Log In"
	templates.Render(w, r, "login/index", vm)
}

// showLogin displays the login form.
func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	errMsg := ""
	if query.Get(r, "error") == "account_disabled" {
		errMsg = "Account is disabled."
	}
	h.render(w, r, "", query.Get(r, "return"), errMsg)
}

// handleLogin checks the email and password and starts a session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	returnURL := r.PostFormValue("return")

	if email == "" || password == "" {
		h.render(w, r, email, returnURL, "Please enter your email and password.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.userStore.GetByLoginID(ctx, email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.logger.Info("login failed: unknown user", zap.String("login_id", email), network.IPField(r))
			h.render(w, r, email, returnURL, msgInvalid)
			return
		}
		h.errLog.Log(r, "database error during login lookup", err)
		h.render(w, r, email, returnURL, "Service temporarily unavailable. Please try again.")
		return
	}

	if user.PasswordHash == nil || !authutil.CheckPassword(password, *user.PasswordHash) {
		h.logger.Info("login failed: wrong password", zap.String("user_id", user.ID.Hex()), network.IPField(r))
		h.render(w, r, email, returnURL, msgInvalid)
		return
	}

	if user.Status != models.StatusActive {
		h.logger.Info("login failed: user disabled", zap.String("user_id", user.ID.Hex()), network.IPField(r))
		h.render(w, r, email, returnURL, "Account is disabled.")
		return
	}

	loginID := ""
	if user.LoginID != nil {
		loginID = *user.LoginID
	}
	if err := h.sessionMgr.CreateSession(w, r, auth.SessionUser{
		ID:      user.ID.Hex(),
		Name:    user.DisplayName(),
		LoginID: loginID,
		Role:    user.Role,
	}); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		h.logger.Warn("failed to record last login", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}

	h.logger.Info("login succeeded", zap.String("user_id", user.ID.Hex()), network.IPField(r))
	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/jobs"), http.StatusSeeOther)
}
