// internal/app/features/register/register.go
package register

import (
	"context"
	"errors"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratajobs/internal/app/features/errors"
	employerstore "github.com/dalemusser/stratajobs/internal/app/store/employers"
	userstore "github.com/dalemusser/stratajobs/internal/app/store/users"
	"github.com/dalemusser/stratajobs/internal/app/system/auth"
	"github.com/dalemusser/stratajobs/internal/app/system/authutil"
	"github.com/dalemusser/stratajobs/internal/app/system/authz"
	"github.com/dalemusser/stratajobs/internal/app/system/formutil"
	"github.com/dalemusser/stratajobs/internal/app/system/inputval"
	"github.com/dalemusser/stratajobs/internal/app/system/metrics"
	"github.com/dalemusser/stratajobs/internal/app/system/network"
	"github.com/dalemusser/stratajobs/internal/app/system/timeouts"
	"github.com/dalemusser/stratajobs/internal/app/system/txn"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the registration form.
type Handler struct {
	db         *mongo.Database
	users      *userstore.Store
	employers  *employerstore.Store
	sessionMgr *auth.SessionManager
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a registration Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		db:         db,
		users:      userstore.New(db),
		employers:  employerstore.New(db),
		sessionMgr: sessionMgr,
		errLog:     errLog,
		logger:     logger,
	}
}

// Input is the submitted registration form.
type Input struct {
	FirstName            string `form:"first_name" validate:"required,max=100" label:"First name"`
	LastName             string `form:"last_name" validate:"required,max=100" label:"Last name"`
	Email                string `form:"email" validate:"required,email,max=254" label:"Email"`
	Password             string `form:"password" validate:"required" label:"Password"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required" label:"Password confirmation"`
}

// VM is the view model for the registration page. Passwords are never
// echoed back.
type VM struct {
	formutil.Base
	FirstName     string
	LastName      string
	Email         string
	PasswordRules string
}

// Routes returns a chi.Router with registration routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.show)
	r.Post("/", h.submit)
	return r
}

func (h *Handler) newVM(r *http.Request, in Input) VM {
	return VM{
		Base:          formutil.NewBase(r, "Register", "/"),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		PasswordRules: authutil.PasswordRules(),
	}
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	if authz.IsLoggedIn(r) {
		http.Redirect(w, r, "/jobs", http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "register/index", h.newVM(r, Input{}))
}

// validate checks the form and returns per-field messages.
func validate(in Input) map[string]string {
	res := inputval.Validate(in)
	failed := res.ByField()

	if _, bad := failed["email"]; !bad && !inputval.IsValidEmail(in.Email) {
		res.Add("email", "Email", "A valid email address is required.")
	}
	if _, bad := failed["password"]; !bad {
		if err := authutil.ValidateNewPassword(in.Password, in.PasswordConfirmation); err != nil {
			if errors.Is(err, authutil.ErrPasswordMismatch) {
				res.Add("password_confirmation", "Password confirmation", err.Error())
			} else {
				res.Add("password", "Password", err.Error())
			}
		}
	}
	return res.ByField()
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := Input{
		FirstName:            strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:             strings.TrimSpace(r.PostFormValue("last_name")),
		Email:                strings.TrimSpace(r.PostFormValue("email")),
		Password:             r.PostFormValue("password"),
		PasswordConfirmation: r.PostFormValue("password_confirmation"),
	}

	vm := h.newVM(r, in)
	if errs := validate(in); len(errs) > 0 {
		vm.SetFieldErrors(errs)
		templates.Render(w, r, "register/index", vm)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	taken, err := h.users.LoginIDExists(ctx, in.Email)
	if err != nil {
		h.errLog.Log(r, "failed to check login id", err)
		h.renderUnavailable(w, r, vm)
		return
	}
	if taken {
		vm.SetFieldErrors(map[string]string{"email": "That email is already registered."})
		templates.Render(w, r, "register/index", vm)
		return
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		h.errLog.Log(r, "failed to hash password", err)
		h.renderUnavailable(w, r, vm)
		return
	}

	var user models.User
	err = txn.Run(ctx, h.db, h.logger, func(ctx context.Context) error {
		u, err := h.users.Create(ctx, models.User{
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			LoginID:      &in.Email,
			Email:        &in.Email,
			PasswordHash: &hash,
			Role:         models.RoleMember,
		})
		if err != nil {
			return err
		}
		if _, err := h.employers.Create(ctx, u.ID, u.FullName); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateLoginID) {
			vm.SetFieldErrors(map[string]string{"email": "That email is already registered."})
			templates.Render(w, r, "register/index", vm)
			return
		}
		h.errLog.Log(r, "failed to register user", err)
		h.renderUnavailable(w, r, vm)
		return
	}

	metrics.RegistrationsTotal.Inc()
	h.logger.Info("user registered", zap.String("user_id", user.ID.Hex()), network.IPField(r))

	if err := h.sessionMgr.CreateSession(w, r, auth.SessionUser{
		ID:      user.ID.Hex(),
		Name:    user.DisplayName(),
		LoginID: *user.LoginID,
		Role:    user.Role,
	}); err != nil {
		h.errLog.Log(r, "failed to create session after registration", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/jobs", http.StatusSeeOther)
}

func (h *Handler) renderUnavailable(w http.ResponseWriter, r *http.Request, vm VM) {
	vm.SetError("Registration is temporarily unavailable. Please try again.")
	templates.Render(w, r, "register/index", vm)
}
