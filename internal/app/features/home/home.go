// internal/app/features/home/home.go
package home

import (
	"context"
	"errors"
	"net/http"

	employerstore "github.com/dalemusser/stratajobs/internal/app/store/employers"
	jobstore "github.com/dalemusser/stratajobs/internal/app/store/jobs"
	"github.com/dalemusser/stratajobs/internal/app/system/authz"
	"github.com/dalemusser/stratajobs/internal/app/system/timeouts"
	"github.com/dalemusser/stratajobs/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides home page handlers.
type Handler struct {
	employers *employerstore.Store
	jobs      *jobstore.Store
	logger    *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		employers: employerstore.New(db),
		jobs:      jobstore.New(db),
		logger:    logger,
	}
}

// HomeVM is the view model for the home page.
type HomeVM struct {
	viewdata.BaseVM
	EmployerName string // empty when the visitor has no employer yet
	JobCount     int64
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the home page. Signed-in users with an employer also see
// how many jobs that employer has posted; a failed lookup only drops the
// summary.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	vm := HomeVM{BaseVM: viewdata.New(r)}
	vm.Title = "Welcome to " + vm.SiteName

	if actor := authz.ActorID(r); !actor.IsZero() {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		emp, err := h.employers.GetByUserID(ctx, actor)
		switch {
		case err == nil:
			vm.EmployerName = emp.Name
			n, err := h.jobs.CountByEmployer(ctx, emp.ID)
			if err != nil {
				h.logger.Warn("failed to count employer jobs", zap.String("employer_id", emp.ID.Hex()), zap.Error(err))
			}
			vm.JobCount = n
		case !errors.Is(err, employerstore.ErrNotFound):
			h.logger.Warn("failed to load employer for home page", zap.String("user_id", actor.Hex()), zap.Error(err))
		}
	}

	templates.Render(w, r, "home/index", vm)
}
