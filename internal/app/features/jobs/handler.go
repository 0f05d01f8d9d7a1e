// internal/app/features/jobs/handler.go
package jobsfeature

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	errorsfeature "github.com/dalemusser/stratajobs/internal/app/features/errors"
	employerstore "github.com/dalemusser/stratajobs/internal/app/store/employers"
	jobstore "github.com/dalemusser/stratajobs/internal/app/store/jobs"
	"github.com/dalemusser/stratajobs/internal/app/system/auth"
	"github.com/dalemusser/stratajobs/internal/app/system/authz"
	"github.com/dalemusser/stratajobs/internal/app/system/formutil"
	"github.com/dalemusser/stratajobs/internal/app/system/metrics"
	"github.com/dalemusser/stratajobs/internal/app/system/timeouts"
	"github.com/dalemusser/stratajobs/internal/app/system/viewdata"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Config holds the jobs feature settings taken from app config.
type Config struct {
	PerPage          int
	EnforceOwnership bool
}

// Handler serves the job listing pages and forms.
type Handler struct {
	jobs      *jobstore.Store
	employers *employerstore.Store
	cfg       Config
	errLog    *errorsfeature.ErrorLogger
	errPages  *errorsfeature.Handler
	log       *zap.Logger
}

// NewHandler creates a new jobs handler.
func NewHandler(db *mongo.Database, cfg Config, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	if cfg.PerPage < 1 {
		cfg.PerPage = jobstore.DefaultPerPage
	}
	return &Handler{
		jobs:      jobstore.New(db),
		employers: employerstore.New(db),
		cfg:       cfg,
		errLog:    errLog,
		errPages:  errorsfeature.NewHandler(),
		log:       logger,
	}
}

// Index handles GET /jobs.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(query.Get(r, "page"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.jobs.List(ctx, jobstore.ListOptions{
		Page:         page,
		PerPage:      h.cfg.PerPage,
		WithEmployer: true,
	})
	if err != nil {
		h.errLog.Log(r, "failed to list jobs", err)
		h.errPages.InternalError(w, r)
		return
	}

	templates.Render(w, r, "jobs/index", toListVM(viewdata.NewBaseVM(r, "Jobs", "/"), res))
}

// Show handles GET /jobs/{id}.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, ok := h.loadJob(ctx, w, r)
	if !ok {
		return
	}

	vm := JobDetailVM{
		BaseVM:  viewdata.NewBaseVM(r, job.Title, "/jobs"),
		Job:     toJobVM(*job),
		CanEdit: authz.CanEditJob(authz.ActorID(r), *job),
	}
	templates.Render(w, r, "jobs/show", vm)
}

// CreateForm handles GET /jobs/create.
func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	vm := JobFormVM{Base: formutil.NewBase(r, "Create Job", "/jobs")}
	templates.Render(w, r, "jobs/create", vm)
}

// Create handles POST /jobs. The job is posted under the actor's employer,
// which is created on first use.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := formInput(r)

	// Validate before the employer lookup so a rejected form writes nothing.
	if _, err := in.Clean(); err != nil {
		var ve *jobstore.ValidationError
		if errors.As(err, &ve) {
			h.renderForm(w, r, "jobs/create", "Create Job", "", in, ve)
			return
		}
		h.errLog.Log(r, "failed to validate job", err)
		h.errPages.InternalError(w, r)
		return
	}

	actor := authz.ActorID(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := h.employers.EnsureForUser(ctx, actor, employerName(r))
	if err != nil {
		h.errLog.Log(r, "failed to resolve employer", err)
		h.errPages.InternalError(w, r)
		return
	}

	job, err := h.jobs.Create(ctx, emp.ID, in)
	if err != nil {
		var ve *jobstore.ValidationError
		if errors.As(err, &ve) {
			h.renderForm(w, r, "jobs/create", "Create Job", "", in, ve)
			return
		}
		h.errLog.Log(r, "failed to create job", err)
		h.errPages.InternalError(w, r)
		return
	}

	metrics.JobMutation(metrics.ActionCreate)
	h.log.Info("job created",
		zap.String("job_id", job.ID.Hex()),
		zap.String("employer_id", emp.ID.Hex()),
		zap.String("user_id", actor.Hex()))
	http.Redirect(w, r, "/jobs", http.StatusSeeOther)
}

// EditForm handles GET /jobs/{id}/edit.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, ok := h.loadJob(ctx, w, r)
	if !ok || !h.authorize(w, r, metrics.ActionUpdate, *job) {
		return
	}

	vm := JobFormVM{
		Base:   formutil.NewBase(r, "Edit Job", "/jobs/"+job.ID.Hex()),
		ID:     job.ID.Hex(),
		Title:  job.Title,
		Salary: job.Salary,
	}
	templates.Render(w, r, "jobs/edit", vm)
}

// Update handles PATCH /jobs/{id}. Existence is checked first, then
// ownership, then the submitted fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, ok := h.loadJob(ctx, w, r)
	if !ok || !h.authorize(w, r, metrics.ActionUpdate, *job) {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := formInput(r)

	updated, err := h.jobs.Update(ctx, job.ID, in)
	if err != nil {
		var ve *jobstore.ValidationError
		switch {
		case errors.As(err, &ve):
			h.renderForm(w, r, "jobs/edit", "Edit Job", job.ID.Hex(), in, ve)
		case errors.Is(err, jobstore.ErrNotFound):
			h.errPages.NotFound(w, r)
		default:
			h.errLog.Log(r, "failed to update job", err)
			h.errPages.InternalError(w, r)
		}
		return
	}

	metrics.JobMutation(metrics.ActionUpdate)
	h.log.Info("job updated", zap.String("job_id", updated.ID.Hex()), zap.String("user_id", authz.ActorID(r).Hex()))
	http.Redirect(w, r, "/jobs/"+updated.ID.Hex(), http.StatusSeeOther)
}

// Delete handles DELETE /jobs/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, ok := h.loadJob(ctx, w, r)
	if !ok || !h.authorize(w, r, metrics.ActionDelete, *job) {
		return
	}

	if err := h.jobs.Delete(ctx, job.ID); err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			h.errPages.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to delete job", err)
		h.errPages.InternalError(w, r)
		return
	}

	metrics.JobMutation(metrics.ActionDelete)
	h.log.Info("job deleted", zap.String("job_id", job.ID.Hex()), zap.String("user_id", authz.ActorID(r).Hex()))
	http.Redirect(w, r, "/jobs", http.StatusSeeOther)
}

// loadJob resolves the {id} route parameter to a job with its employer
// loaded. It writes the 404 or 500 response itself and reports false when
// the caller should stop.
func (h *Handler) loadJob(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Job, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.errPages.NotFound(w, r)
		return nil, false
	}

	job, err := h.jobs.GetByIDWithEmployer(ctx, id)
	if err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			h.errPages.NotFound(w, r)
			return nil, false
		}
		h.errLog.Log(r, "failed to load job", err)
		h.errPages.InternalError(w, r)
		return nil, false
	}
	return job, true
}

// authorize applies the ownership rule when it is enforced and answers 403
// on denial.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, action string, job models.Job) bool {
	if !h.cfg.EnforceOwnership {
		return true
	}
	actor := authz.ActorID(r)
	if authz.CanEditJob(actor, job) {
		return true
	}

	metrics.AuthzDenied(action)
	h.log.Warn("job edit denied",
		zap.String("action", action),
		zap.String("job_id", job.ID.Hex()),
		zap.String("user_id", actor.Hex()))
	h.errPages.Forbidden(w, r)
	return false
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, page, title, id string, in jobstore.Input, ve *jobstore.ValidationError) {
	back := "/jobs"
	if id != "" {
		back = "/jobs/" + id
	}
	vm := JobFormVM{
		Base:   formutil.NewBase(r, title, back),
		ID:     id,
		Title:  in.Title,
		Salary: in.Salary,
	}
	vm.SetFieldErrors(ve.Fields())
	templates.Render(w, r, page, vm)
}

// employerName is the name given to an employer created on first post: the
// user's display name, else their login id.
func employerName(r *http.Request) string {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return ""
	}
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return strings.TrimSpace(u.LoginID)
}

func formInput(r *http.Request) jobstore.Input {
	return jobstore.Input{
		Title:  r.PostFormValue("title"),
		Salary: r.PostFormValue("salary"),
	}
}
