// Package jobsapi serves a read-only JSON view of job listings:
//
//	GET /api/jobs?page=N  - one page of jobs, newest first
//	GET /api/jobs/{id}    - a single job
//
// Every request needs Authorization: Bearer <api_key>.
package jobsapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	errorsfeature "github.com/dalemusser/stratajobs/internal/app/features/errors"
	jobstore "github.com/dalemusser/stratajobs/internal/app/store/jobs"
	"github.com/dalemusser/stratajobs/internal/app/system/apicors"
	"github.com/dalemusser/stratajobs/internal/app/system/auth"
	"github.com/dalemusser/stratajobs/internal/app/system/jsonutil"
	"github.com/dalemusser/stratajobs/internal/app/system/timeouts"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the jobs API.
type Handler struct {
	jobs    *jobstore.Store
	perPage int
	errLog  *errorsfeature.ErrorLogger
}

// NewHandler creates a jobs API handler. perPage < 1 uses the store default.
func NewHandler(db *mongo.Database, perPage int, errLog *errorsfeature.ErrorLogger) *Handler {
	return &Handler{
		jobs:    jobstore.New(db),
		perPage: perPage,
		errLog:  errLog,
	}
}

// Routes mounts the API behind CORS and the bearer key check.
func Routes(h *Handler, apiKey string, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware(allowedOrigins...))
	r.Use(auth.APIKeyAuth(apiKey, logger))

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	return r
}

// EmployerJSON is the employer embedded in a job.
type EmployerJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JobJSON is the public shape of a job.
type JobJSON struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Salary    string        `json:"salary"`
	Employer  *EmployerJSON `json:"employer,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ListResponse is the body of GET /api/jobs.
type ListResponse struct {
	Jobs    []JobJSON `json:"jobs"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
	HasMore bool      `json:"has_more"`
}

// List handles GET /api/jobs.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := query.Get(r, "page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			jsonutil.BadRequest(w, "page must be a positive integer")
			return
		}
		page = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.jobs.List(ctx, jobstore.ListOptions{Page: page, PerPage: h.perPage, WithEmployer: true})
	if err != nil {
		h.errLog.Log(r, "api: failed to list jobs", err)
		jsonutil.InternalError(w, "failed to list jobs")
		return
	}

	out := ListResponse{
		Jobs:    make([]JobJSON, len(res.Jobs)),
		Page:    res.Page,
		PerPage: res.PerPage,
		HasMore: res.HasMore,
	}
	for i, j := range res.Jobs {
		out.Jobs[i] = toJSON(j)
	}
	jsonutil.OK(w, out)
}

// Get handles GET /api/jobs/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "job not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, err := h.jobs.GetByIDWithEmployer(ctx, id)
	if err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			jsonutil.NotFound(w, "job not found")
			return
		}
		h.errLog.Log(r, "api: failed to load job", err)
		jsonutil.InternalError(w, "failed to load job")
		return
	}
	jsonutil.OK(w, toJSON(*job))
}

func toJSON(j models.Job) JobJSON {
	out := JobJSON{
		ID:        j.ID.Hex(),
		Title:     j.Title,
		Salary:    j.Salary,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.Employer != nil {
		out.Employer = &EmployerJSON{ID: j.Employer.ID.Hex(), Name: j.Employer.Name}
	}
	return out
}
