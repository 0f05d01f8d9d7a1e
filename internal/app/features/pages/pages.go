// internal/app/features/pages/pages.go
package pages

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratajobs/internal/app/features/errors"
	pagestore "github.com/dalemusser/stratajobs/internal/app/store/pages"
	"github.com/dalemusser/stratajobs/internal/app/system/auth"
	"github.com/dalemusser/stratajobs/internal/app/system/authz"
	"github.com/dalemusser/stratajobs/internal/app/system/formutil"
	"github.com/dalemusser/stratajobs/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratajobs/internal/app/system/timeouts"
	"github.com/dalemusser/stratajobs/internal/app/system/viewdata"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MaxContentLength is the maximum allowed length for page content (100KB).
const MaxContentLength = 100000

// Handler provides page content handlers.
type Handler struct {
	pageStore *pagestore.Store
	errLog    *errorsfeature.ErrorLogger
	errPages  *errorsfeature.Handler
	logger    *zap.Logger
}

// NewHandler creates a new pages Handler.
func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		pageStore: pagestore.New(db),
		errLog:    errLog,
		errPages:  errorsfeature.NewHandler(),
		logger:    logger,
	}
}

// PageVM is the view model for page content.
type PageVM struct {
	viewdata.BaseVM
	Slug    string
	Content template.HTML
	CanEdit bool
}

// EditPageVM is the view model for editing a page.
type EditPageVM struct {
	formutil.Base
	Slug      string
	PageTitle string
	Content   string
}

// Show returns a handler that displays the page with slug. A page that was
// never seeded renders with defaultTitle and no content.
func (h *Handler) Show(slug, defaultTitle string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		page, err := h.pageStore.GetBySlug(ctx, slug)
		if err != nil && !errors.Is(err, pagestore.ErrNotFound) {
			h.errLog.Log(r, "failed to get page", err)
			h.errPages.InternalError(w, r)
			return
		}

		vm := PageVM{
			BaseVM:  viewdata.New(r),
			Slug:    slug,
			CanEdit: authz.IsAdmin(r),
		}
		vm.Title = defaultTitle
		if err == nil {
			vm.Title = page.Title
			vm.Content = htmlsanitize.PrepareForDisplay(page.Content)
		}

		templates.Render(w, r, "pages/show", vm)
	}
}

// EditRoutes returns routes for editing pages (admin only).
func EditRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole(models.RoleAdmin))

	r.Get("/{slug}/edit", h.Edit)
	r.Post("/{slug}", h.Update)

	return r
}

// Edit shows the edit form for a page.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !models.IsValidPageSlug(slug) {
		h.errPages.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page, err := h.pageStore.GetBySlug(ctx, slug)
	if err != nil && !errors.Is(err, pagestore.ErrNotFound) {
		h.errLog.Log(r, "failed to get page for edit", err)
		h.errPages.InternalError(w, r)
		return
	}

	vm := EditPageVM{
		Base: formutil.NewBase(r, "Edit Page", "/"+slug),
		Slug: slug,
	}
	if err == nil {
		vm.PageTitle = page.Title
		vm.Content = page.Content
	}

	templates.Render(w, r, "pages/edit", vm)
}

// Update saves a page. Content is sanitized before it is stored.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !models.IsValidPageSlug(slug) {
		h.errPages.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := r.FormValue("content")

	vm := EditPageVM{
		Base:      formutil.NewBase(r, "Edit Page", "/"+slug),
		Slug:      slug,
		PageTitle: title,
		Content:   content,
	}
	switch {
	case title == "":
		vm.SetFieldErrors(map[string]string{"title": "Title is required."})
	case len(content) > MaxContentLength:
		vm.SetFieldErrors(map[string]string{"content": "Content is too long."})
	}
	if vm.HasErrors() {
		templates.Render(w, r, "pages/edit", vm)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page := models.Page{Slug: slug, Title: title, Content: htmlsanitize.Sanitize(content)}
	if err := h.pageStore.Upsert(ctx, page); err != nil {
		h.errLog.Log(r, "failed to save page", err)
		h.errPages.InternalError(w, r)
		return
	}

	h.logger.Info("page updated", zap.String("slug", slug), zap.String("user_id", authz.ActorID(r).Hex()))
	http.Redirect(w, r, "/"+slug, http.StatusSeeOther)
}
