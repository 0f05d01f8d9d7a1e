// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/stratajobs/internal/app/system/authz"
	"github.com/dalemusser/stratajobs/internal/app/system/network"
	"github.com/dalemusser/stratajobs/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorLogger logs handler failures with the request's identifying fields.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

func requestFields(r *http.Request) []zap.Field {
	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		network.IPField(r),
	}
	if id := chimw.GetReqID(r.Context()); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if uid := authz.ActorID(r); !uid.IsZero() {
		fields = append(fields, zap.String("user_id", uid.Hex()))
	}
	return fields
}

// Log logs an error with the given message and error.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.logger.Error(msg, append(requestFields(r), zap.Error(err))...)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	all := append(requestFields(r), zap.Error(err))
	e.logger.Error(msg, append(all, fields...)...)
}

// Handler provides error page handlers.
type Handler struct{}

// NewHandler creates a new error Handler.
func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string) {
	vm := viewdata.New(r)
	vm.Title = title

	w.WriteHeader(status)
	templates.Render(w, r, page, vm)
}

// Forbidden renders the 403 page. Job edits by a user who does not own
// the job's employer end here.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusForbidden, "errors/forbidden", "Access Denied")
}

// Unauthorized renders the 401 page.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusUnauthorized, "errors/unauthorized", "Unauthorized")
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "errors/not_found", "Not Found")
}

// InternalError renders the 500 page.
func (h *Handler) InternalError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusInternalServerError, "errors/internal", "Server Error")
}
