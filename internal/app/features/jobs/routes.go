// internal/app/features/jobs/routes.go
package jobsfeature

import (
	"github.com/dalemusser/stratajobs/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the jobs feature. Listing and viewing are
// public; everything that writes requires a signed-in user.
//
// Browsers reach PATCH and DELETE through the _method form field.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Index)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Get("/create", h.CreateForm)
		r.Post("/", h.Create)
		r.Get("/{id}/edit", h.EditForm)
		r.Patch("/{id}", h.Update)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	r.Get("/{id}", h.Show)

	return r
}
