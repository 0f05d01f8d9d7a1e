// Package formutil holds the fields shared by every form view model: the
// page chrome, a form-level error, and per-field messages shown inline.
//
//	type jobFormVM struct {
//		formutil.Base
//		Title  string
//		Salary string
//	}
//
//	vm := jobFormVM{Base: formutil.NewBase(r, "Create Job", "/jobs")}
//	vm.SetFieldErrors(res.ByField())
//	templates.Render(w, r, "jobs/create", vm)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/stratajobs/internal/app/system/viewdata"
)

// Base embeds viewdata.BaseVM and adds form error state.
type Base struct {
	viewdata.BaseVM
	Error       template.HTML
	FieldErrors map[string]string
}

// NewBase creates a Base for a form page.
func NewBase(r *http.Request, title, backDefault string) Base {
	return Base{
		BaseVM: viewdata.NewBaseVM(r, title, backDefault),
	}
}

// SetError sets the form-level error message.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// SetFieldErrors replaces the inline field messages.
func (b *Base) SetFieldErrors(errs map[string]string) {
	b.FieldErrors = errs
}

// FieldError returns the message for a form field, or "".
// Templates call it as {{ .FieldError "title" }}.
func (b Base) FieldError(field string) string {
	return b.FieldErrors[field]
}

// HasErrors reports whether any form or field error is set.
func (b Base) HasErrors() bool {
	return b.Error != "" || len(b.FieldErrors) > 0
}
