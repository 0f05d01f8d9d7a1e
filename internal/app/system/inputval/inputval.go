// Package inputval validates form input structs using waffle/pantry/validate.
//
// Declare an input struct with `validate` rules, a `label` for messages and a
// `form` tag naming the HTML field, then call Validate:
//
//	type jobInput struct {
//	    Title  string `form:"title" validate:"required,min=3" label:"Title"`
//	    Salary string `form:"salary" validate:"required" label:"Salary"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//	    vm.Errors = res.ByField()
//	}
package inputval

import (
	"net/mail"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/waffle/pantry/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError is a failed rule on one field. Field is the HTML form name.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// First returns the first error message, or empty string if no errors.
func (r *Result) First() string {
	if r.HasErrors() {
		return r.Errors[0].Message
	}
	return ""
}

// All returns all error messages joined with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// ByField maps form field names to their first message, for inline display.
func (r *Result) ByField() map[string]string {
	out := make(map[string]string)
	if r == nil {
		return out
	}
	for _, e := range r.Errors {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Add appends an error that was detected outside the struct rules, such as
// a password confirmation mismatch or a duplicate email.
func (r *Result) Add(field, label, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Label: label, Message: message})
}

var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		customValidator = validate.New(validate.WithStopOnFirstError())

		// objectid: a 24-char hex MongoDB ObjectID
		customValidator.RegisterRuleFunc("objectid", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsValidObjectID(s)
			}
			return false
		}, "objectid")
	})
	return customValidator
}

// Validate runs the `validate` rules on s and returns user-facing messages.
//
// Rules from pantry/validate: required, email, oneof, min=N, max=N.
// Registered here: objectid.
func Validate(s any) *Result {
	result := &Result{}

	err := getValidator().Struct(s)
	if err == nil {
		return result
	}

	meta := fieldMeta(s)

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			m, found := meta[e.Field]
			if !found {
				m, found = meta[strings.ToLower(e.Field)]
			}
			if !found {
				m = fieldInfo{label: e.Field, form: strings.ToLower(e.Field)}
			}
			result.Errors = append(result.Errors, FieldError{
				Field:   m.form,
				Label:   m.label,
				Message: formatMessage(m.label, e.Rule, e.Param),
			})
		}
	}

	return result
}

type fieldInfo struct {
	label string
	form  string
}

// fieldMeta indexes struct fields by Go name, json name and lowercase name,
// since the validator may report any of them.
func fieldMeta(s any) map[string]fieldInfo {
	out := make(map[string]fieldInfo)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return out
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		info := fieldInfo{label: field.Tag.Get("label"), form: field.Tag.Get("form")}
		if info.label == "" {
			info.label = field.Name
		}
		if info.form == "" {
			info.form = strings.ToLower(field.Name)
		}

		out[field.Name] = info
		out[strings.ToLower(field.Name)] = info
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			if name := strings.Split(jsonTag, ",")[0]; name != "" && name != "-" {
				out[name] = info
			}
		}
	}
	return out
}

func formatMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "oneof", "enum":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min":
		return label + " must be at least " + param + " characters."
	case "max":
		return label + " must be at most " + param + " characters."
	case "objectid":
		return label + " is not a valid ID."
	default:
		return label + " is invalid."
	}
}

// IsValidEmail checks for a bare RFC 5322 address (no display name).
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

// IsValidObjectID checks if the given string is a valid MongoDB ObjectID hex.
func IsValidObjectID(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}
