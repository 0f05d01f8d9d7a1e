package inputval

import (
	"strings"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},

		{"", false},
		{"   ", false},
		{"notanemail", false},
		{"@example.com", false},
		{"user@", false},
		{"user@@example.com", false},
		{"Name <user@example.com>", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"ffffffffffffffffffffffff", true},

		{"", false},
		{"507f1f77bcf86cd79943901", false},
		{"507f1f77bcf86cd79943901g", false},
		{"1", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsValidObjectID(tt.id); got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

type listingInput struct {
	Title  string `form:"title" validate:"required,min=3" label:"Title"`
	Salary string `form:"salary" validate:"required" label:"Salary"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     listingInput
		wantField string
	}{
		{"valid", listingInput{Title: "Director", Salary: "$50,000"}, ""},
		{"missing title", listingInput{Salary: "$50,000"}, "title"},
		{"short title", listingInput{Title: "Ab", Salary: "$50,000"}, "title"},
		{"missing salary", listingInput{Title: "Director"}, "salary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.input)
			if tt.wantField == "" {
				if res.HasErrors() {
					t.Fatalf("Validate() unexpected errors: %s", res.All())
				}
				return
			}
			if !res.HasErrors() {
				t.Fatal("Validate() expected errors, got none")
			}
			msg, ok := res.ByField()[tt.wantField]
			if !ok {
				t.Fatalf("ByField() missing %q in %v", tt.wantField, res.ByField())
			}
			if !strings.Contains(strings.ToLower(msg), tt.wantField) {
				t.Errorf("message %q does not name the field", msg)
			}
		})
	}
}

func TestResult_Helpers(t *testing.T) {
	var empty *Result
	if empty.HasErrors() {
		t.Error("nil Result should have no errors")
	}
	if got := empty.ByField(); len(got) != 0 {
		t.Errorf("nil ByField() = %v, want empty", got)
	}

	r := &Result{}
	r.Add("email", "Email", "Email is already registered.")
	r.Add("email", "Email", "second message")
	r.Add("password", "Password", "Passwords do not match.")

	if got := r.First(); got != "Email is already registered." {
		t.Errorf("First() = %q", got)
	}
	if got := r.ByField()["email"]; got != "Email is already registered." {
		t.Errorf("ByField()[email] = %q, want first message", got)
	}
	if got := r.All(); !strings.Contains(got, "; ") {
		t.Errorf("All() = %q, want joined messages", got)
	}
}
