package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/stratajobs/internal/app/system/auth"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func withTestUser(id, name, role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return auth.WithTestUser(req, &auth.SessionUser{ID: id, Name: name, Role: role})
}

func TestUserCtx(t *testing.T) {
	validID := primitive.NewObjectID()

	tests := []struct {
		name     string
		req      *http.Request
		wantRole string
		wantID   primitive.ObjectID
		wantOK   bool
	}{
		{"member", withTestUser(validID.Hex(), "Jane", "Member"), "member", validID, true},
		{"malformed id", withTestUser("bad", "Jane", "member"), "visitor", primitive.NilObjectID, false},
		{"anonymous", httptest.NewRequest(http.MethodGet, "/", nil), "visitor", primitive.NilObjectID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, _, id, ok := UserCtx(tt.req)
			if role != tt.wantRole || id != tt.wantID || ok != tt.wantOK {
				t.Errorf("UserCtx() = (%q, %v, %v), want (%q, %v, %v)", role, id, ok, tt.wantRole, tt.wantID, tt.wantOK)
			}
			if got := ActorID(tt.req); got != tt.wantID {
				t.Errorf("ActorID() = %v, want %v", got, tt.wantID)
			}
		})
	}
}

func TestIsAdminAndIsLoggedIn(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	if !IsAdmin(withTestUser(id, "Root", "admin")) {
		t.Error("IsAdmin() = false for admin")
	}
	if IsAdmin(withTestUser(id, "Jane", "member")) {
		t.Error("IsAdmin() = true for member")
	}
	if IsLoggedIn(httptest.NewRequest(http.MethodGet, "/", nil)) {
		t.Error("IsLoggedIn() = true for anonymous request")
	}
}

func TestCanEditJob(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	otherEmployerOwner := primitive.NewObjectID()

	employer := &models.Employer{ID: primitive.NewObjectID(), Name: "Acme", UserID: owner}
	otherEmployer := &models.Employer{ID: primitive.NewObjectID(), Name: "Globex", UserID: otherEmployerOwner}

	job := models.Job{ID: primitive.NewObjectID(), Title: "Director", EmployerID: employer.ID, Employer: employer}
	unloaded := models.Job{ID: primitive.NewObjectID(), Title: "Director", EmployerID: employer.ID}
	mismatched := models.Job{ID: primitive.NewObjectID(), Title: "Director", EmployerID: employer.ID, Employer: otherEmployer}

	tests := []struct {
		name  string
		actor primitive.ObjectID
		job   models.Job
		want  bool
	}{
		{"owner", owner, job, true},
		{"unrelated user", stranger, job, false},
		{"owner of another employer", otherEmployerOwner, job, false},
		{"anonymous", primitive.NilObjectID, job, false},
		{"employer not loaded", owner, unloaded, false},
		{"employer does not match job", otherEmployerOwner, mismatched, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditJob(tt.actor, tt.job); got != tt.want {
				t.Errorf("CanEditJob() = %v, want %v", got, tt.want)
			}
		})
	}
}
