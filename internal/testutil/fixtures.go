package testutil

import (
	"testing"
	"time"

	"github.com/dalemusser/stratajobs/internal/app/system/auth"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SessionKey is a 32-byte key that passes the session manager's strength checks.
const SessionKey = "k7Q2vX9pL4mN8rT1wZ6yB3cF5hJ0sD2a"

// NewSessionManager returns a non-secure session manager for handler tests.
func NewSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(SessionKey, "stratajobs-test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

// ObjectID parses a TestUser id.
func (u TestUser) ObjectID() primitive.ObjectID {
	oid, _ := primitive.ObjectIDFromHex(u.ID)
	return oid
}

// InsertEmployer writes an employer owned by userID directly to the
// employers collection.
func InsertEmployer(t *testing.T, db *mongo.Database, userID primitive.ObjectID, name string) models.Employer {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	now := time.Now().UTC()
	emp := models.Employer{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    name,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection("employers").InsertOne(ctx, emp); err != nil {
		t.Fatalf("insert employer: %v", err)
	}
	return emp
}

// InsertJob writes a job directly to the jobs collection. createdAt orders
// it within listings.
func InsertJob(t *testing.T, db *mongo.Database, employerID primitive.ObjectID, title, salary string, createdAt time.Time) models.Job {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	job := models.Job{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Salary:     salary,
		EmployerID: employerID,
		CreatedAt:  createdAt.UTC(),
		UpdatedAt:  createdAt.UTC(),
	}
	if _, err := db.Collection("jobs").InsertOne(ctx, job); err != nil {
		t.Fatalf("insert job: %v", err)
	}
	return job
}
