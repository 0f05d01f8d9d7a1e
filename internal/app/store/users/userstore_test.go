package userstore

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/stratajobs/internal/domain/models"
	"github.com/dalemusser/stratajobs/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName: "  Jane ",
		LastName:  "Doe",
		LoginID:   strPtr("Jane@Example.com"),
		Email:     strPtr("Jane@Example.com"),
		Role:      models.RoleMember,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID.IsZero() {
		t.Error("Create() did not assign ID")
	}
	if created.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want %q", created.FullName, "Jane Doe")
	}
	if created.Status != models.StatusActive {
		t.Errorf("Status = %q, want active", created.Status)
	}
	if *created.LoginID != "jane@example.com" {
		t.Errorf("LoginID = %q, want lowercased", *created.LoginID)
	}
	if created.LoginIDCI == nil || *created.LoginIDCI == "" {
		t.Error("Create() did not set LoginIDCI")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}
}

func TestStore_Create_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		user models.User
	}{
		{"bad role", models.User{FullName: "A B", Role: "superuser"}},
		{"bad status", models.User{FullName: "A B", Role: models.RoleMember, Status: "pending"}},
		{"no name", models.User{Role: models.RoleMember}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tt.user); err == nil {
				t.Error("Create() should return an error")
			}
		})
	}
}

func TestStore_Create_DuplicateLoginID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{FullName: "First", LoginID: strPtr("dup@example.com"), Role: models.RoleMember}); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	_, err := store.Create(ctx, models.User{FullName: "Second", LoginID: strPtr("DUP@example.com"), Role: models.RoleMember})
	if !errors.Is(err, ErrDuplicateLoginID) {
		t.Errorf("second Create() error = %v, want ErrDuplicateLoginID", err)
	}
}

func TestStore_GetByLoginID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{FullName: "Jane Doe", LoginID: strPtr("jane@example.com"), Role: models.RoleMember})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.GetByLoginID(ctx, "  JANE@example.com ")
	if err != nil {
		t.Fatalf("GetByLoginID() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByLoginID() returned %s, want %s", got.ID.Hex(), created.ID.Hex())
	}

	if _, err := store.GetByLoginID(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByLoginID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestStore_LoginIDExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	exists, err := store.LoginIDExists(ctx, "jane@example.com")
	if err != nil || exists {
		t.Fatalf("LoginIDExists() before create = %v, %v", exists, err)
	}
	if _, err := store.Create(ctx, models.User{FullName: "Jane", LoginID: strPtr("jane@example.com"), Role: models.RoleMember}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	exists, err = store.LoginIDExists(ctx, "Jane@Example.com")
	if err != nil || !exists {
		t.Errorf("LoginIDExists() after create = %v, %v", exists, err)
	}
}

func TestStore_UpdateLastLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{FullName: "Jane", Role: models.RoleMember})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.UpdateLastLogin(ctx, u.ID); err != nil {
		t.Fatalf("UpdateLastLogin() error = %v", err)
	}
	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.LastLoginAt == nil {
		t.Error("LastLoginAt not set")
	}

	if err := store.UpdateLastLogin(ctx, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateLastLogin(missing) error = %v, want ErrNotFound", err)
	}
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{FullName: "Jane Doe", LoginID: strPtr("jane@example.com"), Role: models.RoleMember})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	f := NewFetcher(db, zap.NewNop())

	su := f.FetchUser(context.Background(), u.ID.Hex())
	if su == nil {
		t.Fatal("FetchUser() returned nil for an active user")
	}
	if su.Name != "Jane Doe" || su.LoginID != "jane@example.com" || su.Role != models.RoleMember {
		t.Errorf("FetchUser() = %+v", su)
	}

	if f.FetchUser(context.Background(), "not-an-id") != nil {
		t.Error("FetchUser() should return nil for a malformed id")
	}
	if f.FetchUser(context.Background(), primitive.NewObjectID().Hex()) != nil {
		t.Error("FetchUser() should return nil for a missing user")
	}

	if _, err := db.Collection("users").UpdateOne(ctx, bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{"status": models.StatusDisabled}}); err != nil {
		t.Fatalf("disable user: %v", err)
	}
	if f.FetchUser(context.Background(), u.ID.Hex()) != nil {
		t.Error("FetchUser() should return nil for a disabled user")
	}
}
