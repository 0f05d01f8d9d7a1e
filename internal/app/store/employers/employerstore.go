// internal/app/store/employers/employerstore.go
package employerstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratajobs/internal/app/system/normalize"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no employer matches.
	ErrNotFound = errors.New("employer not found")
	// ErrUserHasEmployer is returned by Create when the user already owns one.
	ErrUserHasEmployer = errors.New("user already owns an employer")
	errNoName          = errors.New("employer name is required")
	errNoUser          = errors.New("employer user id is required")
)

// Store provides access to the employers collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new employer store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("employers")}
}

// Create inserts an employer owned by userID.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, name string) (models.Employer, error) {
	name = normalize.Line(name)
	if name == "" {
		return models.Employer{}, errNoName
	}
	if userID.IsZero() {
		return models.Employer{}, errNoUser
	}

	now := time.Now().UTC()
	e := models.Employer{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Employer{}, ErrUserHasEmployer
		}
		return models.Employer{}, err
	}
	return e, nil
}

// GetByID loads an employer by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Employer, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByUserID loads the employer owned by userID.
func (s *Store) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Employer, error) {
	return s.findOne(ctx, bson.M{"user_id": userID})
}

// EnsureForUser returns the user's employer, creating it with name when the
// user has none. Concurrent callers converge on one document through the
// unique user_id index.
func (s *Store) EnsureForUser(ctx context.Context, userID primitive.ObjectID, name string) (*models.Employer, error) {
	e, err := s.GetByUserID(ctx, userID)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	created, err := s.Create(ctx, userID, name)
	if errors.Is(err, ErrUserHasEmployer) {
		return s.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.Employer, error) {
	var e models.Employer
	if err := s.c.FindOne(ctx, filter).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
