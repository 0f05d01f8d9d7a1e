// internal/app/store/jobs/jobstore.go
package jobstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratajobs/internal/app/store/storeutil"
	"github.com/dalemusser/stratajobs/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratajobs/internal/app/system/inputval"
	"github.com/dalemusser/stratajobs/internal/app/system/normalize"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultPerPage is the listing page size when none is configured.
const DefaultPerPage = 3

var (
	// ErrNotFound is returned when a job is not found.
	ErrNotFound   = errors.New("job not found")
	errNoEmployer = errors.New("job employer id is required")
)

// ValidationError reports input that failed the job field rules. Nothing is
// written when it is returned.
type ValidationError struct {
	Result *inputval.Result
}

func (e *ValidationError) Error() string {
	return "invalid job: " + e.Result.All()
}

// Fields maps form field names to messages.
func (e *ValidationError) Fields() map[string]string {
	return e.Result.ByField()
}

// Input holds the user-editable job fields.
type Input struct {
	Title  string `form:"title" json:"title" validate:"required,min=3,max=200" label:"Title"`
	Salary string `form:"salary" json:"salary" validate:"required,max=100" label:"Salary"`
}

// Clean strips markup, collapses whitespace and validates. The returned
// Input is what gets stored.
func (in Input) Clean() (Input, error) {
	out := Input{
		Title:  normalize.Line(htmlsanitize.StripTags(in.Title)),
		Salary: normalize.Line(htmlsanitize.StripTags(in.Salary)),
	}
	if res := inputval.Validate(out); res.HasErrors() {
		return out, &ValidationError{Result: res}
	}
	return out, nil
}

// Store provides job persistence.
type Store struct {
	c *mongo.Collection
}

// New creates a new job store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("jobs")}
}

// Create validates in and inserts a job owned by employerID.
func (s *Store) Create(ctx context.Context, employerID primitive.ObjectID, in Input) (*models.Job, error) {
	clean, err := in.Clean()
	if err != nil {
		return nil, err
	}
	if employerID.IsZero() {
		return nil, errNoEmployer
	}

	now := time.Now().UTC()
	job := models.Job{
		ID:         primitive.NewObjectID(),
		Title:      clean.Title,
		Salary:     clean.Salary,
		EmployerID: employerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.c.InsertOne(ctx, job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByID retrieves a job by ID without its employer.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var job models.Job
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// GetByIDWithEmployer retrieves a job and eager-loads its employer. Employer
// stays nil if the employer document is gone.
func (s *Store) GetByIDWithEmployer(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$limit", Value: 1}},
	}
	pipeline = append(pipeline, employerLookup()...)

	jobs, err := s.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, ErrNotFound
	}
	return &jobs[0], nil
}

// Update validates in and replaces the job's title and salary.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in Input) (*models.Job, error) {
	clean, err := in.Clean()
	if err != nil {
		return nil, err
	}

	var job models.Job
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"title":      clean.Title,
			"salary":     clean.Salary,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Delete removes a job.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByEmployer returns how many jobs employerID has posted.
func (s *Store) CountByEmployer(ctx context.Context, employerID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"employer_id": employerID})
}

// ListOptions selects one page of the listing.
type ListOptions struct {
	Page         int
	PerPage      int
	WithEmployer bool
}

// ListResult is one page of jobs, newest first. HasMore reports whether a
// following page exists; totals are never counted.
type ListResult struct {
	Jobs    []models.Job
	Page    int
	PerPage int
	HasMore bool
}

// List returns a page of jobs ordered by created_at desc, _id desc.
func (s *Store) List(ctx context.Context, opt ListOptions) (ListResult, error) {
	w := storeutil.NewWindow(opt.Page, opt.PerPage, DefaultPerPage)
	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

	var jobs []models.Job
	var err error
	if opt.WithEmployer {
		pipeline := mongo.Pipeline{
			{{Key: "$sort", Value: sort}},
			{{Key: "$skip", Value: w.Skip}},
			{{Key: "$limit", Value: w.Limit}},
		}
		pipeline = append(pipeline, employerLookup()...)
		jobs, err = s.aggregate(ctx, pipeline)
	} else {
		jobs, err = s.find(ctx, bson.M{}, options.Find().SetSort(sort).SetSkip(w.Skip).SetLimit(w.Limit))
	}
	if err != nil {
		return ListResult{}, err
	}

	jobs, more := storeutil.Trim(jobs, w)
	return ListResult{
		Jobs:    jobs,
		Page:    w.Page,
		PerPage: w.PerPage,
		HasMore: more,
	}, nil
}

// employerLookup joins each job with its employer document as "employer".
func employerLookup() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "employers",
			"localField":   "employer_id",
			"foreignField": "_id",
			"as":           "employer",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$employer",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}

func (s *Store) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Job, error) {
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	jobs := []models.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Job, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	jobs := []models.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
