// internal/domain/models/job.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job is a posted listing. Salary is free-form text ("$50,000", "45k").
//
// Employer is only populated by queries that eager-load it; it is never
// written back to the jobs collection.
type Job struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Salary     string             `bson:"salary" json:"salary"`
	EmployerID primitive.ObjectID `bson:"employer_id" json:"employer_id"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`

	Employer *Employer `bson:"employer,omitempty" json:"employer,omitempty"`
}

// Job field limits shared by form validation and the collection schema.
const (
	JobTitleMinLength  = 3
	JobTitleMaxLength  = 200
	JobSalaryMaxLength = 100
)
