package validators

import (
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// nonBlank matches a string with at least one non-space character.
var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func stringsOf(vals []string) bson.A {
	out := make(bson.A, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "role", "status"},
			"properties": bson.M{
				"first_name":    bson.M{"bsonType": "string"},
				"last_name":     bson.M{"bsonType": "string"},
				"full_name":     nonBlank,
				"full_name_ci":  nonBlank,
				"login_id":      bson.M{"bsonType": bson.A{"string", "null"}},
				"login_id_ci":   bson.M{"bsonType": bson.A{"string", "null"}},
				"email":         bson.M{"bsonType": bson.A{"string", "null"}},
				"password_hash": bson.M{"bsonType": bson.A{"string", "null"}},
				"role":          bson.M{"enum": stringsOf(models.AllRoles())},
				"status":        bson.M{"enum": bson.A{models.StatusActive, models.StatusDisabled}},
			},
		},
	}
}

func employersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "user_id", "created_at"},
			"properties": bson.M{
				"name":       nonBlank,
				"name_ci":    bson.M{"bsonType": "string"},
				"user_id":    bson.M{"bsonType": "objectId"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func jobsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "salary", "employer_id", "created_at"},
			"properties": bson.M{
				"title": bson.M{
					"bsonType":  "string",
					"minLength": models.JobTitleMinLength,
					"maxLength": models.JobTitleMaxLength,
				},
				"salary": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": models.JobSalaryMaxLength,
				},
				"employer_id": bson.M{"bsonType": "objectId"},
				"created_at":  bson.M{"bsonType": "date"},
				"updated_at":  bson.M{"bsonType": "date"},
			},
		},
	}
}

func pagesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"slug"},
			"properties": bson.M{
				"slug":    bson.M{"enum": stringsOf(models.AllPageSlugs())},
				"title":   bson.M{"bsonType": "string"},
				"content": bson.M{"bsonType": "string"},
			},
		},
	}
}
