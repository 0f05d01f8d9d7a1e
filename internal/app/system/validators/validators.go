// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// collection pairs a collection name with the JSON-Schema validator
// attached to it.
type collection struct {
	name   string
	schema func() bson.M
}

var collections = []collection{
	{"users", usersSchema},
	{"employers", employersSchema},
	{"jobs", jobsSchema},
	{"pages", pagesSchema},
}

// Mongo server error codes checked below.
const (
	codeNamespaceExists = 48
	codeCommandNotFound = 59
	codeNotImplemented  = 115
)

// EnsureAll creates the job board's collections and attaches a validator
// to each. Servers that reject collMod (some DocumentDB versions) keep
// the collection without a validator.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		// Fall through to CreateCollection and let it report duplicates.
		zap.L().Warn("listCollections failed", zap.Error(err))
		existing = nil
	}

	var errs []error
	for _, c := range collections {
		if err := ensureCollection(ctx, db, c.name, existing); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := setValidator(ctx, db, c.name, c.schema()); err != nil {
			if unsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", c.name))
				continue
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// collectionExists reports whether name is already present in db.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

// ensureCollection creates name unless it appears in existing. A create
// that races another process is not an error.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, existing []string) error {
	if slices.Contains(existing, name) {
		zap.L().Info("collection exists", zap.String("collection", name))
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if namespaceExists(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return errors.New(name + ": " + err.Error())
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

// matchCommandErr reports whether err carries the given server code or
// mentions one of phrases (case-insensitive) in its message.
func matchCommandErr(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

func namespaceExists(err error) bool {
	return matchCommandErr(err, codeNamespaceExists, "already exists", "namespace exists")
}

func unsupported(err error) bool {
	return matchCommandErr(err, codeCommandNotFound, "no such command") ||
		matchCommandErr(err, codeNotImplemented, "not implemented", "not supported")
}
