// Package txn runs multi-document writes in a MongoDB transaction when the
// deployment supports one.
//
// Registration writes a user and its employer together:
//
//	err := txn.Run(ctx, db, log, func(ctx context.Context) error {
//	    if err := users.Create(ctx, u); err != nil {
//	        return err
//	    }
//	    _, err := employers.Create(ctx, u.ID, name)
//	    return err
//	})
//
// Standalone servers have no transactions; there the function runs once
// without one.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Func receives the context to use for every database call. Inside a
// transaction that is a mongo.SessionContext.
type Func func(ctx context.Context) error

// Run executes fn inside a transaction, or directly if transactions are
// unavailable. log may be nil.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn Func) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if log != nil {
			log.Warn("failed to start session, running without transaction", zap.Error(err))
		}
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Warn("transactions not supported, running without transaction", zap.Error(err))
		}
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err means the server cannot run
// multi-document transactions (standalone mongod, some DocumentDB setups).
//
// Codes: 20 IllegalOperation on non-replica-set, 51, 263.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	matches := 0
	for _, kw := range []string{"transaction", "replica set", "session", "not supported", "illegal operation"} {
		if strings.Contains(msg, kw) {
			matches++
		}
	}
	// two keywords, to avoid matching unrelated errors
	return matches >= 2
}
