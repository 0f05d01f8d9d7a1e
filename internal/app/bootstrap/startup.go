// internal/app/bootstrap/startup.go
package bootstrap

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/stratajobs/internal/app/resources"
	employerstore "github.com/dalemusser/stratajobs/internal/app/store/employers"
	userstore "github.com/dalemusser/stratajobs/internal/app/store/users"
	"github.com/dalemusser/stratajobs/internal/app/system/authutil"
	"github.com/dalemusser/stratajobs/internal/app/system/timeouts"
	"github.com/dalemusser/stratajobs/internal/app/system/txn"
	"github.com/dalemusser/stratajobs/internal/app/system/viewdata"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// Returning a non-nil error aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.Init(appCfg.SiteName)
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.QueryTimeoutShort,
		Medium: appCfg.QueryTimeoutMedium,
	})

	// Seed admin user if configured
	if appCfg.SeedAdminEmail != "" {
		if err := ensureAdminUser(ctx, deps.MongoDatabase, appCfg, logger); err != nil {
			logger.Error("failed to seed admin user", zap.Error(err))
			return err
		}
	}

	return nil
}

// ensureAdminUser makes sure an admin with the seed email exists. An
// existing user is promoted; the password is only set on creation. The
// admin gets an employer like any registered user so they can post jobs.
func ensureAdminUser(ctx context.Context, db *mongo.Database, appCfg AppConfig, logger *zap.Logger) error {
	users := userstore.New(db)
	employers := employerstore.New(db)

	name := appCfg.SeedAdminName
	if name == "" {
		name = "Admin"
	}

	existing, err := users.GetByLoginID(ctx, appCfg.SeedAdminEmail)
	switch {
	case err == nil:
		if existing.Role != models.RoleAdmin {
			if _, err := db.Collection("users").UpdateByID(ctx, existing.ID, bson.M{
				"$set": bson.M{"role": models.RoleAdmin, "updated_at": time.Now().UTC()},
			}); err != nil {
				return fmt.Errorf("promote admin: %w", err)
			}
			logger.Info("promoted existing user to admin",
				zap.String("user_id", existing.ID.Hex()),
				zap.String("previous_role", existing.Role))
		} else {
			logger.Debug("admin user already configured", zap.String("user_id", existing.ID.Hex()))
		}
		_, err := employers.EnsureForUser(ctx, existing.ID, existing.DisplayName())
		return err
	case !errors.Is(err, userstore.ErrNotFound):
		return err
	}

	hash, err := authutil.HashPassword(appCfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	email := appCfg.SeedAdminEmail
	return txn.Run(ctx, db, logger, func(ctx context.Context) error {
		u, err := users.Create(ctx, models.User{
			FullName:     name,
			LoginID:      &email,
			Email:        &email,
			PasswordHash: &hash,
			Role:         models.RoleAdmin,
		})
		if err != nil {
			return err
		}
		if _, err := employers.Create(ctx, u.ID, u.FullName); err != nil {
			return err
		}
		logger.Info("created admin user", zap.String("user_id", u.ID.Hex()))
		return nil
	})
}
