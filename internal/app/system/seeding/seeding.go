// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	pagestore "github.com/dalemusser/stratajobs/internal/app/store/pages"
	"github.com/dalemusser/stratajobs/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultPages is the content written for each page slug on first start.
// Existing pages are never overwritten.
var DefaultPages = []models.Page{
	{
		Slug:  models.PageSlugAbout,
		Title: "About",
		Content: `<h2>About</h2>
<p>A small job board. Employers post openings with a title and salary; anyone can browse them.</p>`,
	},
	{
		Slug:  models.PageSlugContact,
		Title: "Contact",
		Content: `<h2>Contact Us</h2>
<p>Questions about a listing? Reach the employer through the details on the job page.</p>
<p>For anything else, write to the site administrator.</p>`,
	},
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return seedPages(ctx, db, logger)
}

func seedPages(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := pagestore.New(db)

	for _, page := range DefaultPages {
		exists, err := store.Exists(ctx, page.Slug)
		if err != nil {
			logger.Error("failed to check if page exists",
				zap.String("slug", page.Slug),
				zap.Error(err))
			return err
		}
		if exists {
			continue
		}
		if err := store.Upsert(ctx, page); err != nil {
			logger.Error("failed to seed page",
				zap.String("slug", page.Slug),
				zap.Error(err))
			return err
		}
		logger.Info("seeded default page", zap.String("slug", page.Slug))
	}

	return nil
}
