// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"encoding/json"

	pagestore "github.com/dalemusser/stratadocs/internal/app/store/pages"
	settingsstore "github.com/dalemusser/stratadocs/internal/app/store/settings"
	"github.com/dalemusser/stratadocs/internal/domain/content"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if err := seedSettings(ctx, db, logger); err != nil {
		return err
	}
	return seedWelcomePage(ctx, db, logger)
}

// seedSettings creates the singleton settings document on first boot.
func seedSettings(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := settingsstore.New(db)

	exists, err := store.Exists(ctx)
	if err != nil {
		logger.Error("failed to check site settings", zap.Error(err))
		return err
	}
	if exists {
		return nil
	}

	settings := models.SiteSettings{
		SiteName:    models.DefaultSiteName,
		Description: "Documentation built with Stratadocs.",
	}
	if err := store.Save(ctx, settings); err != nil {
		logger.Error("failed to seed site settings", zap.Error(err))
		return err
	}
	logger.Info("seeded default site settings")
	return nil
}

// seedWelcomePage creates a starter page on an empty site so the first
// visit isn't a 404.
func seedWelcomePage(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := pagestore.New(db)

	count, err := store.Count(ctx)
	if err != nil {
		logger.Error("failed to count pages", zap.Error(err))
		return err
	}
	if count > 0 {
		return nil
	}

	doc := content.NewDocument()
	doc.Blocks = []content.Block{
		block(content.TypeHeader, content.HeaderData{Text: "Welcome", Level: 1}),
		block(content.TypeParagraph, content.ParagraphData{
			Text: "This site was just created. Sign in and open the admin area to start writing documentation.",
		}),
		block(content.TypeList, content.ListData{
			Style: content.ListUnordered,
			Items: []string{
				"Create pages and arrange them into sections",
				"Protect drafts with visibility rules or a page password",
				"Export the whole site as JSON any time",
			},
		}),
	}

	page := models.Page{
		Title:      "Welcome",
		Slug:       "welcome",
		Status:     models.StatusPublished,
		Visibility: models.VisibilityPublic,
		Content:    &doc,
	}

	created, err := store.Insert(ctx, page)
	if err != nil {
		logger.Error("failed to seed welcome page", zap.Error(err))
		return err
	}
	logger.Info("seeded welcome page", zap.String("page_id", created.ID))
	return nil
}

func block(blockType string, data any) content.Block {
	raw, _ := json.Marshal(data)
	return content.Block{Type: blockType, Data: raw}
}
