// internal/app/store/pages/pagestore.go
package pagestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a page does not exist.
var ErrNotFound = errors.New("page not found")

// Store provides access to the pages collection. Page ids are opaque
// strings generated at creation so they survive export and re-import
// unchanged.
type Store struct {
	c *mongo.Collection
}

// New creates a new page store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pages")}
}

// Insert creates a new page. A missing id is generated; LastUpdated is
// always stamped.
func (s *Store) Insert(ctx context.Context, page models.Page) (models.Page, error) {
	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	page.LastUpdated = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, page); err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// GetByID returns a page by its id.
func (s *Store) GetByID(ctx context.Context, id string) (models.Page, error) {
	var page models.Page
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&page)
	if err == mongo.ErrNoDocuments {
		return models.Page{}, ErrNotFound
	}
	if err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// GetAll returns every page, sorted by parent then order for stable
// listings.
func (s *Store) GetAll(ctx context.Context) ([]models.Page, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "parent_id", Value: 1},
		{Key: "order", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pages []models.Page
	if err := cur.All(ctx, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// Replace overwrites an existing page as a full entity. Edits are whole
// replacements, not field patches.
func (s *Store) Replace(ctx context.Context, page models.Page) error {
	page.LastUpdated = time.Now().UTC()

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": page.ID}, page)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the page and every listed descendant in one call.
// Deleting a parent always cascades; callers compute the descendant set
// from the tree before calling.
func (s *Store) Delete(ctx context.Context, id string, descendantIDs []string) (int64, error) {
	ids := append([]string{id}, descendantIDs...)
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SlugExists reports whether another page under the same parent already
// uses the slug. excludeID skips the page's own record during a replace.
func (s *Store) SlugExists(ctx context.Context, parentID, slug, excludeID string) (bool, error) {
	filter := bson.M{"parent_id": parentID, "slug": slug}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	count, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PageExists reports whether a page with the given id exists. It satisfies
// the content.PageSelector collaborator used by pageLink block validation.
func (s *Store) PageExists(ctx context.Context, pageID string) bool {
	count, err := s.c.CountDocuments(ctx, bson.M{"_id": pageID})
	return err == nil && count > 0
}

// Count returns the number of pages.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// ReplaceAll atomically swaps the whole collection for the given set, for
// backup restore and import. Existing pages are dropped first; ids arrive
// from the snapshot and are preserved.
func (s *Store) ReplaceAll(ctx context.Context, pages []models.Page) error {
	if _, err := s.c.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(pages) == 0 {
		return nil
	}
	docs := make([]interface{}, len(pages))
	for i, p := range pages {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		docs[i] = p
	}
	_, err := s.c.InsertMany(ctx, docs)
	return err
}
