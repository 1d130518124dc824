// internal/app/store/tags/tagstore.go
package tagstore

import (
	"context"
	"time"

	"github.com/dalemusser/stratadocs/internal/app/system/normalize"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the page_tags collection. Tags are keyed by
// label; pages reference them as plain strings, so deleting a tag never
// touches page documents.
type Store struct {
	c *mongo.Collection
}

// New creates a new tag store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("page_tags")}
}

// Upsert creates or updates a tag by label.
func (s *Store) Upsert(ctx context.Context, tag models.PageTag) error {
	tag.Label = normalize.Label(tag.Label)

	filter := bson.M{"_id": tag.Label}
	update := bson.M{
		"$set": bson.M{
			"color":       tag.Color,
			"description": tag.Description,
		},
		"$setOnInsert": bson.M{
			"created_at": time.Now().UTC(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetAll returns every tag, sorted by label.
func (s *Store) GetAll(ctx context.Context) ([]models.PageTag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tags []models.PageTag
	if err := cur.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete removes a tag by label. Pages keep the label string; it simply
// renders without tag styling afterwards.
func (s *Store) Delete(ctx context.Context, label string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": normalize.Label(label)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ReplaceAll swaps the whole collection for the given set, for backup
// restore.
func (s *Store) ReplaceAll(ctx context.Context, tags []models.PageTag) error {
	if _, err := s.c.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	docs := make([]interface{}, len(tags))
	for i, tag := range tags {
		docs[i] = tag
	}
	_, err := s.c.InsertMany(ctx, docs)
	return err
}
