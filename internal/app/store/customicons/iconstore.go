// internal/app/store/customicons/iconstore.go
package iconstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratadocs/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when an icon does not exist.
	ErrNotFound = errors.New("icon not found")
	// ErrDuplicateName is returned when an icon name is already taken.
	ErrDuplicateName = errors.New("an icon with this name already exists")
)

// Store provides access to the custom_icons collection. Icon SVG is
// sanitized before it reaches the store.
type Store struct {
	c *mongo.Collection
}

// New creates a new icon store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("custom_icons")}
}

// Create inserts a new icon. Names are unique.
func (s *Store) Create(ctx context.Context, icon models.CustomIcon) (models.CustomIcon, error) {
	if icon.ID == "" {
		icon.ID = uuid.NewString()
	}
	icon.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, icon); err != nil {
		if wafflemongo.IsDup(err) {
			return models.CustomIcon{}, ErrDuplicateName
		}
		return models.CustomIcon{}, err
	}
	return icon, nil
}

// GetByName returns an icon by its unique name.
func (s *Store) GetByName(ctx context.Context, name string) (models.CustomIcon, error) {
	var icon models.CustomIcon
	err := s.c.FindOne(ctx, bson.M{"name": name}).Decode(&icon)
	if err == mongo.ErrNoDocuments {
		return models.CustomIcon{}, ErrNotFound
	}
	if err != nil {
		return models.CustomIcon{}, err
	}
	return icon, nil
}

// IconSVG returns the stored SVG for the named icon. It satisfies the
// content.IconSelector collaborator used by icon blocks that carry no
// inline copy.
func (s *Store) IconSVG(ctx context.Context, name string) (string, bool) {
	icon, err := s.GetByName(ctx, name)
	if err != nil {
		return "", false
	}
	return icon.SVG, true
}

// GetAll returns every icon, sorted by category then name for the picker.
func (s *Store) GetAll(ctx context.Context) ([]models.CustomIcon, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "category", Value: 1},
		{Key: "name", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var icons []models.CustomIcon
	if err := cur.All(ctx, &icons); err != nil {
		return nil, err
	}
	return icons, nil
}

// Delete removes an icon by id. Blocks referencing the icon keep their
// inline SVG copy, so existing pages keep rendering.
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ReplaceAll swaps the whole collection for the given set, for backup
// restore.
func (s *Store) ReplaceAll(ctx context.Context, icons []models.CustomIcon) error {
	if _, err := s.c.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(icons) == 0 {
		return nil
	}
	docs := make([]interface{}, len(icons))
	for i, icon := range icons {
		if icon.ID == "" {
			icon.ID = uuid.NewString()
		}
		docs[i] = icon
	}
	_, err := s.c.InsertMany(ctx, docs)
	return err
}
