// internal/app/store/backups/backupstore.go
package backupstore

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

// ErrNotFound is returned when a backup does not exist.
var ErrNotFound = errors.New("backup not found")

// Store provides access to the backups collection. The collection is
// capped at models.BackupRetention entries; inserting past the cap evicts
// the oldest backups first.
type Store struct {
	c *mongo.Collection
}

// New creates a new backup store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("backups")}
}

// Insert stores a backup and enforces the retention cap, evicting the
// oldest entries when the cap is exceeded.
func (s *Store) Insert(ctx context.Context, b models.Backup) (models.Backup, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Backup{}, err
	}
	if err := s.enforceRetention(ctx); err != nil {
		return models.Backup{}, err
	}
	return b, nil
}

func (s *Store) enforceRetention(ctx context.Context) error {
	count, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	excess := count - models.BackupRetention
	if excess <= 0 {
		return nil
	}

	// Oldest first.
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(excess).
		SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var oldest []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &oldest); err != nil {
		return err
	}
	ids := make([]string, len(oldest))
	for i, doc := range oldest {
		ids[i] = doc.ID
	}
	_, err = s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

// GetByID returns a backup with its full snapshot.
func (s *Store) GetByID(ctx context.Context, id string) (models.Backup, error) {
	var b models.Backup
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return models.Backup{}, ErrNotFound
	}
	if err != nil {
		return models.Backup{}, err
	}
	return b, nil
}

// GetAll returns backup metadata newest first, without the snapshots, for
// listings.
func (s *Store) GetAll(ctx context.Context) ([]models.Backup, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"snapshot": 0})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var backups []models.Backup
	if err := cur.All(ctx, &backups); err != nil {
		return nil, err
	}
	return backups, nil
}

// Delete removes a backup by id.
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of stored backups.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
