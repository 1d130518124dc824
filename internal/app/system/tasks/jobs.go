// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/stratadocs/internal/app/system/pageaccess"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// GrantPruneJob creates a job that drops expired page-password grants from
// the in-memory grant store.
func GrantPruneJob(grants *pageaccess.GrantStore, logger *zap.Logger) Job {
	return Job{
		Name:     "grant-prune",
		Interval: 10 * time.Minute,
		Run: func(ctx context.Context) error {
			grants.Prune()
			return nil
		},
	}
}

// AuditLogTrimJob creates a job that removes audit events older than the
// retention window.
func AuditLogTrimJob(db *mongo.Database, retention time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "audit-log-trim",
		Interval: 24 * time.Hour,
		Run: func(ctx context.Context) error {
			if retention <= 0 {
				return nil
			}
			coll := db.Collection("audit_logs")
			result, err := coll.DeleteMany(ctx, bson.M{
				"created_at": bson.M{"$lt": time.Now().Add(-retention)},
			})
			if err != nil {
				return err
			}
			if result.DeletedCount > 0 {
				logger.Info("trimmed old audit events",
					zap.Int64("deleted", result.DeletedCount))
			}
			return nil
		},
	}
}
