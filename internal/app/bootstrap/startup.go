// internal/app/bootstrap/startup.go
package bootstrap

// Terminology: User Identifiers
//   - UserID / userID / user_id: The stable string id (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"errors"

	"github.com/dalemusser/stratadocs/internal/app/resources"
	userstore "github.com/dalemusser/stratadocs/internal/app/store/users"
	"github.com/dalemusser/stratadocs/internal/app/system/authutil"
	"github.com/dalemusser/stratadocs/internal/app/system/normalize"
	"github.com/dalemusser/stratadocs/internal/app/system/pageaccess"
	"github.com/dalemusser/stratadocs/internal/app/system/tasks"
	"github.com/dalemusser/stratadocs/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// Returning a non-nil error aborts startup and prevents the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	// Page password grants live in memory for the life of the process.
	// Created here so both the HTTP handler and the prune job share it.
	grantStore = pageaccess.NewGrantStore(appCfg.GrantTTL)

	// Seed admin user if configured
	if appCfg.SeedAdminLoginID != "" {
		if err := ensureAdminUser(ctx, deps.MongoDatabase, appCfg, logger); err != nil {
			logger.Error("failed to seed admin user", zap.Error(err))
			return err
		}
	}

	startTaskRunner(deps.MongoDatabase, appCfg, logger)

	return nil
}

// grantStore holds page password grants, shared between BuildHandler and the
// background prune job.
var grantStore *pageaccess.GrantStore

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(db *mongo.Database, appCfg AppConfig, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	taskRunner.Register(tasks.GrantPruneJob(grantStore, logger))
	taskRunner.Register(tasks.AuditLogTrimJob(db, appCfg.AuditLogRetention, logger))

	taskRunner.Start()
}

// ensureAdminUser ensures an admin user exists with the configured login_id.
// If a user exists with this login_id, ensure they have the admin role and an
// active status. If no user exists, create a new admin user with the
// configured password.
func ensureAdminUser(ctx context.Context, db *mongo.Database, appCfg AppConfig, logger *zap.Logger) error {
	store := userstore.New(db)
	loginID := normalize.LoginID(appCfg.SeedAdminLoginID)

	name := appCfg.SeedAdminName
	if name == "" {
		name = "Admin"
	}

	existing, err := store.GetByLoginID(ctx, loginID)
	if err == nil {
		if existing.Role == models.RoleAdmin && existing.Status != models.UserStatusDisabled {
			logger.Debug("admin user already configured", zap.String("login_id", loginID))
			return nil
		}
		upd := userstore.UserUpdate{
			LoginID:  existing.LoginID,
			FullName: existing.FullName,
			Role:     models.RoleAdmin,
			Status:   models.UserStatusActive,
		}
		if err := store.Update(ctx, existing.ID, upd); err != nil {
			return err
		}
		logger.Info("promoted existing user to admin",
			zap.String("login_id", loginID),
			zap.String("user_id", existing.ID),
			zap.String("previous_role", existing.Role))
		return nil
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		return err
	}

	if err := authutil.ValidatePassword(appCfg.SeedAdminPassword); err != nil {
		return err
	}
	hash, err := authutil.HashPassword(appCfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	created, err := store.Create(ctx, models.User{
		LoginID:      loginID,
		FullName:     name,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
	})
	if err != nil {
		return err
	}

	logger.Info("created admin user",
		zap.String("login_id", loginID),
		zap.String("user_id", created.ID))
	return nil
}
