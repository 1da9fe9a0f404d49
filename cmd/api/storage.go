package main

import (
	"context"
	"fmt"

	"github.com/xyz-asif/goalpath/internal/config"
	"github.com/xyz-asif/goalpath/internal/database"
	"github.com/xyz-asif/goalpath/internal/features/goals"
	"github.com/xyz-asif/goalpath/internal/features/users"
	"github.com/xyz-asif/goalpath/internal/pkg/filestore"
	"github.com/xyz-asif/goalpath/internal/pkg/logger"
)

// storage bundles the repositories of the configured driver.
type storage struct {
	goals goals.Repository
	users users.Repository
	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := database.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("Connected to Postgres %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Name)
		return &storage{
			goals: goals.NewPostgresRepository(db),
			users: users.NewPostgresRepository(db),
			ping:  db.PingContext,
			close: func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		mdb, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		goalRepo := goals.NewMongoRepository(mdb.Database)
		userRepo := users.NewMongoRepository(mdb.Database)
		if err := goalRepo.EnsureIndexes(ctx); err != nil {
			mdb.Disconnect(ctx)
			return nil, err
		}
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			mdb.Disconnect(ctx)
			return nil, err
		}
		logger.Info("Connected to MongoDB database %s", cfg.MongoDB)
		return &storage{
			goals: goalRepo,
			users: userRepo,
			ping:  mdb.Ping,
			close: mdb.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func openFileStore(cfg *config.Config) (filestore.Store, error) {
	switch cfg.FileStore {
	case config.FileStoreLocal:
		return filestore.NewLocal(cfg.UploadDir)
	case config.FileStoreCloudinary:
		return filestore.NewCloudinary(
			cfg.CloudinaryCloudName,
			cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret,
			cfg.CloudinaryUploadFolder,
		)
	}
	return nil, fmt.Errorf("unknown file store %q", cfg.FileStore)
}

// loadConfig reads and validates configuration and applies the log level.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
	return cfg, nil
}
