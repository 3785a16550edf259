// Package persistence selects the storage collaborator from configuration.
package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghuser/organcare/migrations"
	"github.com/ghuser/organcare/pkg/cache"
	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/database"
	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/pkg/migrator"
	"github.com/ghuser/organcare/services/organ/domain/repositories"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence/badgerstore"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence/filestore"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence/memory"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence/redisstore"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence/sqlstore"
)

// SQLiteFileName is the database file the sqlite driver keeps in StoragePath.
const SQLiteFileName = "organcare.db"

// Store is a StateRepository that can be health-checked and closed.
type Store interface {
	repositories.StateRepository
	Ping(ctx context.Context) error
	Close() error
}

// Deps are the shared connections a driver may need. Only the one matching
// the configured driver has to be set.
type Deps struct {
	DB    *database.Database
	Redis *cache.RedisClient
}

// NeedsDatabase reports whether driver keeps state in SQL.
func NeedsDatabase(driver string) bool {
	return driver == config.StorageSQLite || driver == config.StoragePostgres
}

// OpenDatabase opens the SQL database of the sqlite or postgres driver and
// applies the migrations. It returns nil for every other driver.
func OpenDatabase(ctx context.Context, cfg *config.Config, log logger.Logger) (*database.Database, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		if err := os.MkdirAll(cfg.StoragePath, 0o750); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		dsn := "file:" + filepath.Join(cfg.StoragePath, SQLiteFileName) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		db, err := database.Open(ctx, database.DriverSQLite, dsn, log)
		if err != nil {
			return nil, err
		}
		if err := migrator.RunMigrations(db.DB(), migrator.DialectSQLite, migrations.SQLite()); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil

	case config.StoragePostgres:
		db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		if err := migrator.RunMigrations(db.DB(), migrator.DialectPostgres, migrations.Postgres()); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	}
	return nil, nil
}

// Open returns the Store for cfg.StorageDriver.
func Open(cfg *config.Config, deps Deps, log logger.Logger) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StorageFile:
		return filestore.New(cfg.StoragePath)
	case config.StorageSQLite, config.StoragePostgres:
		if deps.DB == nil {
			return nil, fmt.Errorf("storage driver %s: database not opened", cfg.StorageDriver)
		}
		return sqlstore.New(deps.DB), nil
	case config.StorageRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("storage driver %s: redis not connected", cfg.StorageDriver)
		}
		return redisstore.New(deps.Redis), nil
	case config.StorageBadger:
		return badgerstore.Open(filepath.Join(cfg.StoragePath, "badger"), log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
