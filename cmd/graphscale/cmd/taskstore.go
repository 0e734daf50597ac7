package cmd

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/graphscale/graphscale/internal/progress"
	"github.com/graphscale/graphscale/pkg/config"
)

// buildTaskStore wires the progress.TaskStore named by cfg.Backend,
// opening a GORM connection and running its migration for the
// "persistent" backend. The DSN's scheme picks the driver: postgres://,
// mysql://, or a bare file path for sqlite.
func buildTaskStore(cfg config.TaskStoreConfig) (progress.TaskStore, error) {
	switch cfg.Backend {
	case "", "none":
		return progress.NoopStore{}, nil
	case "memory":
		return progress.NewObservableStore(progress.NewMemoryStore()), nil
	case "persistent":
		db, err := openTaskStoreDB(cfg.DSN)
		if err != nil {
			return nil, err
		}
		store := progress.NewGormTaskStore(db)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate task store schema: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown task store backend: %q", cfg.Backend)
	}
}

func openTaskStoreDB(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	case strings.HasPrefix(dsn, "mysql://"):
		dialector = mysql.Open(strings.TrimPrefix(dsn, "mysql://"))
	default:
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open task store database: %w", err)
	}
	return db, nil
}
