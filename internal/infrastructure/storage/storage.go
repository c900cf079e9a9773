package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/user-management-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/user-management-backend/internal/adapter/repository/sqlite"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/database"
)

// Storage is the user repository for the configured driver plus the handle
// that releases its connections.
type Storage struct {
	Users repository.UserRepository
	close func()
}

// Open connects to the configured database and makes sure the schema exists.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to postgres", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
		return &Storage{Users: postgres.NewUserRepo(pool), close: pool.Close}, nil

	case config.DriverSQLite:
		db, err := database.NewSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("opened sqlite database", zap.String("path", cfg.Path))
		return &Storage{
			Users: sqlite.NewUserRepo(db),
			close: func() {
				if err := db.Close(); err != nil {
					logger.Warn("closing sqlite database", zap.Error(err))
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}
