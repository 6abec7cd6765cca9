package repository

import (
	"context"
	"strings"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/repository/redis"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

// Store is what every backend provides
type Store interface {
	ports.KeyValueStore
	ports.ProfileStore
}

// Open picks a backend from the database URL:
//
//	memory:                     process memory
//	redis://, rediss://         Redis
//	libsql://, wss://           Turso
//	anything else               local SQLite file
func Open(ctx context.Context, dbURL string) (Store, error) {
	switch {
	case dbURL == "memory:" || dbURL == "memory":
		return memory.NewRepository(), nil
	case strings.HasPrefix(dbURL, "redis://") || strings.HasPrefix(dbURL, "rediss://"):
		repo, err := redis.NewRedisRepository(ctx, dbURL, "linkmaker:")
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		repo, err := sqlite.NewSQLiteRepository(dbURL)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}
