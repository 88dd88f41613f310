package database

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/go-tspc/tspc/internal/logging"
)

// DB wraps a bolt database holding a single predictor artifact file.
type DB struct {
	DB *bolt.DB
}

func Open(ctx context.Context, path string) (*DB, error) {
	logger := logging.FromContext(ctx)
	logger.Debugf("opening artifact db %s", path)

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open artifact db %s: %w", path, err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Debugf("closing artifact db")

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("close artifact db: %w", err)
	}

	return nil
}
