package database

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/go-tspc/tspc/internal/database"
	"github.com/go-tspc/tspc/internal/timestep/model"
)

const (
	headerBucket     = "predictor:header"
	estimatorsBucket = "predictor:estimators"
	headerKey        = "header"
)

// DB stores one predictor artifact: a header record plus one opaque
// payload per time-step estimator, keyed by step index.
type DB struct {
	sDB *database.DB
}

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

func estimatorKey(idx int) []byte {
	return []byte(fmt.Sprintf("%08d", idx))
}

func (db *DB) StoreArtifact(_ context.Context, header model.Header, estimators [][]byte) error {
	bytes, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(estimatorsBucket)); b != nil {
			if err := tx.DeleteBucket([]byte(estimatorsBucket)); err != nil {
				return fmt.Errorf("reset estimators bucket: %w", err)
			}
		}
		hb, err := tx.CreateBucketIfNotExists([]byte(headerBucket))
		if err != nil {
			return fmt.Errorf("create header bucket: %w", err)
		}
		if err := hb.Put([]byte(headerKey), bytes); err != nil {
			return fmt.Errorf("put header: %w", err)
		}
		eb, err := tx.CreateBucket([]byte(estimatorsBucket))
		if err != nil {
			return fmt.Errorf("create estimators bucket: %w", err)
		}
		for i, payload := range estimators {
			if err := eb.Put(estimatorKey(i), payload); err != nil {
				return fmt.Errorf("put estimator %d: %w", i, err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) LoadArtifact(_ context.Context) (model.Header, [][]byte, error) {
	var (
		header     model.Header
		estimators [][]byte
	)
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		hb := tx.Bucket([]byte(headerBucket))
		if hb == nil {
			return fmt.Errorf("artifact header bucket not found")
		}
		bytes := hb.Get([]byte(headerKey))
		if bytes == nil {
			return fmt.Errorf("artifact header record not found")
		}
		if err := json.Unmarshal(bytes, &header); err != nil {
			return fmt.Errorf("unmarshal header: %w", err)
		}

		eb := tx.Bucket([]byte(estimatorsBucket))
		if eb == nil {
			return fmt.Errorf("artifact estimators bucket not found")
		}
		c := eb.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			payload := make([]byte, len(v))
			copy(payload, v)
			estimators = append(estimators, payload)
		}
		return nil
	})
	if err != nil {
		return model.Header{}, nil, err
	}

	return header, estimators, nil
}
