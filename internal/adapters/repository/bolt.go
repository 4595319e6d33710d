package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

var boltBucket = []byte("ladder")

const boltOpenTimeout = time.Second

// BoltBackend stores each collection under one key of a bolt bucket.
type BoltBackend struct {
	db *bolt.DB
}

// NewBoltBackend opens (or creates) the bolt database at path.
func NewBoltBackend(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, filePermission, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	return &BoltBackend{db: db}, nil
}

// Name implements Backend.
func (b *BoltBackend) Name() string { return DriverBolt }

// Get implements Backend.
func (b *BoltBackend) Get(_ context.Context, collection string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return ErrNotFound
		}
		v := bucket.Get([]byte(collection))
		if v == nil {
			return ErrNotFound
		}
		// values are only valid for the life of the transaction
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Put implements Backend.
func (b *BoltBackend) Put(_ context.Context, collection string, data []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return fmt.Errorf("unable to create bucket: %w", err)
		}
		return bucket.Put([]byte(collection), data)
	})
	if err != nil {
		return fmt.Errorf("unable to put %s: %w", collection, err)
	}
	return nil
}

// Close implements Backend.
func (b *BoltBackend) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("unable to close database: %w", err)
	}
	return nil
}
