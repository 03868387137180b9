package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

var sessionsBucket = []byte("user_sessions")

// BoltStore persists records to a single bolt database file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (creating if needed) the session file at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("session: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("session: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}

func (b *BoltStore) Create(_ context.Context, r Record) error {
	if err := r.validate(); err != nil {
		return err
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionsBucket)
		if bucket.Get([]byte(r.SessionID)) != nil {
			return ErrDuplicateID
		}
		return bucket.Put([]byte(r.SessionID), data)
	})
}

func (b *BoltStore) Get(_ context.Context, sessionID string) (*Record, error) {
	var r *Record
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(sessionsBucket).Get([]byte(sessionID))
		if data == nil {
			return nil
		}
		r = new(Record)
		if err := json.Unmarshal(data, r); err != nil {
			return fmt.Errorf("session: failed to unmarshal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (b *BoltStore) Delete(_ context.Context, sessionID string) (bool, error) {
	var removed bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionsBucket)
		if bucket.Get([]byte(sessionID)) == nil {
			return nil
		}
		removed = true
		return bucket.Delete([]byte(sessionID))
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
