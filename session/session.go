// Package session persists the small bits of curation state that survive a
// restart: cluster group labels and the next cluster id to mint. Backed by
// bbolt, one file per session directory.
package session

import (
	"encoding/binary"
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"

	"github.com/neurotap/spikeview/model"
)

var (
	bucketGroups = []byte("groups")
	bucketMeta   = []byte("meta")
	keyNextID    = []byte("next_cluster_id")
)

// Store is a bbolt-backed session store.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the session store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketGroups); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error { return s.db.Close() }

// SetGroup records a cluster's curation label. An empty label deletes it.
func (s *Store) SetGroup(id model.ClusterID, label string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketGroups)
		key := []byte(strconv.Itoa(int(id)))
		if label == "" {
			return b.Delete(key)
		}
		return b.Put(key, []byte(label))
	})
}

// Groups returns all stored curation labels.
func (s *Store) Groups() (map[model.ClusterID]string, error) {
	out := make(map[model.ClusterID]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketGroups).ForEach(func(k, v []byte) error {
			id, err := strconv.Atoi(string(k))
			if err != nil {
				return fmt.Errorf("session: bad group key %q: %w", k, err)
			}
			out[model.ClusterID(id)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetNextClusterID records the next cluster id to mint.
func (s *Store) SetNextClusterID(id model.ClusterID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var v [8]byte
		binary.BigEndian.PutUint64(v[:], uint64(id))
		return tx.Bucket(bucketMeta).Put(keyNextID, v[:])
	})
}

// NextClusterID returns the stored next cluster id, or (0, false) when none
// was recorded yet.
func (s *Store) NextClusterID() (model.ClusterID, bool, error) {
	var id model.ClusterID
	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketMeta).Get(keyNextID)
		if v == nil {
			return nil
		}
		id = model.ClusterID(binary.BigEndian.Uint64(v))
		ok = true
		return nil
	})
	return id, ok, err
}
