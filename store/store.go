// Package store persists named workspaces in a single-file bolt database.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/minilab/bloc/graph"
	bolt "go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("program not found")

var bucketPrograms = []byte("programs")

type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPrograms)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(name string, ws *graph.Workspace) error {
	if name == "" {
		return fmt.Errorf("empty program name")
	}
	data, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPrograms).Put([]byte(name), data)
	})
}

func (s *Store) Load(name string) (*graph.Workspace, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPrograms).Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		data = append(data, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	var ws graph.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrograms)
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return b.Delete([]byte(name))
	})
}

func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPrograms).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
