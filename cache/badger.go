package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

// Badger is a Store backed by BadgerDB.
type Badger struct {
	db *badger.DB
}

// NewBadger opens (or creates) the cache database.
func NewBadger(opts Options) (*Badger, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Dir == "" {
			dir, err := os.UserCacheDir()
			if err != nil {
				return nil, err
			}
			opts.Dir = filepath.Join(dir, "anpylar")
		}

		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, err
		}

		badgerOpts = badger.DefaultOptions(opts.Dir)
	}

	db, err := badger.Open(badgerOpts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", opts.Dir, err)
	}
	return &Badger{db: db}, nil
}

func (c *Badger) Get(key string) ([]byte, error) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrMiss
			}
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (c *Badger) Put(key string, value []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (c *Badger) Close() error {
	return c.db.Close()
}
