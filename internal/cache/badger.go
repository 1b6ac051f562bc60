package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/rs/zerolog"
)

// BadgerCache keeps solved results in an embedded on-disk store. It serves
// single-host runs that have no Redis.
type BadgerCache struct {
	db     *badger.DB
	prefix string
	ttl    time.Duration
	logger *zerolog.Logger
}

// OpenBadgerCache opens (or creates) the store in dir. An empty dir keeps
// everything in memory.
func OpenBadgerCache(dir, prefix string, ttl time.Duration, logger *zerolog.Logger) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open result store %q: %w", dir, err)
	}

	logger.Info().Str("dir", dir).Dur("ttl", ttl).Msg("Badger result cache opened")
	return &BadgerCache{
		db:     db,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func (c *BadgerCache) Get(_ context.Context, key string) (models.SolveResult, bool, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(c.prefix + key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.SolveResult{}, false, nil
	}
	if err != nil {
		return models.SolveResult{}, false, fmt.Errorf("failed to read cached result: %w", err)
	}

	var result models.SolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return models.SolveResult{}, false, nil
	}
	return result, true, nil
}

func (c *BadgerCache) Set(_ context.Context, key string, result models.SolveResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(c.prefix+key), data)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return nil
}

func (c *BadgerCache) Close() error {
	return c.db.Close()
}
