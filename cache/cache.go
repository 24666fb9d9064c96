// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package cache provides a durable prompt/response cache for generation
// calls, backed by BadgerDB.
//
// Regenerating a document after a partial failure replays identical
// prompts, so caching responses by prompt hash makes reruns cheap and
// deterministic. Keys are BLAKE2b digests of the prompt text; values
// are the raw response text.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/go-crypt/x/blake2b"
)

// Cache implements ai.ResponseCache over a BadgerDB database.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a cache at the given directory, creating it if needed.
// An empty path opens an in-memory cache that is lost on Close.
func Open(path string) (*Cache, error) {
	var opts badger.Options

	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, err
			}
		} else if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		opts = badger.DefaultOptions(path)
	}

	logger := slog.Default().With("component", "response-cache")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Cache{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached response for a prompt, if any.
func (c *Cache) Get(prompt string) (string, bool, error) {
	var response string
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(key(prompt))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			response = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return response, true, nil
}

// Put stores the response for a prompt, replacing any previous entry.
func (c *Cache) Put(prompt, response string) error {
	return c.db.Update(func(tx *badger.Txn) error {
		return tx.Set(key(prompt), []byte(response))
	})
}

// key hashes a prompt to a fixed-width cache key using BLAKE2b.
func key(prompt string) []byte {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(prompt))
	sum := h.Sum(nil)

	k := make([]byte, 0, len(keyPrefix)+8)
	k = append(k, keyPrefix...)
	k = binary.LittleEndian.AppendUint64(k, binary.LittleEndian.Uint64(sum))
	return k
}

const keyPrefix = "resp:"
