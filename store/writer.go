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


package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// DefaultBatchSize is the number of rows per insert request.
const DefaultBatchSize = 20

// ErrBatchWrite wraps insert failures reported by the Writer.
var ErrBatchWrite = errors.New("batch write failed")

// Writer splits row sets into batches and inserts them sequentially.
type Writer struct {
	store  Store
	size   int
	logger *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer) error

// WithBatchSize overrides DefaultBatchSize.
func WithBatchSize(size int) WriterOption {
	return func(w *Writer) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		w.size = size
		return nil
	}
}

// WithWriterLogger overrides the default logger.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) error {
		w.logger = logger
		return nil
	}
}

// NewWriter creates a Writer over the given store.
func NewWriter(store Store, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		store:  store,
		size:   DefaultBatchSize,
		logger: slog.Default().With("component", "store-writer"),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Write inserts rows into a collection in batches.
//
// An empty row set is a no-op. Batches are written in order and the
// first failure aborts the remaining batches for this collection; the
// returned error names the collection and the one-based batch number.
func (w *Writer) Write(ctx context.Context, collection string, rows []any) error {
	if len(rows) == 0 {
		w.logger.Info("nothing to write", "collection", collection)
		return nil
	}

	batches := (len(rows) + w.size - 1) / w.size
	for i := 0; i < batches; i++ {
		start := i * w.size
		end := start + w.size
		if end > len(rows) {
			end = len(rows)
		}
		if err := w.store.Insert(ctx, collection, rows[start:end]); err != nil {
			w.logger.Error("batch insert failed",
				"collection", collection,
				"batch", i+1,
				"of", batches,
				"err", err)
			return fmt.Errorf("%w: collection %s batch %d/%d: %w",
				ErrBatchWrite, collection, i+1, batches, err)
		}
		w.logger.Debug("batch inserted",
			"collection", collection,
			"batch", i+1,
			"of", batches,
			"rows", end-start)
	}

	w.logger.Info("collection written", "collection", collection, "rows", len(rows))
	return nil
}

// Rows converts a typed slice into the []any form Write expects.
func Rows[T any](items []T) []any {
	rows := make([]any, len(items))
	for i := range items {
		rows[i] = items[i]
	}
	return rows
}
