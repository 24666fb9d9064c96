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

import "context"

// Store persists and reads back study records by collection name.
type Store interface {
	// Insert writes rows to a collection. rows must serialize to a
	// JSON array of objects.
	Insert(ctx context.Context, collection string, rows []any) error

	// Select reads the named fields of every row in a collection.
	Select(ctx context.Context, collection string, fields ...string) ([]map[string]any, error)
}
