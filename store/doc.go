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


// Package store defines the persistence abstraction for generated study
// records and a batching writer on top of it.
//
// The Store interface exposes collection-level insert and select
// operations. The Writer splits large row sets into fixed-size batches
// and stops a collection's writes at the first failed batch, so a
// schema or auth problem surfaces once instead of once per batch.
//
// The rest subpackage implements Store against PostgREST-style HTTP
// APIs such as Supabase.
package store
