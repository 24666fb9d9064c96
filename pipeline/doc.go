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


// Package pipeline orchestrates the document-to-store run.
//
// A run reads a document source, segments it into overlapping windows,
// derives an outline of chapters and topics, persists the outline, then
// generates concepts, flashcards, and questions per topic and persists
// those against the store-assigned topic ids.
//
// Outline and per-topic generation normally go through an ai.Generator.
// When no generator is configured, or the outline call fails, pattern
// extraction over the raw text takes over. Per-topic failures degrade
// rather than abort: a failed concept call yields a single fallback
// concept, failed flashcard or question calls skip that topic's batch.
//
// Collections are written independently. A failed collection stops its
// own remaining batches and is recorded on the Report, but the other
// collections still get written.
package pipeline
