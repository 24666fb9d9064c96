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


// Package ai provides abstractions for the external generation service
// used by studygen.
//
// The package defines the Generator interface for producing learning
// artifacts from contextual text, a Config with functional options, and the
// response normalization layer: generation services return JSON in several
// container shapes (a named array field, a bare array, code-fenced
// wrappers, or a misnamed field), and Decode reduces all of them to a
// single tagged Payload before records are unmarshaled and validated.
//
// The production implementation lives in ai/openai and talks to any
// OpenAI-compatible chat API. Tests substitute the Generator interface with
// in-test doubles.
package ai
