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


// Package openai implements ai.Generator against any OpenAI-compatible
// chat API (OpenAI, Ollama, LocalAI, vLLM).
//
// Each generation method builds a task-specific prompt, makes a single
// blocking service call at low temperature, normalizes the response through
// the ai package's tolerant decoder, and filters the result through domain
// validation. Transport failures propagate to the caller without retries;
// the pipeline decides between fallback records and skipping.
package openai
