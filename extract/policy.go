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


// Package extract derives learning artifacts from raw document text by
// deterministic pattern matching. It is the zero-dependency path of the
// pipeline and the fallback when the generation service is unavailable.
//
// Each pass is a pure function of the text and a Policy. Exceeding a cap
// truncates deterministically, keeping the earliest matches.
package extract

// Length bands applied by the extraction passes. Values follow the study
// material heuristics: headings are short, paragraphs that explain a single
// concept sit in a narrow size range, and definitions end in terminal
// punctuation.
const (
	minTopicTitleLen = 6
	minUpperLineLen  = 11
	maxUpperLineLen  = 99

	minParagraphLen   = 101
	maxParagraphLen   = 999
	minConceptTitle   = 6
	maxConceptTitle   = 99
	minExplanationLen = 51

	minExampleLen = 21
	maxExampleLen = 499

	minDefinitionLen = 21
	minQALen         = 11
	minAnswerLen     = 6

	minStemLen    = 21
	optionWindow  = 1000
	minOptions    = 3
	maxOptions    = 4
	statementScan = 30
)

// Policy carries the caps and subject wording shared by all extraction
// passes. The zero value is unusable; start from DefaultPolicy.
type Policy struct {
	// Subject names the body of material, e.g. "the SIE exam". It appears
	// in generated descriptions and synthesized question stems.
	Subject string

	// MaxTopics caps the topic pass output.
	MaxTopics int

	// MaxConcepts caps the concept pass output.
	MaxConcepts int

	// MaxFlashcards caps the combined flashcard pass output.
	MaxFlashcards int

	// MaxQuestions caps the question pass output.
	MaxQuestions int

	// MinTopics is the floor below which the topic pass widens its search
	// to upper-case heading lines.
	MinTopics int

	// MinQuestions is the floor below which the question pass synthesizes
	// additional items from declarative sentences.
	MinQuestions int
}

// DefaultPolicy returns the extraction policy used by the pipeline unless
// overridden.
func DefaultPolicy() Policy {
	return Policy{
		Subject:       "this material",
		MaxTopics:     15,
		MaxConcepts:   50,
		MaxFlashcards: 100,
		MaxQuestions:  50,
		MinTopics:     5,
		MinQuestions:  20,
	}
}
