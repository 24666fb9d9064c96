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


package core

import (
	"fmt"
	"strings"
)

const (
	// MaxTitleLength bounds topic and chapter titles.
	MaxTitleLength = 100

	// MinExplanationLength bounds concept explanations below; shorter
	// explanations carry no teachable content.
	MinExplanationLength = 20

	// MinAnswerLength bounds flashcard answers below.
	MinAnswerLength = 5
)

// ValidateTopic validates a Topic according to domain rules.
//
// Validation rules:
//   - Title must be non-empty after trimming
//   - Title must not exceed MaxTitleLength
//
// NOT validated:
//   - Id (0 is valid before the store assigns one)
//   - Description (may be empty)
func ValidateTopic(topic *Topic) error {
	if topic == nil {
		return fmt.Errorf("%w: topic is nil", ErrInvalidTopic)
	}
	title := strings.TrimSpace(topic.Title)
	if title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTopic, ErrEmptyTitle)
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %w", ErrInvalidTopic, ErrTitleTooLong)
	}
	return nil
}

// ValidateChapter validates a Chapter according to domain rules.
func ValidateChapter(chapter *Chapter) error {
	if chapter == nil {
		return fmt.Errorf("%w: chapter is nil", ErrInvalidChapter)
	}
	if strings.TrimSpace(chapter.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChapter, ErrEmptyTitle)
	}
	return nil
}

// ValidateConcept validates a Concept according to domain rules.
//
// Validation rules:
//   - Title must be non-empty after trimming
//   - Explanation must be at least MinExplanationLength characters
//
// NOT validated:
//   - TopicId (placeholder values are valid until resolution)
//   - Example (optional)
func ValidateConcept(concept *Concept) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConcept)
	}
	if strings.TrimSpace(concept.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrEmptyTitle)
	}
	if len(strings.TrimSpace(concept.Explanation)) < MinExplanationLength {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrShortExplanation)
	}
	return nil
}

// ValidateFlashcard validates a Flashcard according to domain rules.
//
// Validation rules:
//   - Question and answer must be non-empty after trimming
//   - Answer must be at least MinAnswerLength characters
func ValidateFlashcard(card *Flashcard) error {
	if card == nil {
		return fmt.Errorf("%w: flashcard is nil", ErrInvalidFlashcard)
	}
	if strings.TrimSpace(card.Question) == "" || strings.TrimSpace(card.Answer) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFlashcard, ErrEmptyCardSide)
	}
	if len(strings.TrimSpace(card.Answer)) < MinAnswerLength {
		return fmt.Errorf("%w: answer shorter than %d characters", ErrInvalidFlashcard, MinAnswerLength)
	}
	return nil
}

// ValidateQuestion validates a Question according to domain rules.
//
// Validation rules:
//   - Stem must be non-empty after trimming
//   - Options must number 3 or 4, each non-empty
//   - CorrectOption must index into Options
func ValidateQuestion(question *Question) error {
	if question == nil {
		return fmt.Errorf("%w: question is nil", ErrInvalidQuestion)
	}
	if strings.TrimSpace(question.Question) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrEmptyTitle)
	}
	if len(question.Options) < 3 || len(question.Options) > 4 {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidQuestion, ErrOptionCount, len(question.Options))
	}
	for i, opt := range question.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrInvalidQuestion, i)
		}
	}
	if question.CorrectOption < 0 || question.CorrectOption >= len(question.Options) {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrCorrectOptionRange)
	}
	return nil
}
