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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTopic indicates a Topic failed validation.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidChapter indicates a Chapter failed validation.
	ErrInvalidChapter = errors.New("invalid chapter")

	// ErrInvalidConcept indicates a Concept failed validation.
	ErrInvalidConcept = errors.New("invalid concept")

	// ErrInvalidFlashcard indicates a Flashcard failed validation.
	ErrInvalidFlashcard = errors.New("invalid flashcard")

	// ErrInvalidQuestion indicates a Question failed validation.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrEmptyTitle indicates a required title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong indicates a title exceeds the maximum length.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrShortExplanation indicates an explanation is below the minimum length.
	ErrShortExplanation = errors.New("explanation is too short")

	// ErrEmptyCardSide indicates a flashcard question or answer is empty.
	ErrEmptyCardSide = errors.New("flashcard question and answer cannot be empty")

	// ErrOptionCount indicates a question has fewer than 3 or more than 4 options.
	ErrOptionCount = errors.New("question must have 3 or 4 options")

	// ErrCorrectOptionRange indicates the correct option index is out of range.
	ErrCorrectOptionRange = errors.New("correct option index out of range")
)
