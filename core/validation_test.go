package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTopic(t *testing.T) {
	tests := []struct {
		name    string
		topic   *Topic
		wantErr error
	}{
		{
			name:    "valid topic",
			topic:   &Topic{Title: "Market Structure", Description: "How markets are organized."},
			wantErr: nil,
		},
		{
			name:    "valid topic without description",
			topic:   &Topic{Title: "Equity Securities"},
			wantErr: nil,
		},
		{
			name:    "valid topic with ID 0",
			topic:   &Topic{Id: 0, Title: "Debt Securities"},
			wantErr: nil,
		},
		{
			name:    "nil topic",
			topic:   nil,
			wantErr: ErrInvalidTopic,
		},
		{
			name:    "empty title",
			topic:   &Topic{Title: ""},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "whitespace title",
			topic:   &Topic{Title: "   "},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "title too long",
			topic:   &Topic{Title: strings.Repeat("x", MaxTitleLength+1)},
			wantErr: ErrTitleTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopic(tt.topic)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTopic() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTopic() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConcept(t *testing.T) {
	tests := []struct {
		name    string
		concept *Concept
		wantErr error
	}{
		{
			name: "valid concept",
			concept: &Concept{
				TopicId:     PlaceholderTopicID,
				Title:       "Primary Market",
				Explanation: "The market where new securities are first issued to investors.",
			},
			wantErr: nil,
		},
		{
			name: "valid concept with example",
			concept: &Concept{
				Title:       "Secondary Market",
				Explanation: "The market where investors trade previously issued securities.",
				Example:     "Buying shares on an exchange.",
			},
			wantErr: nil,
		},
		{
			name:    "nil concept",
			concept: nil,
			wantErr: ErrInvalidConcept,
		},
		{
			name:    "empty title",
			concept: &Concept{Explanation: "An explanation long enough to be useful."},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "short explanation",
			concept: &Concept{Title: "Term", Explanation: "Too short."},
			wantErr: ErrShortExplanation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConcept(tt.concept)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateConcept() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateConcept() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFlashcard(t *testing.T) {
	tests := []struct {
		name    string
		card    *Flashcard
		wantErr error
	}{
		{
			name:    "valid card",
			card:    &Flashcard{Question: "Define: Bond", Answer: "A debt security issued by a borrower."},
			wantErr: nil,
		},
		{
			name:    "nil card",
			card:    nil,
			wantErr: ErrInvalidFlashcard,
		},
		{
			name:    "empty question",
			card:    &Flashcard{Question: " ", Answer: "A valid answer."},
			wantErr: ErrEmptyCardSide,
		},
		{
			name:    "empty answer",
			card:    &Flashcard{Question: "Define: Bond", Answer: ""},
			wantErr: ErrEmptyCardSide,
		},
		{
			name:    "answer too short",
			card:    &Flashcard{Question: "Define: Bond", Answer: "No."},
			wantErr: ErrInvalidFlashcard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFlashcard(tt.card)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFlashcard() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFlashcard() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	valid := &Question{
		Question:      "Which market trades previously issued securities?",
		Options:       []string{"Secondary market", "Primary market", "Money market"},
		CorrectOption: 0,
	}

	tests := []struct {
		name     string
		question *Question
		wantErr  error
	}{
		{
			name:     "valid with three options",
			question: valid,
			wantErr:  nil,
		},
		{
			name: "valid with four options",
			question: &Question{
				Question:      "What does SIPC protect against?",
				Options:       []string{"Broker failure", "Market loss", "Inflation", "Fraud"},
				CorrectOption: 3,
			},
			wantErr: nil,
		},
		{
			name:     "nil question",
			question: nil,
			wantErr:  ErrInvalidQuestion,
		},
		{
			name: "two options",
			question: &Question{
				Question:      "Coin flip?",
				Options:       []string{"Heads", "Tails"},
				CorrectOption: 0,
			},
			wantErr: ErrOptionCount,
		},
		{
			name: "five options",
			question: &Question{
				Question:      "Pick one of five.",
				Options:       []string{"a", "b", "c", "d", "e"},
				CorrectOption: 0,
			},
			wantErr: ErrOptionCount,
		},
		{
			name: "correct option out of range",
			question: &Question{
				Question:      "Which index is valid?",
				Options:       []string{"a", "b", "c"},
				CorrectOption: 3,
			},
			wantErr: ErrCorrectOptionRange,
		},
		{
			name: "negative correct option",
			question: &Question{
				Question:      "Which index is valid?",
				Options:       []string{"a", "b", "c"},
				CorrectOption: -1,
			},
			wantErr: ErrCorrectOptionRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.question)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQuestion() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQuestion() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
