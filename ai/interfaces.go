package ai

import (
	"context"

	"github.com/poiesic/studygen/core"
)

// Generator produces learning artifacts from document context by invoking
// an external generation service. Implementations must be safe for
// concurrent use.
//
// Every method makes at least one outbound service call and blocks until it
// completes. Transport failures and irrecoverably malformed responses
// propagate as errors; callers decide between fallback records and skipping
// (see the pipeline package).
type Generator interface {
	// GenerateOutline derives chapters, each owning its topics, from the
	// opening of the study material.
	GenerateOutline(ctx context.Context, contextText string) ([]core.Chapter, error)

	// GenerateConcepts derives concepts for one topic. Returned concepts
	// carry the topic's title for later id resolution.
	GenerateConcepts(ctx context.Context, topic core.Topic, contextText string) ([]core.Concept, error)

	// GenerateFlashcards derives flashcards for one topic.
	GenerateFlashcards(ctx context.Context, topic core.Topic, contextText string) ([]core.Flashcard, error)

	// GenerateQuestions derives multiple-choice questions for one topic.
	GenerateQuestions(ctx context.Context, topic core.Topic, contextText string) ([]core.Question, error)
}

// ResponseCache stores raw generation responses keyed by their prompt so
// repeated runs can skip completed calls. Implementations must be safe for
// concurrent use. A miss is not an error.
type ResponseCache interface {
	// Get returns the cached response for a prompt, with ok reporting
	// whether one was found.
	Get(prompt string) (response string, ok bool, err error)

	// Put stores the response for a prompt, replacing any prior entry.
	Put(prompt, response string) error
}
