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


package openai

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/studygen/ai"
	"github.com/poiesic/studygen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel returns canned responses in call order, repeating the last
// one when calls outnumber responses.
type fakeModel struct {
	responses []string
	calls     int
	err       error
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	f.calls++
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.responses[idx]}},
	}, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

type fakeCache struct {
	entries map[string]string
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(prompt string) (string, bool, error) {
	resp, ok := c.entries[prompt]
	return resp, ok, nil
}

func (c *fakeCache) Put(prompt, response string) error {
	c.entries[prompt] = response
	c.puts++
	return nil
}

func testGenerator(t *testing.T, model llms.Model) *Generator {
	t.Helper()
	cfg := ai.NewConfig(ai.WithSubject("the SIE exam"))
	return &Generator{
		client: model,
		cfg:    cfg,
		logger: slog.Default(),
	}
}

func TestGenerateConceptsFiltersInvalid(t *testing.T) {
	model := &fakeModel{responses: []string{`{
		"concepts": [
			{"title": "Primary Market", "explanation": "The market where new securities are issued directly by the issuer to investors.", "example": "An IPO."},
			{"title": "Stub", "explanation": "too short"}
		]
	}`}}
	g := testGenerator(t, model)

	topic := core.Topic{Title: "Capital Markets"}
	concepts, err := g.GenerateConcepts(context.Background(), topic, "material")
	require.NoError(t, err)
	require.Len(t, concepts, 1)
	assert.Equal(t, "Primary Market", concepts[0].Title)
	assert.Equal(t, "Capital Markets", concepts[0].TopicTitle)
	assert.Equal(t, core.PlaceholderTopicID, concepts[0].TopicId)
	assert.Equal(t, "An IPO.", concepts[0].Example)
}

func TestGenerateConceptsKeepsAssignedTopicId(t *testing.T) {
	model := &fakeModel{responses: []string{`{
		"concepts": [
			{"title": "Yield", "explanation": "The income return on an investment expressed as a percentage."}
		]
	}`}}
	g := testGenerator(t, model)

	concepts, err := g.GenerateConcepts(context.Background(), core.Topic{Id: 42, Title: "Bonds"}, "material")
	require.NoError(t, err)
	require.Len(t, concepts, 1)
	assert.Equal(t, core.ID(42), concepts[0].TopicId)
}

func TestGenerateFlashcardsAcceptsBothNamings(t *testing.T) {
	model := &fakeModel{responses: []string{`{
		"flashcards": [
			{"front": "Define: Bond", "back": "A debt security obligating the issuer to repay principal with interest."},
			{"question": "What is a stock?", "answer": "An equity security representing ownership in a corporation."},
			{"front": "Bad card", "back": "no"}
		]
	}`}}
	g := testGenerator(t, model)

	cards, err := g.GenerateFlashcards(context.Background(), core.Topic{Title: "Securities"}, "material")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Define: Bond", cards[0].Question)
	assert.Equal(t, "What is a stock?", cards[1].Question)
	for _, card := range cards {
		assert.Equal(t, "Securities", card.TopicTitle)
		assert.Nil(t, card.UserId)
	}
}

func TestGenerateQuestionsFiltersInvalid(t *testing.T) {
	model := &fakeModel{responses: []string{`{
		"questions": [
			{"question": "Which market trades new issues?", "options": ["Primary", "Secondary", "Third", "Fourth"], "correct_option": 0, "explanation": "New issues trade in the primary market."},
			{"question": "Too few options?", "options": ["Yes", "No"], "correct_option": 0},
			{"question": "Bad index?", "options": ["A", "B", "C"], "correct_option": 5}
		]
	}`}}
	g := testGenerator(t, model)

	questions, err := g.GenerateQuestions(context.Background(), core.Topic{Title: "Markets"}, "material")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Which market trades new issues?", questions[0].Question)
	assert.Equal(t, 0, questions[0].CorrectOption)
	assert.Equal(t, "Markets", questions[0].TopicTitle)
}

func TestGenerateOutlineTwoStep(t *testing.T) {
	model := &fakeModel{responses: []string{
		"The material covers capital markets and regulation.",
		`{
			"chapters": [
				{
					"title": "Capital Markets",
					"description": "How securities are issued and traded.",
					"topics": [
						{"title": "Primary Market", "description": "New issues."},
						"Secondary Market"
					]
				},
				{"title": "", "description": "invalid", "topics": []}
			]
		}`,
	}}
	g := testGenerator(t, model)

	chapters, err := g.GenerateOutline(context.Background(), "document text")
	require.NoError(t, err)
	assert.Equal(t, 2, model.calls)

	require.Len(t, chapters, 1)
	assert.Equal(t, "Capital Markets", chapters[0].Title)
	require.Len(t, chapters[0].Topics, 2)
	assert.Equal(t, "Primary Market", chapters[0].Topics[0].Title)
	assert.Equal(t, "New issues.", chapters[0].Topics[0].Description)

	// Bare-string topics get a synthesized description.
	assert.Equal(t, "Secondary Market", chapters[0].Topics[1].Title)
	assert.NotEmpty(t, chapters[0].Topics[1].Description)
}

func TestGenerateOutlineSummaryError(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}
	g := testGenerator(t, model)

	_, err := g.GenerateOutline(context.Background(), "document text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summarizing document")
}

func TestCompleteUsesCache(t *testing.T) {
	model := &fakeModel{responses: []string{`{"concepts": [{"title": "Yield", "explanation": "The income return on an investment expressed as a percentage."}]}`}}
	g := testGenerator(t, model)
	cache := newFakeCache()
	g.cache = cache

	topic := core.Topic{Title: "Bonds"}
	_, err := g.GenerateConcepts(context.Background(), topic, "material")
	require.NoError(t, err)
	assert.Equal(t, 1, model.calls)
	assert.Equal(t, 1, cache.puts)

	// Second identical call is served from the cache.
	_, err = g.GenerateConcepts(context.Background(), topic, "material")
	require.NoError(t, err)
	assert.Equal(t, 1, model.calls)
}

func TestCompleteNoChoices(t *testing.T) {
	model := &emptyModel{}
	g := testGenerator(t, model)

	_, err := g.GenerateConcepts(context.Background(), core.Topic{Title: "Bonds"}, "material")
	require.ErrorIs(t, err, ErrNoChoices)
}

type emptyModel struct{}

func (emptyModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{}, nil
}

func (emptyModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}
