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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/studygen/ai"
	"github.com/poiesic/studygen/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrNoChoices indicates the model returned an empty choice list.
var ErrNoChoices = errors.New("model returned no choices")

// Token ceilings per task. Question generation gets the most room
// because each record carries four options plus an explanation.
const (
	summaryMaxTokens  = 1000
	outlineMaxTokens  = 2000
	conceptMaxTokens  = 2000
	cardMaxTokens     = 2000
	questionMaxTokens = 2500
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client llms.Model
	cfg    *ai.Config
	cache  ai.ResponseCache
	logger *slog.Logger
}

// Option configures optional Generator collaborators.
type Option func(*Generator)

// WithCache attaches a response cache consulted before every model call.
func WithCache(cache ai.ResponseCache) Option {
	return func(g *Generator) {
		g.cache = cache
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// wireChapter matches the outline structure requested from the LLM.
// Topics arrive either as objects or as bare title strings.
type wireChapter struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Topics      []json.RawMessage `json:"topics"`
}

// wireTopic matches a single outline topic object.
type wireTopic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// wireFlashcard accepts both the requested front/back naming and the
// question/answer naming some models substitute.
type wireFlashcard struct {
	Front    string `json:"front"`
	Back     string `json:"back"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(config *ai.Config, opts ...Option) (*Generator, error) {
	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// "none" works as a token for local OpenAI-compatible services
	// that don't require authentication.
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		client: client,
		cfg:    config,
		logger: slog.Default().With("component", "openai-generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// NewGenerator creates a generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config, opts ...Option) (ai.Generator, error) {
	return newGenerator(config, opts...)
}

// complete runs one chat call and returns the raw response text.
// The cache, when present, is consulted by prompt before the call and
// updated after it; cache failures degrade to a live call.
func (g *Generator) complete(ctx context.Context, prompt string, maxTokens int, jsonMode bool) (string, error) {
	if g.cache != nil {
		cached, ok, err := g.cache.Get(prompt)
		if err != nil {
			g.logger.Warn("cache read failed", "err", err)
		} else if ok {
			g.logger.Debug("cache hit", "prompt_len", len(prompt))
			return cached, nil
		}
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt(g.cfg.Subject)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	callOpts := []llms.CallOption{
		llms.WithTemperature(g.cfg.Temperature),
		llms.WithMaxTokens(maxTokens),
	}
	if jsonMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	response, err := g.client.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ErrNoChoices
	}

	text := response.Choices[0].Content
	if g.cache != nil {
		if err := g.cache.Put(prompt, text); err != nil {
			g.logger.Warn("cache write failed", "err", err)
		}
	}
	return text, nil
}

// GenerateOutline produces a chapter outline for the full document.
//
// It runs in two steps: a free-text summary of the supplied context,
// then a structured outline call over that summary. Chapters and topics
// that fail validation are dropped rather than failing the outline.
func (g *Generator) GenerateOutline(ctx context.Context, contextText string) ([]core.Chapter, error) {
	summary, err := g.complete(ctx, summaryPrompt(g.cfg.Subject, contextText), summaryMaxTokens, false)
	if err != nil {
		return nil, fmt.Errorf("summarizing document: %w", err)
	}

	raw, err := g.complete(ctx, outlinePrompt(g.cfg.Subject, summary), outlineMaxTokens, true)
	if err != nil {
		return nil, fmt.Errorf("generating outline: %w", err)
	}

	records, err := ai.DecodeRecords[wireChapter](raw, "chapters", "title")
	if err != nil {
		return nil, fmt.Errorf("decoding outline: %w", err)
	}

	chapters := make([]core.Chapter, 0, len(records))
	for _, rec := range records {
		chapter := core.Chapter{
			Title:       strings.TrimSpace(rec.Title),
			Description: strings.TrimSpace(rec.Description),
			Topics:      decodeOutlineTopics(rec.Topics, g.cfg.Subject),
		}
		if err := core.ValidateChapter(&chapter); err != nil {
			g.logger.Warn("dropping invalid chapter", "title", chapter.Title, "err", err)
			continue
		}
		chapters = append(chapters, chapter)
	}

	g.logger.Debug("generated outline",
		"chapters", len(chapters),
		"dropped", len(records)-len(chapters))
	return chapters, nil
}

// decodeOutlineTopics accepts topic entries as objects or bare strings.
func decodeOutlineTopics(items []json.RawMessage, subject string) []core.Topic {
	topics := make([]core.Topic, 0, len(items))
	for _, item := range items {
		var topic core.Topic

		var obj wireTopic
		if err := json.Unmarshal(item, &obj); err == nil && obj.Title != "" {
			topic = core.Topic{
				Title:       strings.TrimSpace(obj.Title),
				Description: strings.TrimSpace(obj.Description),
			}
		} else {
			var title string
			if err := json.Unmarshal(item, &title); err != nil {
				continue
			}
			topic = core.Topic{Title: strings.TrimSpace(title)}
		}

		if topic.Description == "" {
			topic.Description = fmt.Sprintf("Learn about %s for %s.", topic.Title, subject)
		}
		if err := core.ValidateTopic(&topic); err != nil {
			continue
		}
		topics = append(topics, topic)
	}
	return topics
}

// GenerateConcepts extracts key concepts for a topic from the supplied context.
func (g *Generator) GenerateConcepts(ctx context.Context, topic core.Topic, contextText string) ([]core.Concept, error) {
	raw, err := g.complete(ctx, conceptsPrompt(g.cfg.Subject, topic, contextText), conceptMaxTokens, true)
	if err != nil {
		return nil, fmt.Errorf("generating concepts for %q: %w", topic.Title, err)
	}

	records, err := ai.DecodeRecords[core.Concept](raw, "concepts", "title")
	if err != nil {
		return nil, fmt.Errorf("decoding concepts for %q: %w", topic.Title, err)
	}

	concepts := make([]core.Concept, 0, len(records))
	for _, rec := range records {
		rec.TopicId = g.topicID(topic)
		rec.TopicTitle = topic.Title
		rec.Title = strings.TrimSpace(rec.Title)
		rec.Explanation = strings.TrimSpace(rec.Explanation)
		rec.Example = strings.TrimSpace(rec.Example)
		if err := core.ValidateConcept(&rec); err != nil {
			g.logger.Warn("dropping invalid concept",
				"topic", topic.Title, "title", rec.Title, "err", err)
			continue
		}
		concepts = append(concepts, rec)
	}
	return concepts, nil
}

// GenerateFlashcards produces flashcards for a topic from the supplied context.
// Both front/back and question/answer field naming are accepted.
func (g *Generator) GenerateFlashcards(ctx context.Context, topic core.Topic, contextText string) ([]core.Flashcard, error) {
	raw, err := g.complete(ctx, flashcardsPrompt(g.cfg.Subject, topic, contextText), cardMaxTokens, true)
	if err != nil {
		return nil, fmt.Errorf("generating flashcards for %q: %w", topic.Title, err)
	}

	records, err := ai.DecodeRecords[wireFlashcard](raw, "flashcards", "front")
	if err != nil {
		return nil, fmt.Errorf("decoding flashcards for %q: %w", topic.Title, err)
	}

	cards := make([]core.Flashcard, 0, len(records))
	for _, rec := range records {
		card := core.Flashcard{
			TopicId:    g.topicID(topic),
			TopicTitle: topic.Title,
			Question:   strings.TrimSpace(firstNonEmpty(rec.Front, rec.Question)),
			Answer:     strings.TrimSpace(firstNonEmpty(rec.Back, rec.Answer)),
		}
		if err := core.ValidateFlashcard(&card); err != nil {
			g.logger.Warn("dropping invalid flashcard",
				"topic", topic.Title, "front", card.Question, "err", err)
			continue
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// GenerateQuestions produces multiple-choice questions for a topic.
func (g *Generator) GenerateQuestions(ctx context.Context, topic core.Topic, contextText string) ([]core.Question, error) {
	raw, err := g.complete(ctx, questionsPrompt(g.cfg.Subject, topic, contextText), questionMaxTokens, true)
	if err != nil {
		return nil, fmt.Errorf("generating questions for %q: %w", topic.Title, err)
	}

	records, err := ai.DecodeRecords[core.Question](raw, "questions", "question")
	if err != nil {
		return nil, fmt.Errorf("decoding questions for %q: %w", topic.Title, err)
	}

	questions := make([]core.Question, 0, len(records))
	for _, rec := range records {
		rec.TopicId = g.topicID(topic)
		rec.TopicTitle = topic.Title
		rec.Question = strings.TrimSpace(rec.Question)
		for i, opt := range rec.Options {
			rec.Options[i] = strings.TrimSpace(opt)
		}
		if err := core.ValidateQuestion(&rec); err != nil {
			g.logger.Warn("dropping invalid question",
				"topic", topic.Title, "question", rec.Question, "err", err)
			continue
		}
		questions = append(questions, rec)
	}
	return questions, nil
}

// topicID returns the topic's assigned id, or the placeholder when the
// topic has not been persisted yet.
func (g *Generator) topicID(topic core.Topic) core.ID {
	if topic.Id != 0 {
		return topic.Id
	}
	return core.PlaceholderTopicID
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
