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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/studygen/ai"
	"github.com/poiesic/studygen/core"
	"github.com/poiesic/studygen/document"
	"github.com/poiesic/studygen/extract"
	"github.com/poiesic/studygen/resolve"
	"github.com/poiesic/studygen/segment"
	"github.com/poiesic/studygen/store"
	"golang.org/x/time/rate"
)

// Collection names in the store.
const (
	collectionTopics        = "topics"
	collectionChapters      = "chapters"
	collectionChapterTopics = "chapter_topics"
	collectionConcepts      = "concepts"
	collectionFlashcards    = "flashcards"
	collectionQuestions     = "questions"
)

// conceptDigestMin is the minimum combined explanation length before
// generated concepts replace raw document text as grounding for
// flashcard and question prompts.
const conceptDigestMin = 500

// Pipeline runs a document through outline, generation, and seeding.
type Pipeline struct {
	st        store.Store
	generator ai.Generator
	writer    *store.Writer
	pool      *ants.Pool
	limiter   *rate.Limiter

	policy     extract.Policy
	windowSize int
	overlap    int
	batchSize  int
	logger     *slog.Logger
}

// Report summarizes what a run wrote and what it had to skip.
type Report struct {
	Chapters   int
	Topics     int
	Links      int
	Concepts   int
	Flashcards int
	Questions  int

	// PatternMode reports whether the outline came from pattern
	// extraction instead of generation.
	PatternMode bool

	// Skipped lists per-topic generation batches that were dropped
	// after a failed call, as "<topic>: <kind>".
	Skipped []string

	// Unresolved lists titles that never received a store-assigned id.
	Unresolved []string

	// Failures lists collections whose writes aborted, as
	// "<collection>: <error>".
	Failures []string
}

func (r *Report) fail(collection string, err error) {
	r.Failures = append(r.Failures, fmt.Sprintf("%s: %v", collection, err))
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithPoolSize sets how many topics generate concurrently. Default is 1,
// which keeps generation calls strictly sequential.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithPacing sets the minimum interval between generation calls.
// A non-positive interval disables pacing. Default is one second.
func WithPacing(interval time.Duration) Option {
	return func(p *Pipeline) error {
		if interval <= 0 {
			p.limiter = nil
			return nil
		}
		p.limiter = rate.NewLimiter(rate.Every(interval), 1)
		return nil
	}
}

// WithChunking overrides the segmentation window size and overlap.
func WithChunking(size, overlap int) Option {
	return func(p *Pipeline) error {
		p.windowSize = size
		p.overlap = overlap
		return nil
	}
}

// WithPolicy overrides the pattern extraction policy.
func WithPolicy(policy extract.Policy) Option {
	return func(p *Pipeline) error {
		p.policy = policy
		return nil
	}
}

// WithBatchSize overrides the store write batch size.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// NewPipeline creates a pipeline over the given store. A nil generator
// puts the pipeline in pattern-only mode.
func NewPipeline(st store.Store, generator ai.Generator, opts ...Option) (*Pipeline, error) {
	if st == nil {
		return nil, ErrStoreRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		st:         st,
		generator:  generator,
		pool:       pool,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		policy:     extract.DefaultPolicy(),
		windowSize: segment.DefaultWindowSize,
		overlap:    segment.DefaultOverlap,
		batchSize:  store.DefaultBatchSize,
		logger:     slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	writer, err := store.NewWriter(st,
		store.WithBatchSize(p.batchSize),
		store.WithWriterLogger(p.logger))
	if err != nil {
		p.Release()
		return nil, err
	}
	p.writer = writer

	return p, nil
}

// Release releases the worker pool. The pipeline must not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Run processes one document end to end and reports what was written.
//
// Topic seeding must succeed for the run to continue, since every
// dependent record needs a store-assigned topic id. After that, each
// collection fails independently.
func (p *Pipeline) Run(ctx context.Context, src document.Source) (*Report, error) {
	text, err := document.Text(src)
	if err != nil {
		return nil, err
	}

	windows, err := segment.Split(text, p.windowSize, p.overlap)
	if err != nil {
		return nil, err
	}
	p.logger.Info("document segmented", "chars", len(text), "windows", len(windows))

	report := &Report{}
	chapters := p.outline(ctx, text, windows, report)
	topics := flattenTopics(chapters)
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}
	p.logger.Info("outline ready",
		"chapters", len(chapters),
		"topics", len(topics),
		"pattern_mode", report.PatternMode)

	if err := p.writer.Write(ctx, collectionTopics, store.Rows(topics)); err != nil {
		return nil, err
	}
	report.Topics = len(topics)

	topicIDs, err := resolve.Load(ctx, p.st, collectionTopics)
	if err != nil {
		return nil, err
	}
	for i := range topics {
		if id, ok := topicIDs.Lookup(topics[i].Title); ok {
			topics[i].Id = id
		}
	}

	p.seedChapters(ctx, chapters, topicIDs, report)

	var concepts []core.Concept
	var cards []core.Flashcard
	var questions []core.Question
	if report.PatternMode || p.generator == nil {
		concepts, cards, questions = p.extractStudyRecords(text, topics)
	} else {
		concepts, cards, questions = p.generateStudyRecords(ctx, topics, windows, report)
	}

	topicIDs.StampConcepts(concepts)
	topicIDs.StampFlashcards(cards)
	topicIDs.StampQuestions(questions)

	if err := p.writer.Write(ctx, collectionConcepts, store.Rows(concepts)); err != nil {
		report.fail(collectionConcepts, err)
	} else {
		report.Concepts = len(concepts)
	}
	if err := p.writer.Write(ctx, collectionFlashcards, store.Rows(cards)); err != nil {
		report.fail(collectionFlashcards, err)
	} else {
		report.Flashcards = len(cards)
	}
	if err := p.writer.Write(ctx, collectionQuestions, store.Rows(questions)); err != nil {
		report.fail(collectionQuestions, err)
	} else {
		report.Questions = len(questions)
	}

	report.Unresolved = append(report.Unresolved, topicIDs.Missing()...)
	sort.Strings(report.Unresolved)
	p.logger.Info("run complete",
		"topics", report.Topics,
		"concepts", report.Concepts,
		"flashcards", report.Flashcards,
		"questions", report.Questions,
		"failures", len(report.Failures))
	return report, nil
}

// outline derives the chapter outline, preferring generation and falling
// back to pattern extraction over the raw text.
func (p *Pipeline) outline(ctx context.Context, text string, windows []segment.Window, report *Report) []core.Chapter {
	if p.generator != nil {
		if err := p.pace(ctx); err == nil {
			chapters, err := p.generator.GenerateOutline(ctx, windows[0].Text)
			if err != nil {
				p.logger.Warn("outline generation failed, falling back to pattern extraction", "err", err)
			} else if len(chapters) > 0 {
				return chapters
			}
		}
	}

	report.PatternMode = true
	topics := extract.Topics(text, p.policy)
	return fallbackOutline(topics)
}

// seedChapters writes chapters and the chapter/topic join rows. Both are
// soft failures; topics already exist and dependents do not need them.
func (p *Pipeline) seedChapters(ctx context.Context, chapters []core.Chapter, topicIDs *resolve.Resolver, report *Report) {
	if err := p.writer.Write(ctx, collectionChapters, store.Rows(chapters)); err != nil {
		report.fail(collectionChapters, err)
		return
	}
	report.Chapters = len(chapters)

	chapterIDs, err := resolve.Load(ctx, p.st, collectionChapters)
	if err != nil {
		report.fail(collectionChapterTopics, err)
		return
	}

	links := resolve.Links(chapters, chapterIDs, topicIDs)
	report.Unresolved = append(report.Unresolved, chapterIDs.Missing()...)
	if err := p.writer.Write(ctx, collectionChapterTopics, store.Rows(links)); err != nil {
		report.fail(collectionChapterTopics, err)
		return
	}
	report.Links = len(links)
}

// extractStudyRecords derives dependents from the raw text by pattern
// matching. Records are attached to the first topic, which in pattern
// mode is the topic the opening of the document introduced.
func (p *Pipeline) extractStudyRecords(text string, topics []core.Topic) ([]core.Concept, []core.Flashcard, []core.Question) {
	concepts := extract.Concepts(text, p.policy)
	cards := extract.Flashcards(text, p.policy)
	questions := extract.Questions(text, p.policy)

	first := topics[0].Title
	for i := range concepts {
		if concepts[i].TopicTitle == "" {
			concepts[i].TopicTitle = first
		}
	}
	for i := range cards {
		if cards[i].TopicTitle == "" {
			cards[i].TopicTitle = first
		}
	}
	for i := range questions {
		if questions[i].TopicTitle == "" {
			questions[i].TopicTitle = first
		}
	}
	return concepts, cards, questions
}

// generateStudyRecords runs per-topic generation on the worker pool and
// collects the results.
func (p *Pipeline) generateStudyRecords(ctx context.Context, topics []core.Topic, windows []segment.Window, report *Report) ([]core.Concept, []core.Flashcard, []core.Question) {
	var mu sync.Mutex
	var wg sync.WaitGroup
	var concepts []core.Concept
	var cards []core.Flashcard
	var questions []core.Question

	for _, topic := range topics {
		topic := topic
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			c, f, q, skipped := p.generateTopic(ctx, topic, windows)
			mu.Lock()
			concepts = append(concepts, c...)
			cards = append(cards, f...)
			questions = append(questions, q...)
			report.Skipped = append(report.Skipped, skipped...)
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			p.logger.Error("failed to submit topic for generation",
				"topic", topic.Title, "err", err)
		}
	}
	wg.Wait()

	sort.Strings(report.Skipped)
	return concepts, cards, questions
}

// generateTopic produces one topic's dependents. A failed concept call
// degrades to a single fallback concept; failed flashcard or question
// calls skip that batch.
func (p *Pipeline) generateTopic(ctx context.Context, topic core.Topic, windows []segment.Window) ([]core.Concept, []core.Flashcard, []core.Question, []string) {
	contextText := topicContext(windows, topic.Title)
	var skipped []string

	p.pace(ctx)
	concepts, err := p.generator.GenerateConcepts(ctx, topic, contextText)
	if err != nil || len(concepts) == 0 {
		p.logger.Warn("concept generation failed, using fallback",
			"topic", topic.Title, "err", err)
		concepts = []core.Concept{fallbackConcept(topic)}
	}

	// Substantial generated explanations ground the card and question
	// prompts better than raw document text does.
	studyContext := contextText
	if digest := conceptDigest(concepts); len(digest) >= conceptDigestMin {
		studyContext = digest
	}

	p.pace(ctx)
	cards, err := p.generator.GenerateFlashcards(ctx, topic, studyContext)
	if err != nil {
		p.logger.Warn("flashcard generation failed, skipping batch",
			"topic", topic.Title, "err", err)
		skipped = append(skipped, topic.Title+": flashcards")
		cards = nil
	}

	p.pace(ctx)
	questions, err := p.generator.GenerateQuestions(ctx, topic, studyContext)
	if err != nil {
		p.logger.Warn("question generation failed, skipping batch",
			"topic", topic.Title, "err", err)
		skipped = append(skipped, topic.Title+": questions")
		questions = nil
	}

	return concepts, cards, questions, skipped
}

// pace blocks until the rate limiter admits the next generation call.
func (p *Pipeline) pace(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

// topicContext picks the window that mentions the topic, falling back to
// the document opening.
func topicContext(windows []segment.Window, title string) string {
	needle := strings.ToLower(title)
	for _, window := range windows {
		if strings.Contains(strings.ToLower(window.Text), needle) {
			return window.Text
		}
	}
	return windows[0].Text
}

// conceptDigest joins up to three concept titles and explanations into
// one block of study text.
func conceptDigest(concepts []core.Concept) string {
	if len(concepts) > 3 {
		concepts = concepts[:3]
	}
	var b strings.Builder
	for _, concept := range concepts {
		b.WriteString(concept.Title)
		b.WriteString(": ")
		b.WriteString(concept.Explanation)
		b.WriteString("\n")
	}
	return b.String()
}

// flattenTopics collects chapter topics into one list, deduplicated by
// title with first occurrence winning.
func flattenTopics(chapters []core.Chapter) []core.Topic {
	seen := make(map[string]struct{})
	var topics []core.Topic
	for _, chapter := range chapters {
		for _, topic := range chapter.Topics {
			key := strings.ToLower(strings.TrimSpace(topic.Title))
			if _, dup := seen[key]; dup || key == "" {
				continue
			}
			seen[key] = struct{}{}
			topics = append(topics, topic)
		}
	}
	return topics
}
