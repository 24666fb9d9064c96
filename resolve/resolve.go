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


// Package resolve rewires placeholder topic ids to store-assigned ids.
//
// Records are generated before their topics exist in the store, so
// dependents carry the topic title alongside a placeholder id. After
// topics are written, a Resolver reads the assigned ids back and stamps
// every dependent record by title. Titles the store does not know stay
// on the placeholder and are reported so the caller can decide whether
// to write them anyway.
package resolve

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/poiesic/studygen/core"
	"github.com/poiesic/studygen/store"
)

// Resolver maps record titles to store-assigned ids for one collection.
type Resolver struct {
	ids     map[string]core.ID
	missing map[string]struct{}
}

// Load reads id and title of every row in a collection and builds a
// Resolver over them. Titles are matched after trimming whitespace.
func Load(ctx context.Context, s store.Store, collection string) (*Resolver, error) {
	rows, err := s.Select(ctx, collection, "id", "title")
	if err != nil {
		return nil, fmt.Errorf("loading %s ids: %w", collection, err)
	}

	ids := make(map[string]core.ID, len(rows))
	for _, row := range rows {
		title, _ := row["title"].(string)
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		id, ok := rowID(row["id"])
		if !ok {
			continue
		}
		ids[title] = id
	}

	return &Resolver{
		ids:     ids,
		missing: map[string]struct{}{},
	}, nil
}

// rowID reads a store-assigned id, which arrives as a JSON number or a
// numeric string depending on the column type.
func rowID(v any) (core.ID, bool) {
	switch id := v.(type) {
	case float64:
		return core.ID(id), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return 0, false
		}
		return core.ID(n), true
	}
	return 0, false
}

// Lookup returns the assigned id for a title.
func (r *Resolver) Lookup(title string) (core.ID, bool) {
	id, ok := r.ids[strings.TrimSpace(title)]
	return id, ok
}

// resolve stamps one record, recording the title when unresolved.
func (r *Resolver) resolve(title string, id *core.ID) {
	assigned, ok := r.Lookup(title)
	if !ok {
		r.missing[strings.TrimSpace(title)] = struct{}{}
		return
	}
	*id = assigned
}

// StampConcepts rewrites concept topic ids in place.
func (r *Resolver) StampConcepts(concepts []core.Concept) {
	for i := range concepts {
		r.resolve(concepts[i].TopicTitle, &concepts[i].TopicId)
	}
}

// StampFlashcards rewrites flashcard topic ids in place.
func (r *Resolver) StampFlashcards(cards []core.Flashcard) {
	for i := range cards {
		r.resolve(cards[i].TopicTitle, &cards[i].TopicId)
	}
}

// StampQuestions rewrites question topic ids in place.
func (r *Resolver) StampQuestions(questions []core.Question) {
	for i := range questions {
		r.resolve(questions[i].TopicTitle, &questions[i].TopicId)
	}
}

// Links builds the chapter/topic join rows for an outline. Chapter ids
// come from the chapters Resolver, topic ids from the topics Resolver.
// Pairs with an unresolved side are skipped and recorded as missing on
// the Resolver that failed.
func Links(chapters []core.Chapter, chapterIDs, topicIDs *Resolver) []core.ChapterTopic {
	var links []core.ChapterTopic
	for _, chapter := range chapters {
		chapterID, ok := chapterIDs.Lookup(chapter.Title)
		if !ok {
			chapterIDs.missing[strings.TrimSpace(chapter.Title)] = struct{}{}
			continue
		}
		for _, topic := range chapter.Topics {
			topicID, ok := topicIDs.Lookup(topic.Title)
			if !ok {
				topicIDs.missing[strings.TrimSpace(topic.Title)] = struct{}{}
				continue
			}
			links = append(links, core.ChapterTopic{
				ChapterId: chapterID,
				TopicId:   topicID,
			})
		}
	}
	return links
}

// Missing returns the titles that failed to resolve, sorted.
func (r *Resolver) Missing() []string {
	titles := make([]string, 0, len(r.missing))
	for title := range r.missing {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}
