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
	"fmt"

	"github.com/poiesic/studygen/core"
)

// topicsPerFallbackChapter groups pattern-extracted topics into chapters
// when no generated outline is available.
const topicsPerFallbackChapter = 5

// fallbackOutline wraps a flat topic list in synthetic chapters, five
// topics each, named after the chapter's first topic.
func fallbackOutline(topics []core.Topic) []core.Chapter {
	var chapters []core.Chapter
	for start := 0; start < len(topics); start += topicsPerFallbackChapter {
		end := start + topicsPerFallbackChapter
		if end > len(topics) {
			end = len(topics)
		}
		group := topics[start:end]
		chapters = append(chapters, core.Chapter{
			Title:       fmt.Sprintf("Chapter %d: %s", len(chapters)+1, group[0].Title),
			Description: fmt.Sprintf("Covers %s and related topics.", group[0].Title),
			Topics:      group,
		})
	}
	return chapters
}

// fallbackConcept stands in when concept generation fails for a topic,
// so the topic is not left without study material.
func fallbackConcept(topic core.Topic) core.Concept {
	return core.Concept{
		TopicId:     core.PlaceholderTopicID,
		TopicTitle:  topic.Title,
		Title:       topic.Title,
		Explanation: fmt.Sprintf("Review the source material on %s. Automatic extraction was unable to produce concepts for this topic.", topic.Title),
	}
}
