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
	"fmt"

	"github.com/poiesic/studygen/core"
)

// Per-task context limits. Outline summarization reads less of the
// document than concept extraction because the summary pass runs over
// every window.
const (
	summaryContextLimit  = 2000
	conceptContextLimit  = 4000
	cardContextLimit     = 3000
	questionContextLimit = 3000
)

const systemPromptTemplate = `You are an expert curriculum designer preparing study material for %s. You respond only with the exact format requested, with no commentary before or after.`

func systemPrompt(subject string) string {
	return fmt.Sprintf(systemPromptTemplate, subject)
}

func summaryPrompt(subject, contextText string) string {
	return fmt.Sprintf(`Summarize the key themes of this excerpt from study material for %s in 3-5 sentences. Focus on what a student would need to learn.

EXCERPT:
%s`, subject, clip(contextText, summaryContextLimit))
}

func outlinePrompt(subject, summaries string) string {
	return fmt.Sprintf(`Based on these section summaries of study material for %s, produce a chapter outline.

Return a JSON object with a "chapters" array. Each chapter has:
- "title": a short chapter title
- "description": one sentence describing the chapter
- "topics": an array of 4-5 topic objects, each with "title" and "description"

Produce around 6 chapters. Topic titles must be specific enough to study on their own.

SUMMARIES:
%s`, subject, summaries)
}

func conceptsPrompt(subject string, topic core.Topic, contextText string) string {
	return fmt.Sprintf(`Extract the 5-7 most important concepts about "%s" from this study material for %s.

Return a JSON object with a "concepts" array. Each concept has:
- "title": the concept name
- "explanation": 2-4 sentences a student could learn from
- "example": a concrete example, or omit the field if none fits

MATERIAL:
%s`, topic.Title, subject, clip(contextText, conceptContextLimit))
}

func flashcardsPrompt(subject string, topic core.Topic, contextText string) string {
	return fmt.Sprintf(`Write 8-10 flashcards testing "%s" for a student preparing for %s.

Return a JSON object with a "flashcards" array. Each flashcard has:
- "front": the prompt side, a question or "Define: <term>"
- "back": the answer side, 1-3 sentences

Cover distinct facts. Do not repeat the same fact on two cards.

MATERIAL:
%s`, topic.Title, subject, clip(contextText, cardContextLimit))
}

func questionsPrompt(subject string, topic core.Topic, contextText string) string {
	return fmt.Sprintf(`Write 5-7 multiple-choice questions testing "%s" for a student preparing for %s.

Return a JSON object with a "questions" array. Each question has:
- "question": the question stem
- "options": an array of exactly 4 answer choices
- "correct_option": the zero-based index of the correct choice
- "explanation": 1-2 sentences on why the correct choice is right

Distractors must be plausible but clearly wrong to someone who knows the material.

MATERIAL:
%s`, topic.Title, subject, clip(contextText, questionContextLimit))
}

// clip truncates text to at most limit bytes. Prompts tolerate a torn
// final sentence, so no boundary search is done here.
func clip(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
