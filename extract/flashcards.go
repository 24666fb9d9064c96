package extract

import (
	"regexp"
	"strings"

	"github.com/poiesic/studygen/core"
)

var (
	// definitionRe matches "Term: definition." spans where the term is
	// capitalized and length-bounded and the definition ends in a period.
	definitionRe = regexp.MustCompile(`([A-Z][^.?!:\n]{2,99}?)[:\x{2013}-]([^.?!]{10,500}?\.)`)

	// qaLeadRe locates explicit question lead-ins; the answer is bounded
	// within the span up to the next lead-in.
	qaLeadRe   = regexp.MustCompile(`Q:|Question:`)
	qaAnswerRe = regexp.MustCompile(`(?s)\s*(.*?)\s*(?:A:|Answer:)\s*(.*)`)
)

// Flashcards extracts flashcard candidates from two independent patterns:
// "Term: definition." spans and explicit "Q:/Question:" … "A:/Answer:"
// pairs. Both feed one capped output sequence. All cards are
// system-authored (nil owner) and carry the placeholder topic reference.
func Flashcards(text string, policy Policy) []core.Flashcard {
	var cards []core.Flashcard

	for _, m := range definitionRe.FindAllStringSubmatch(text, -1) {
		term := strings.TrimSpace(m[1])
		definition := strings.TrimSpace(m[2])
		if term == "" || len(definition) < minDefinitionLen {
			continue
		}
		cards = append(cards, core.Flashcard{
			TopicId:  core.PlaceholderTopicID,
			Question: "Define: " + term,
			Answer:   definition,
		})
	}

	cards = append(cards, questionAnswerPairs(text)...)

	if len(cards) > policy.MaxFlashcards {
		cards = cards[:policy.MaxFlashcards]
	}
	return cards
}

// questionAnswerPairs extracts "Q: … A: …" pairs. Each pair's span runs
// from its lead-in to the next lead-in or the end of the document; the
// answer is cut at the first blank line within the span.
func questionAnswerPairs(text string) []core.Flashcard {
	var cards []core.Flashcard

	leads := qaLeadRe.FindAllStringIndex(text, -1)
	for i, lead := range leads {
		end := len(text)
		if i+1 < len(leads) {
			end = leads[i+1][0]
		}
		m := qaAnswerRe.FindStringSubmatch(text[lead[1]:end])
		if m == nil {
			continue
		}
		question := strings.TrimSpace(m[1])
		answer := m[2]
		if i := strings.Index(answer, "\n\n"); i >= 0 {
			answer = answer[:i]
		}
		answer = strings.TrimSpace(answer)
		if len(question) < minQALen || len(answer) < minAnswerLen {
			continue
		}
		cards = append(cards, core.Flashcard{
			TopicId:  core.PlaceholderTopicID,
			Question: question,
			Answer:   answer,
		})
	}
	return cards
}
