package extract

import (
	"regexp"
	"strings"

	"github.com/poiesic/studygen/core"
)

var (
	exampleLeadRe = regexp.MustCompile(`(?:Example|For example|For instance)[:\s]+`)
	capitalLineRe = regexp.MustCompile(`\n[A-Z]`)
)

// Concepts extracts concept candidates from paragraph structure.
//
// The text is split on blank-line boundaries. A paragraph within the length
// band whose first line looks like a heading (length-bounded, not ending in
// a period) becomes a concept: the first line is the title and the rest is
// the explanation. Concepts carry the placeholder topic reference until the
// resolver stamps them.
func Concepts(text string, policy Policy) []core.Concept {
	example := findExample(text)

	var concepts []core.Concept
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) < minParagraphLen || len(para) > maxParagraphLen {
			continue
		}

		lines := strings.SplitN(para, "\n", 2)
		if len(lines) < 2 {
			continue
		}
		title := strings.TrimSpace(lines[0])
		if len(title) < minConceptTitle || len(title) > maxConceptTitle || strings.HasSuffix(title, ".") {
			continue
		}
		explanation := strings.TrimSpace(lines[1])
		if len(explanation) < minExplanationLen {
			continue
		}

		concepts = append(concepts, core.Concept{
			TopicId:     core.PlaceholderTopicID,
			Title:       title,
			Explanation: explanation,
			Example:     example,
		})
		if len(concepts) == policy.MaxConcepts {
			break
		}
	}
	return concepts
}

// findExample scans the whole document for an "Example"/"For example"/"For
// instance" lead-in and returns the first span within the example length
// band. The span ends at a blank line, at a line starting with a capital
// letter, or at the end of the document.
func findExample(text string) string {
	for _, loc := range exampleLeadRe.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		end := len(rest)
		if i := strings.Index(rest, "\n\n"); i >= 0 && i < end {
			end = i
		}
		if m := capitalLineRe.FindStringIndex(rest); m != nil && m[0] < end {
			end = m[0]
		}
		span := strings.TrimSpace(rest[:end])
		if len(span) >= minExampleLen && len(span) <= maxExampleLen {
			return span
		}
	}
	return ""
}
