package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/poiesic/studygen/core"
)

var (
	// mcqStemRe matches a numbered or labeled question stem followed by an
	// options marker.
	mcqStemRe = regexp.MustCompile(`(?ms)(?:^\d+\.|^[QM]:|Question:)\s*(.*?)\s*(?:Options:|Choices:|A\)|\(A\)|A\.)`)

	// mcqOptionRe matches a lettered option and captures its text to the
	// end of the line.
	mcqOptionRe = regexp.MustCompile(`([A-D])[).:][ \t]*([^\n]+)`)

	mcqAnswerRe      = regexp.MustCompile(`(?:Answer:|Correct:)\s*([A-D])`)
	mcqExplanationRe = regexp.MustCompile(`(?s)(?:Explanation:|Rationale:)\s*(.*?)(?:\n\n|$)`)

	// statementRe matches declarative sentences used to synthesize
	// questions when too few real MCQs are found.
	statementRe = regexp.MustCompile(`[A-Z][^.?!]{20,200}?\.`)

	modalRe = regexp.MustCompile(`\b(is|are|was|were|will|should|must|can|may)\b`)
)

var modalNegations = map[string]string{
	"is":     "is not",
	"are":    "are not",
	"was":    "was not",
	"were":   "were not",
	"will":   "will not",
	"should": "should not",
	"must":   "must not",
	"can":    "cannot",
	"may":    "may not",
}

// Questions extracts multiple-choice questions from the text.
//
// Stems are located by numbered or "Q:"/"Question:" lead-ins followed by an
// options marker; a bounded window after each stem is scanned for up to 4
// lettered options (at least 3 required), an optional "Answer: <letter>"
// and an optional "Explanation:" span. When fewer than the policy floor are
// found, additional questions are synthesized from declarative sentences
// with the original sentence as the correct option.
func Questions(text string, policy Policy) []core.Question {
	var questions []core.Question

	for _, m := range mcqStemRe.FindAllStringSubmatchIndex(text, -1) {
		stem := strings.TrimSpace(text[m[2]:m[3]])
		if len(stem) < minStemLen {
			continue
		}

		window := text[m[0]:min(m[0]+optionWindow, len(text))]
		options := scanOptions(window)
		if len(options) < minOptions {
			continue
		}

		correct := 0
		if am := mcqAnswerRe.FindStringSubmatch(window); am != nil {
			if idx := int(am[1][0] - 'A'); idx < len(options) {
				correct = idx
			}
		}

		explanation := ""
		if em := mcqExplanationRe.FindStringSubmatch(window); em != nil {
			explanation = strings.TrimSpace(em[1])
		}

		questions = append(questions, core.Question{
			TopicId:       core.PlaceholderTopicID,
			Question:      stem,
			Options:       options,
			CorrectOption: correct,
			Explanation:   explanation,
		})
	}

	if len(questions) < policy.MinQuestions {
		questions = append(questions, synthesize(text, policy)...)
	}

	if len(questions) > policy.MaxQuestions {
		questions = questions[:policy.MaxQuestions]
	}
	return questions
}

// scanOptions collects up to maxOptions lettered option lines from the
// window following a stem.
func scanOptions(window string) []string {
	var options []string
	for _, om := range mcqOptionRe.FindAllStringSubmatch(window, -1) {
		opt := strings.TrimSpace(om[2])
		if opt == "" {
			continue
		}
		options = append(options, opt)
		if len(options) == maxOptions {
			break
		}
	}
	return options
}

// synthesize builds questions from declarative sentences. The sentence is
// the correct option; three distractors are derived by modal negation, a
// negated-subject paraphrase, and an explicit falsehood wrapper. The
// distractors are plausible-looking rather than guaranteed grammatical.
func synthesize(text string, policy Policy) []core.Question {
	statements := statementRe.FindAllString(text, -1)
	if len(statements) > statementScan {
		statements = statements[:statementScan]
	}

	stem := fmt.Sprintf("Which of the following statements is true about %s?", policy.Subject)

	var questions []core.Question
	for _, statement := range statements {
		correct := strings.TrimSpace(statement)

		negated := modalRe.ReplaceAllStringFunc(correct, func(m string) string {
			return modalNegations[m]
		})

		questions = append(questions, core.Question{
			TopicId:  core.PlaceholderTopicID,
			Question: stem,
			Options: []string{
				correct,
				negated,
				negatedCoverage(correct, policy.Subject),
				"It is false that " + strings.ToLower(correct),
			},
			CorrectOption: 0,
			Explanation:   "The correct statement is: " + correct,
		})
	}
	return questions
}

// negatedCoverage rewrites a statement as "<Subject> does not cover …",
// stripping a leading "<subject> covers " when present.
func negatedCoverage(statement, subject string) string {
	body := statement
	lead := strings.ToLower(subject) + " covers "
	if strings.HasPrefix(strings.ToLower(statement), lead) {
		body = statement[len(lead):]
	}
	return upperFirst(subject) + " does not cover " + body
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
