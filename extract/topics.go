package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/poiesic/studygen/core"
)

// topicHeadingRe matches numbered chapter/section headings and captures the
// heading title up to the end of the line.
var topicHeadingRe = regexp.MustCompile(`(?:Chapter|Section)\s+\d+[.:][ \t]+([^\n]+)`)

// Topics extracts topic candidates from heading-like lines.
//
// Numbered "Chapter N:" / "Section N:" headings are collected first. When
// fewer than the policy floor are found, long all-upper-case lines within a
// length band are added as title-cased topics. Duplicate titles collapse to
// the first occurrence and the result is truncated to the policy cap.
func Topics(text string, policy Policy) []core.Topic {
	var topics []core.Topic

	for _, m := range topicHeadingRe.FindAllStringSubmatch(text, -1) {
		title := strings.TrimSpace(m[1])
		if len(title) >= minTopicTitleLen {
			topics = append(topics, core.Topic{
				Title:       title,
				Description: describeTopic(title, policy.Subject),
			})
		}
	}

	if len(topics) < policy.MinTopics {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if len(line) < minUpperLineLen || len(line) > maxUpperLineLen {
				continue
			}
			if !isUpperHeading(line) {
				continue
			}
			title := titleCase(line)
			topics = append(topics, core.Topic{
				Title:       title,
				Description: describeTopic(title, policy.Subject),
			})
		}
	}

	seen := make(map[string]bool, len(topics))
	unique := topics[:0]
	for _, topic := range topics {
		if seen[topic.Title] {
			continue
		}
		seen[topic.Title] = true
		unique = append(unique, topic)
	}

	if len(unique) > policy.MaxTopics {
		unique = unique[:policy.MaxTopics]
	}
	return unique
}

func describeTopic(title, subject string) string {
	if subject == "" {
		return fmt.Sprintf("Learn about %s.", title)
	}
	return fmt.Sprintf("Learn about %s for %s.", title, subject)
}

// isUpperHeading reports whether line looks like an all-caps section header:
// it contains at least one letter and no lower-case letters.
func isUpperHeading(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// titleCase converts an all-caps heading to title case, capitalizing the
// first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
