// Package tagger suggests and applies tags for archived entries, either
// from a fixed keyword rule set or from an LLM classifier.
package tagger

import (
	"strings"

	"tweetvault/pkg/archive"
)

// Suggestion is one proposed tag for an entry.
type Suggestion struct {
	Tag        string  `json:"tag"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Rule attaches a tag when any of its keywords appears in the entry text.
type Rule struct {
	Tag      string
	Category string
	Keywords []string
}

// defaultRules is intentionally small and high-precision; recall is the
// LLM classifier's job.
var defaultRules = []Rule{
	{Tag: "programming", Category: archive.CategoryTopic, Keywords: []string{"code", "programming", "software", "golang", "compiler", "debugging", "refactor"}},
	{Tag: "ai", Category: archive.CategoryTopic, Keywords: []string{" ai ", "llm", "machine learning", "neural", "gpt", "model training"}},
	{Tag: "philosophy", Category: archive.CategoryTopic, Keywords: []string{"philosophy", "stoic", "meaning of", "ethics", "epistem"}},
	{Tag: "health", Category: archive.CategoryTopic, Keywords: []string{"running", "exercise", "sleep", "gym", "workout", "meditation"}},
	{Tag: "writing", Category: archive.CategoryTopic, Keywords: []string{"writing", "essay", "draft", "editing", "blog post"}},
	{Tag: "books", Category: archive.CategoryTopic, Keywords: []string{"book", "reading", "chapter", "author"}},
	{Tag: "startup", Category: archive.CategoryTopic, Keywords: []string{"startup", "founder", "product market", "shipping", "launch"}},
	{Tag: "music", Category: archive.CategoryTopic, Keywords: []string{"music", "album", "song", "listening to"}},

	{Tag: "question", Category: archive.CategoryPattern, Keywords: []string{"?"}},
	{Tag: "list", Category: archive.CategoryPattern, Keywords: []string{"\n1.", "\n- ", "1) "}},
	{Tag: "link-share", Category: archive.CategoryPattern, Keywords: []string{"http://", "https://"}},
}

// SuggestByRules matches the text (case-insensitively) against the rule
// set. Each rule fires at most once.
func SuggestByRules(text string) []Suggestion {
	lowered := strings.ToLower(text)

	suggestions := []Suggestion{}
	for _, rule := range defaultRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				suggestions = append(suggestions, Suggestion{
					Tag:        rule.Tag,
					Category:   rule.Category,
					Confidence: 1,
				})
				break
			}
		}
	}

	return suggestions
}
