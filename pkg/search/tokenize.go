package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Token is a single unit of a parsed search query: either a quoted phrase
// matched verbatim (case-insensitively) or a bare word that also matches
// through its stem. Exactly one of the two fields is set.
type Token struct {
	Phrase string
	Word   string
}

var phrasePattern = regexp.MustCompile(`"([^"]+)"`)

// stopWords are common English function words dropped from bare-word tokens.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "am": true, "do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true, "will": true, "would": true,
	"can": true, "could": true, "should": true, "may": true, "might": true,
	"at": true, "by": true, "for": true, "with": true, "about": true,
	"from": true, "into": true, "of": true, "on": true, "to": true,
	"in": true, "up": true, "down": true, "out": true, "off": true,
	"and": true, "or": true, "but": true, "if": true, "so": true,
	"as": true, "than": true, "then": true,
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true,
}

// Tokenize splits a free-text query into phrase and word tokens. Quoted
// phrases are extracted first, left to right, and their spans removed from
// the remainder so their words are not tokenized twice. The remainder is
// split on whitespace, dropping single-character words and stop words. All
// phrase tokens precede all word tokens in the result, each group in order
// of appearance. Word case is preserved; folding happens when predicates
// are built.
func Tokenize(query string) []Token {
	var tokens []Token

	for _, m := range phrasePattern.FindAllStringSubmatch(query, -1) {
		tokens = append(tokens, Token{Phrase: m[1]})
	}

	remainder := phrasePattern.ReplaceAllString(query, " ")
	for _, word := range strings.Fields(remainder) {
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		if stopWords[strings.ToLower(word)] {
			continue
		}
		tokens = append(tokens, Token{Word: word})
	}

	return tokens
}
