package search

import "strings"

// Predicates compiles tokens into parameterized SQL fragments matching
// against column. It returns one boolean clause per token plus the LIKE
// arguments in clause order; callers AND the clauses together, so an entry
// must satisfy every token. A phrase matches as a single case-folded
// substring. A word matches its literal lowercased form, or its stem when
// the stem differs and is at least three characters long.
//
// Matching is substring, not word-boundary: the query word "cat" also hits
// "category". Kept as observed.
func Predicates(tokens []Token, column string) ([]string, []any) {
	clauses := make([]string, 0, len(tokens))
	args := make([]any, 0, len(tokens))

	like := "LOWER(" + column + ") LIKE ?"

	for _, tok := range tokens {
		if tok.Phrase != "" {
			clauses = append(clauses, like)
			args = append(args, contains(tok.Phrase))
			continue
		}

		word := strings.ToLower(tok.Word)
		stem := Stem(tok.Word)
		if stem != word && len(stem) >= 3 {
			clauses = append(clauses, "("+like+" OR "+like+")")
			args = append(args, contains(word), contains(stem))
		} else {
			clauses = append(clauses, like)
			args = append(args, contains(word))
		}
	}

	return clauses, args
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
