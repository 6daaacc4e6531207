package search

import "strings"

// irregularForms maps irregular English surface forms to their root. The
// table is consulted before any suffix rule and only ever on the full
// lowercased word.
var irregularForms = map[string]string{
	// irregular verbs
	"ran":        "run",
	"went":       "go",
	"gone":       "go",
	"was":        "be",
	"were":       "be",
	"been":       "be",
	"are":        "be",
	"did":        "do",
	"done":       "do",
	"had":        "have",
	"has":        "have",
	"said":       "say",
	"made":       "make",
	"got":        "get",
	"gotten":     "get",
	"took":       "take",
	"taken":      "take",
	"came":       "come",
	"saw":        "see",
	"seen":       "see",
	"knew":       "know",
	"known":      "know",
	"thought":    "think",
	"found":      "find",
	"gave":       "give",
	"given":      "give",
	"told":       "tell",
	"became":     "become",
	"left":       "leave",
	"felt":       "feel",
	"brought":    "bring",
	"began":      "begin",
	"begun":      "begin",
	"kept":       "keep",
	"held":       "hold",
	"wrote":      "write",
	"written":    "write",
	"stood":      "stand",
	"heard":      "hear",
	"meant":      "mean",
	"met":        "meet",
	"paid":       "pay",
	"sat":        "sit",
	"spoke":      "speak",
	"spoken":     "speak",
	"led":        "lead",
	"grew":       "grow",
	"grown":      "grow",
	"lost":       "lose",
	"fell":       "fall",
	"fallen":     "fall",
	"sent":       "send",
	"built":      "build",
	"understood": "understand",
	"drew":       "draw",
	"drawn":      "draw",
	"broke":      "break",
	"broken":     "break",
	"spent":      "spend",
	"ate":        "eat",
	"eaten":      "eat",
	"drove":      "drive",
	"driven":     "drive",
	"forgot":     "forget",
	"forgotten":  "forget",
	"chose":      "choose",
	"chosen":     "choose",
	"slept":      "sleep",
	"woke":       "wake",
	"threw":      "throw",
	"thrown":     "throw",
	"caught":     "catch",
	"taught":     "teach",
	"bought":     "buy",
	"fought":     "fight",
	"sold":       "sell",
	"won":        "win",

	// irregular nouns
	"children": "child",
	"mice":     "mouse",
	"men":      "man",
	"women":    "woman",
	"feet":     "foot",
	"teeth":    "tooth",
	"people":   "person",
	"lives":    "life",
	"wives":    "wife",
	"knives":   "knife",
	"leaves":   "leaf",

	// comparatives
	"better": "good",
	"best":   "good",
	"worse":  "bad",
	"worst":  "bad",
}

// derivationalSuffixes are tried in order after the plural and verbal rules;
// at most one is stripped.
var derivationalSuffixes = []string{
	"ness", "ment", "ly", "ful", "less", "tion", "er", "est", "able", "ible",
}

// Stem maps a surface word to the normalized root used for fuzzy matching.
// The result is a matching key, not necessarily a dictionary word
// ("happiness" stems to "happi"). Words shorter than three characters come
// back unchanged apart from lowercasing.
func Stem(word string) string {
	w := strings.ToLower(word)
	if len(w) < 3 {
		return w
	}

	if root, ok := irregularForms[w]; ok {
		return root
	}

	// Plural-style endings.
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		w = w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		w = w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "es") && len(w) > 3:
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3:
		w = w[:len(w)-1]
	}

	// Verbal endings, applied to the result above. Stripping undoes final
	// consonant doubling: running -> runn -> run.
	if strings.HasSuffix(w, "ing") && len(w) > 5 {
		w = undouble(w[:len(w)-3])
	} else if strings.HasSuffix(w, "ed") && len(w) > 4 {
		w = undouble(w[:len(w)-2])
	}

	// Derivational endings; the first hit wins, and the word must keep at
	// least two characters of stem.
	for _, suffix := range derivationalSuffixes {
		if strings.HasSuffix(w, suffix) && len(w) >= len(suffix)+2 {
			w = w[:len(w)-len(suffix)]
			break
		}
	}

	return w
}

func undouble(w string) string {
	if len(w) >= 2 && w[len(w)-1] == w[len(w)-2] {
		return w[:len(w)-1]
	}
	return w
}
