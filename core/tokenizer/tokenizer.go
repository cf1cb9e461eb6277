// ABOUTME: Tokenizer normalizes raw titles into filtered word sequences
// ABOUTME: Provides the training-time and scoring-time variants used by the model

package tokenizer

import "strings"

// siteSuffix is the decoration appended to page titles by the site itself.
// It is stripped only when training: history entries carry the decorated
// title while live feed items do not, and the two variants must stay
// behaviorally distinct.
const siteSuffix = " - YouTube"

// stopWords are low-information words excluded from tokenization.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "how": {}, "what": {}, "when": {},
	"where": {}, "why": {}, "this": {}, "that": {},
}

// Training tokenizes a title the way the training pipeline does: the
// trailing site suffix is removed before normalization.
func Training(raw string) []string {
	return tokenize(strings.TrimSuffix(raw, siteSuffix))
}

// Scoring tokenizes a title the way the scoring path does. Unlike
// Training it does not strip the site suffix.
func Scoring(raw string) []string {
	return tokenize(raw)
}

// tokenize lower-cases the input, replaces every character that is not a
// word character with a space, splits on whitespace and drops short words
// and stop words. Empty input yields an empty sequence.
func tokenize(raw string) []string {
	if raw == "" {
		return []string{}
	}

	clean := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return ' '
	}, strings.ToLower(raw))

	fields := strings.Fields(clean)
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}

	return words
}
