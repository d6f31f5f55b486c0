package newsletter

import (
	"regexp"
	"strings"
)

// sentenceBoundary matches terminal punctuation followed by whitespace.
// The punctuation belongs to the preceding sentence.
var sentenceBoundary = regexp.MustCompile(`[.!?]+\s+`)

// CleanRepeatedSentences removes duplicate sentences from free text.
//
// Text is split into sentences on runs of '.', '!' or '?' followed by
// whitespace; duplicates are detected globally (not just consecutively) by
// case-insensitive, whitespace-collapsed comparison, and the first
// occurrence wins. The function is pure and idempotent. Blank input is
// returned unchanged, as is input whose every sentence would be dropped.
func CleanRepeatedSentences(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}

	sentences := splitSentences(trimmed)

	seen := make(map[string]struct{}, len(sentences))
	cleaned := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		normalized := normalizeSentence(sentence)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		cleaned = append(cleaned, sentence)
	}

	if len(cleaned) == 0 {
		return text
	}
	return strings.Join(cleaned, " ")
}

// splitSentences cuts text at sentence boundaries, keeping the terminal
// punctuation attached to each sentence. A trailing fragment without
// terminal whitespace is still a sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		// loc[0]..loc[1] covers punctuation plus whitespace; cut after the
		// punctuation run.
		end := loc[0]
		for end < loc[1] && !isSpace(text[end]) {
			end++
		}
		if s := strings.TrimSpace(text[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// normalizeSentence lowercases and collapses internal whitespace for
// duplicate comparison.
func normalizeSentence(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
