// Package extract scans free-form AI chat replies for flashcard material.
// This is best-effort pattern matching over untrusted text: the contract is
// text in, optional list of question/answer pairs out, and callers treat an
// empty result as "nothing to offer", never as a failure.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Card is one extracted question/answer pair.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// The assistant is asked to answer in Hungarian, so the recognized JSON keys
// cover the Hungarian spellings (with and without accents) alongside the
// English ones. Exact-match list, tried in order.
var (
	questionKeys = []string{"question", "kerdes", "kérdés", "Kerdes", "Kérdés"}
	answerKeys   = []string{"answer", "valasz", "válasz", "Valasz", "Válasz"}
)

// jsonArrayRe locates the first substring shaped like a JSON array of
// objects carrying a question-like key.
var jsonArrayRe = regexp.MustCompile(`(?is)\[.*?\{.*?"(?:question|kerdes|kérdés)".*?\}.*?\]`)

// Labeled-text patterns, tried in priority order; the first one that yields
// any pair wins and the rest are skipped.
var textPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^(?:\d+[.)]\s*)?kérd(?:ezés|és):[ \t]*(.+)\n\s*válasz:[ \t]*(.+)$`),
	regexp.MustCompile(`(?im)^(?:\d+[.)]\s*)?k(?:érdés)?:[ \t]*(.+)\n\s*v(?:álasz)?:[ \t]*(.+)$`),
	regexp.MustCompile(`(?im)^\*\*(?:kérdés|q)\*\*:[ \t]*(.+)\n\s*\*\*(?:válasz|a)\*\*:[ \t]*(.+)$`),
}

// Flashcards extracts question/answer pairs from text. Phase 1 looks for an
// embedded JSON array; on parse failure or no JSON it falls back to labeled
// "Kérdés: ... Válasz: ..." text blocks. Returns nil when neither phase
// finds a well-formed pair.
func Flashcards(text string) []Card {
	if cards := fromJSON(text); len(cards) > 0 {
		return cards
	}
	return fromLabeledText(text)
}

func fromJSON(text string) []Card {
	raw := jsonArrayRe.FindString(text)
	if raw == "" {
		return nil
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Malformed JSON falls through to the text patterns.
		return nil
	}

	var cards []Card
	for _, item := range items {
		card := Card{
			Question: firstString(item, questionKeys),
			Answer:   firstString(item, answerKeys),
		}
		if card.Question != "" && card.Answer != "" {
			cards = append(cards, card)
		}
	}
	return cards
}

func fromLabeledText(text string) []Card {
	for _, pattern := range textPatterns {
		var cards []Card
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			question := cleanLabel(m[1])
			answer := cleanLabel(m[2])
			if question != "" && answer != "" {
				cards = append(cards, Card{Question: question, Answer: answer})
			}
		}
		if len(cards) > 0 {
			return cards
		}
	}
	return nil
}

func firstString(item map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := item[key].(string); ok && v != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "**")
	s = strings.TrimSuffix(s, "**")
	return strings.TrimSpace(s)
}
