// Package facts turns free text into durable memory records using an
// ordered list of (matcher, extractor) rules. Rules are checked in order
// and the first match wins for any given span of text, so specific
// statements ("I'm vegan") are claimed before the generic name rule
// ("I'm Ana") can see them.
package facts

import (
	"regexp"
	"strings"

	"github.com/maitredhq/maitred/memory"
)

// Fact is one extracted key/value pair, prior to storage.
type Fact struct {
	Key   string
	Value string
}

// Importance assigned per key when facts are stored.
var importanceByKey = map[string]int{
	memory.KeyUserName: 4,
	memory.KeyAllergy:  4,
	memory.KeyDietary:  3,
}

// ImportanceFor returns the storage importance for a semantic key.
func ImportanceFor(key string) int {
	if v, ok := importanceByKey[key]; ok {
		return v
	}
	return 2
}

// nameStoplist rejects question words (and a few pronouns) that the name
// patterns occasionally capture ("what's my name" style utterances).
var nameStoplist = map[string]bool{
	"what": true, "who": true, "where": true, "why": true, "how": true,
	"when": true, "not": true, "so": true, "just": true,
}

type rule struct {
	key string
	re  *regexp.Regexp
	// skipIf suppresses this rule when another key already matched; used so
	// "I'm vegan" never doubles as a name statement.
	skipIf string
}

// Rules are ordered: dietary and allergy statements must precede the
// generic "I'm X" name pattern, and dislikes must precede likes.
var rules = []rule{
	{key: memory.KeyDietary, re: regexp.MustCompile(`(?i)\bi(?:'?m| am)\s+(?:a\s+)?(vegan|vegetarian|pescatarian|gluten[- ]?free|dairy[- ]?free)\b`)},
	{key: memory.KeyAllergy, re: regexp.MustCompile(`(?i)\ballergic to\s+([^.,!?\n]+)`)},
	{key: memory.KeyUserName, re: regexp.MustCompile(`(?i)\bmy name is\s+([A-Za-z][A-Za-z'\-]*)`)},
	{key: memory.KeyUserName, re: regexp.MustCompile(`(?i)\bcall me\s+([A-Za-z][A-Za-z'\-]*)`)},
	{key: memory.KeyUserName, re: regexp.MustCompile(`\bI(?:'m| am)\s+([A-Z][A-Za-z'\-]*)\b`), skipIf: memory.KeyDietary},
	{key: memory.KeyDislike, re: regexp.MustCompile(`(?i)\bi (?:don'?t|do not) like\s+([^.,!?\n]+)`)},
	{key: memory.KeyDislike, re: regexp.MustCompile(`(?i)\bi (?:dislike|hate)\s+([^.,!?\n]+)`)},
	{key: memory.KeyPreference, re: regexp.MustCompile(`(?i)\bi (?:like|love|prefer|enjoy)\s+([^.,!?\n]+)`)},
	{key: memory.KeyNote, re: regexp.MustCompile(`(?i)\bremember that\s+([^\n]+)`)},
}

// Extract scans one utterance and returns the facts it states. knownName is
// the thread's previously recorded name: a candidate hitting the stoplist is
// discarded in favor of the known name, and a candidate that matches the
// known name case-insensitively is dropped as a duplicate.
func Extract(text, knownName string) []Fact {
	var out []Fact
	claimed := map[string]bool{} // one fact per key per utterance
	for _, r := range rules {
		if claimed[r.key] {
			continue
		}
		if r.skipIf != "" && claimed[r.skipIf] {
			continue
		}
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		val := strings.TrimSpace(m[1])
		if val == "" {
			continue
		}
		if r.key == memory.KeyUserName {
			val = cleanName(val, knownName)
			if val == "" || strings.EqualFold(val, knownName) {
				claimed[r.key] = true // matched, but nothing new to record
				continue
			}
		}
		claimed[r.key] = true
		out = append(out, Fact{Key: r.key, Value: val})
	}
	return out
}

// cleanName applies the stoplist. A stoplisted candidate falls back to the
// previously known name, which the caller then drops as a duplicate.
func cleanName(candidate, knownName string) string {
	if nameStoplist[strings.ToLower(candidate)] {
		return knownName
	}
	return candidate
}
