// Package parser converts session command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/tink/types"
)

var verbAliases = map[string]string{
	// Hand
	"deal":    "draw",
	"d":       "draw",
	"h":       "hand",
	"threads": "hand",
	"inv":     "hand",
	"i":       "hand",

	// Placement
	"put":   "place",
	"p":     "place",
	"set":   "place",
	"drop":  "place",
	"fill":  "auto",
	"a":     "auto",
	"clear": "reset",

	// Loom
	"show":     "loom",
	"look":     "loom",
	"l":        "loom",
	"board":    "loom",
	"w":        "weave",
	"activate": "weave",
	"run":      "weave",
	"go":       "weave",

	// Catalogs
	"catalog":  "archetypes",
	"arch":     "archetypes",
	"e":        "epics",
	"stories":  "epics",
	"size":     "tier",
	"?":        "help",
	"commands": "help",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true, "in": true, "into": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	object, target := splitOnPreposition(rest)
	if target == "" && verb == "place" {
		object, target = splitTrailingCoord(rest)
	}

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

// expandMultiWordVerbs handles "look at loom", "show hand" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look", "show", "view":
		switch words[1] {
		case "at":
			return expandMultiWordVerbs(append([]string{words[0]}, words[2:]...))
		case "hand", "threads":
			return append([]string{"hand"}, words[2:]...)
		case "epics":
			return append([]string{"epics"}, words[2:]...)
		case "archetypes", "catalog":
			return append([]string{"archetypes"}, words[2:]...)
		}
	case "auto":
		if words[1] == "place" || words[1] == "fill" {
			return append([]string{"auto"}, words[2:]...)
		}
	case "new":
		if words[1] == "loom" || words[1] == "game" {
			return append([]string{"reset"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}

// splitTrailingCoord peels a coordinate off the end of "place ember 1,0"
// or "place ember 1 0". Without one, all words become the object.
func splitTrailingCoord(words []string) (object, target string) {
	n := len(words)
	if n >= 2 && isCoord(words[n-1]) {
		return strings.Join(words[:n-1], " "), words[n-1]
	}
	if n >= 3 && isInt(words[n-2]) && isInt(words[n-1]) {
		return strings.Join(words[:n-2], " "), words[n-2] + "," + words[n-1]
	}
	return strings.Join(words, " "), ""
}

// isCoord reports whether w looks like "q,r", optionally parenthesized.
func isCoord(w string) bool {
	w = strings.Trim(w, "()")
	q, r, ok := strings.Cut(w, ",")
	return ok && isInt(q) && isInt(r)
}

func isInt(w string) bool {
	w = strings.TrimPrefix(w, "-")
	if w == "" {
		return false
	}
	for _, c := range w {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
