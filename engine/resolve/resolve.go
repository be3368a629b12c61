// Package resolve maps thread names and coordinates from parsed intents to
// hand entries and loom positions.
package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/types"
)

// Result holds the resolved pieces of a place intent.
type Result struct {
	Thread   string // exact thread name from the hand
	Position types.Coord
	HasPos   bool
}

// AmbiguityError indicates multiple threads matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no thread in the hand matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no thread %q in your hand", e.Name)
}

// Resolve maps the object of an intent to a thread in the hand and the
// target, if any, to a coordinate.
func Resolve(hand []types.Thread, intent types.Intent) (Result, error) {
	var res Result
	var err error

	if intent.Object != "" {
		res.Thread, err = Thread(hand, intent.Object)
		if err != nil {
			return res, err
		}
	}

	if intent.Target != "" {
		res.Position, err = loom.ParseCoord(intent.Target)
		if err != nil {
			return res, err
		}
		res.HasPos = true
	}

	return res, nil
}

// Thread resolves a single name against the hand.
func Thread(hand []types.Thread, name string) (string, error) {
	nameLower := strings.ToLower(strings.TrimSpace(name))

	// An exact name wins over word matches on longer names.
	var matches []string
	for _, t := range hand {
		if strings.ToLower(t.Name) == nameLower && !containsStr(matches, t.Name) {
			matches = append(matches, t.Name)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	matches = nil
	for _, t := range hand {
		if matchesName(t.Name, nameLower) && !containsStr(matches, t.Name) {
			matches = append(matches, t.Name)
		}
	}

	// Prefix match only when nothing matched more precisely.
	if len(matches) == 0 && nameLower != "" {
		for _, t := range hand {
			if strings.HasPrefix(strings.ToLower(t.Name), nameLower) && !containsStr(matches, t.Name) {
				matches = append(matches, t.Name)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: name}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguityError{Name: name, Candidates: matches}
	}
}

// matchesName checks if a thread name matches the query (case-insensitive).
// Supports exact match, word-based partial match and underscore forms.
func matchesName(threadName, nameLower string) bool {
	threadLower := strings.ToLower(threadName)
	if threadLower == nameLower {
		return true
	}
	// Word-based partial match: "oak" matches "old oak".
	for _, word := range strings.Fields(threadLower) {
		if word == nameLower {
			return true
		}
	}
	// Underscore normalization: "old_oak" matches "Old Oak".
	if strings.ReplaceAll(threadLower, " ", "_") == nameLower {
		return true
	}
	return strings.ReplaceAll(nameLower, "_", " ") == threadLower
}

func containsStr(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
