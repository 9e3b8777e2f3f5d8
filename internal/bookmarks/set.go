// Package bookmarks keeps the transmissions a reader has saved. Two
// excerpts are the same bookmark when their content is identical, so
// distinct excerpts with identical text collapse into one entry.
package bookmarks

import (
	"encoding/json"

	"github.com/ziadkadry99/akasha/internal/lore"
)

// DefaultSlot is the storage slot the saved set lives in.
const DefaultSlot = "akasha_saved"

// Set is an ordered collection of saved excerpts, unique by content.
type Set []lore.Excerpt

// IsSaved reports whether an excerpt with the same content is in set.
func IsSaved(set Set, e lore.Excerpt) bool {
	for _, s := range set {
		if s.Content == e.Content {
			return true
		}
	}
	return false
}

// Toggle returns a new set with e removed if its content was present, or
// appended otherwise. set itself is not modified.
func Toggle(set Set, e lore.Excerpt) Set {
	out := make(Set, 0, len(set)+1)
	removed := false
	for _, s := range set {
		if s.Content == e.Content {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed {
		out = append(out, e)
	}
	return out
}

// Encode serializes set as a JSON array. An empty or nil set encodes as [].
func Encode(set Set) ([]byte, error) {
	if set == nil {
		set = Set{}
	}
	return json.Marshal(set)
}

// Decode parses a stored set. Missing or malformed data yields an empty
// set; duplicate contents keep their first occurrence.
func Decode(data []byte) Set {
	if len(data) == 0 {
		return Set{}
	}
	var raw []lore.Excerpt
	if err := json.Unmarshal(data, &raw); err != nil {
		return Set{}
	}
	out := make(Set, 0, len(raw))
	for _, e := range raw {
		if e.Content == "" || IsSaved(out, e) {
			continue
		}
		out = append(out, e)
	}
	return out
}
