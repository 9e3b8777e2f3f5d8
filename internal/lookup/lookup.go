// Package lookup implements the read-only queries behind every browsing
// screen: text search, civilization and topic matching, and the
// chronological timeline. No function here mutates its input.
package lookup

import (
	"strings"

	"github.com/ziadkadry99/akasha/internal/lore"
)

// TopicPreviewLimit caps the number of transmissions shown for a topic.
const TopicPreviewLimit = 5

// civilizationSynonyms lists extra match keywords for civilizations whose
// name tokens do not appear in the transmissions that concern them.
var civilizationSynonyms = map[string][]string{
	"ra":         {"law of one"},
	"lemurians":  {"lemuria"},
	"atlanteans": {"atlantis"},
}

// Search returns the excerpts whose content or source contains query,
// ignoring case. An empty query returns the input unchanged.
func Search(excerpts []lore.Excerpt, query string) []lore.Excerpt {
	if query == "" {
		return excerpts
	}
	q := strings.ToLower(query)

	var out []lore.Excerpt
	for _, e := range excerpts {
		if strings.Contains(strings.ToLower(e.Content), q) || strings.Contains(strings.ToLower(e.Source), q) {
			out = append(out, e)
		}
	}
	return out
}

// FilterSpheres narrows the sphere grid to spheres holding at least one
// excerpt that matches query. Each returned sphere carries only its
// matching excerpts. An empty query returns every sphere. The result is
// never nil.
func FilterSpheres(spheres []lore.Sphere, query string) []lore.Sphere {
	if query == "" && spheres != nil {
		return spheres
	}
	out := []lore.Sphere{}
	for _, s := range spheres {
		matches := Search(s.Excerpts, query)
		if len(matches) == 0 {
			continue
		}
		s.Excerpts = matches
		out = append(out, s)
	}
	return out
}

// CivilizationKeywords returns the lowercase keywords used to associate
// excerpts with civ: its id, the first two words of its name and any
// synonyms from the table.
func CivilizationKeywords(civ lore.Civilization) []string {
	keywords := []string{strings.ToLower(civ.ID)}

	words := strings.Split(civ.Name, " ")
	for i := 0; i < 2 && i < len(words); i++ {
		if words[i] != "" {
			keywords = append(keywords, strings.ToLower(words[i]))
		}
	}

	for _, syn := range civilizationSynonyms[civ.ID] {
		keywords = append(keywords, strings.ToLower(syn))
	}

	out := keywords[:0]
	for _, k := range keywords {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// ForCivilization returns the excerpts whose source or content mentions
// any of the civilization's keywords. Short keywords such as "the" match
// broadly; that imprecision is accepted.
func ForCivilization(excerpts []lore.Excerpt, civ lore.Civilization) []lore.Excerpt {
	keywords := CivilizationKeywords(civ)

	var out []lore.Excerpt
	for _, e := range excerpts {
		text := strings.ToLower(e.Source + " " + e.Content)
		if containsAny(text, keywords) {
			out = append(out, e)
		}
	}
	return out
}

// ForTopic returns up to TopicPreviewLimit excerpts mentioning the topic id
// or one of its related civilization ids, in encounter order.
func ForTopic(excerpts []lore.Excerpt, topic lore.Topic) []lore.Excerpt {
	keywords := make([]string, 0, len(topic.RelatedRaces)+1)
	keywords = append(keywords, strings.ToLower(topic.ID))
	for _, race := range topic.RelatedRaces {
		keywords = append(keywords, strings.ToLower(race))
	}

	var out []lore.Excerpt
	for _, e := range excerpts {
		if len(out) == TopicPreviewLimit {
			break
		}
		text := strings.ToLower(e.Content + " " + e.Source)
		if containsAny(text, keywords) {
			out = append(out, e)
		}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
