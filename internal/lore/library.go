package lore

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed data/*
var embedded embed.FS

// DefaultInclude selects every dataset file format the loader understands.
var DefaultInclude = []string{"**/*.json", "**/*.yaml", "**/*.yml"}

// Library is the immutable, loaded content store.
type Library struct {
	spheres       []Sphere
	civilizations []Civilization
	topics        []Topic
	excerpts      []Excerpt
}

// Default loads the dataset bundled with the binary.
func Default() (*Library, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("opening embedded dataset: %w", err)
	}
	return LoadFS(sub, DefaultInclude)
}

// LoadFS reads every file in fsys matching one of the include globs and
// merges them into a library. Files are processed in lexical order so the
// sphere order, and therefore the flattened excerpt order, is stable.
func LoadFS(fsys fs.FS, include []string) (*Library, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	var merged document
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		doc, err := decode(p, data)
		if err != nil {
			return nil, err
		}
		merged.Spheres = append(merged.Spheres, doc.Spheres...)
		merged.Civilizations = append(merged.Civilizations, doc.Civilizations...)
		merged.Topics = append(merged.Topics, doc.Topics...)
	}

	return New(merged.Spheres, merged.Civilizations, merged.Topics)
}

func decode(name string, data []byte) (document, error) {
	var doc document
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("decoding %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("decoding %s: %w", name, err)
		}
	default:
		return doc, fmt.Errorf("unsupported dataset file %s", name)
	}
	return doc, nil
}

// New builds a library from already decoded records, validating ids and
// assigning each excerpt to its sphere.
func New(spheres []Sphere, civilizations []Civilization, topics []Topic) (*Library, error) {
	lib := &Library{
		spheres:       make([]Sphere, 0, len(spheres)),
		civilizations: append([]Civilization(nil), civilizations...),
		topics:        append([]Topic(nil), topics...),
	}

	sphereIDs := make(map[string]bool, len(spheres))
	for _, s := range spheres {
		if s.ID == "" {
			return nil, fmt.Errorf("sphere %q has no id", s.Title)
		}
		if sphereIDs[s.ID] {
			return nil, fmt.Errorf("duplicate sphere id %q", s.ID)
		}
		sphereIDs[s.ID] = true

		owned := Sphere{ID: s.ID, Title: s.Title, Description: s.Description}
		owned.Excerpts = make([]Excerpt, 0, len(s.Excerpts))
		for i, e := range s.Excerpts {
			if strings.TrimSpace(e.Content) == "" {
				return nil, fmt.Errorf("sphere %q excerpt %d has no content", s.ID, i)
			}
			e.ID = s.ID + "-" + strconv.Itoa(i)
			e.SphereID = s.ID
			e.SphereTitle = s.Title
			owned.Excerpts = append(owned.Excerpts, e)
		}
		lib.spheres = append(lib.spheres, owned)
		lib.excerpts = append(lib.excerpts, owned.Excerpts...)
	}

	civIDs := make(map[string]bool, len(civilizations))
	for _, c := range civilizations {
		if c.ID == "" || civIDs[c.ID] {
			return nil, fmt.Errorf("invalid or duplicate civilization id %q", c.ID)
		}
		civIDs[c.ID] = true
	}

	topicIDs := make(map[string]bool, len(topics))
	for _, t := range topics {
		if t.ID == "" || topicIDs[t.ID] {
			return nil, fmt.Errorf("invalid or duplicate topic id %q", t.ID)
		}
		topicIDs[t.ID] = true
	}

	return lib, nil
}

// Excerpts returns every excerpt in sphere order, then in-sphere order.
// The returned slice is a copy.
func (l *Library) Excerpts() []Excerpt {
	return append([]Excerpt(nil), l.excerpts...)
}

// Spheres returns a copy of the sphere list.
func (l *Library) Spheres() []Sphere {
	out := make([]Sphere, len(l.spheres))
	for i, s := range l.spheres {
		s.Excerpts = append([]Excerpt(nil), s.Excerpts...)
		out[i] = s
	}
	return out
}

// Civilizations returns a copy of the civilization directory.
func (l *Library) Civilizations() []Civilization {
	return append([]Civilization(nil), l.civilizations...)
}

// Topics returns a copy of the topic list.
func (l *Library) Topics() []Topic {
	return append([]Topic(nil), l.topics...)
}

// Sphere looks a sphere up by id.
func (l *Library) Sphere(id string) (Sphere, bool) {
	for _, s := range l.spheres {
		if s.ID == id {
			s.Excerpts = append([]Excerpt(nil), s.Excerpts...)
			return s, true
		}
	}
	return Sphere{}, false
}

// Excerpt looks an excerpt up by its flattened id.
func (l *Library) Excerpt(id string) (Excerpt, bool) {
	for _, e := range l.excerpts {
		if e.ID == id {
			return e, true
		}
	}
	return Excerpt{}, false
}

// Civilization looks a civilization up by id.
func (l *Library) Civilization(id string) (Civilization, bool) {
	for _, c := range l.civilizations {
		if c.ID == id {
			return c, true
		}
	}
	return Civilization{}, false
}

// Topic looks a topic up by id.
func (l *Library) Topic(id string) (Topic, bool) {
	for _, t := range l.topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Stats summarizes the library for startup logs and health output.
type Stats struct {
	Spheres       int `json:"spheres"`
	Excerpts      int `json:"excerpts"`
	Civilizations int `json:"civilizations"`
	Topics        int `json:"topics"`
}

func (l *Library) Stats() Stats {
	return Stats{
		Spheres:       len(l.spheres),
		Excerpts:      len(l.excerpts),
		Civilizations: len(l.civilizations),
		Topics:        len(l.topics),
	}
}
