package lore

// Excerpt is a single dated transmission. SphereID, SphereTitle and ID are
// assigned by the containing sphere when the library is flattened.
type Excerpt struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Content     string `json:"content" yaml:"content"`
	Source      string `json:"source" yaml:"source"`
	Date        string `json:"date" yaml:"date"` // YYYYMMDD, not validated
	SphereID    string `json:"sphereId,omitempty" yaml:"sphere_id,omitempty"`
	SphereTitle string `json:"sphereTitle,omitempty" yaml:"sphere_title,omitempty"`
}

// Sphere is a topical group of excerpts.
type Sphere struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Excerpts    []Excerpt `json:"excerpts" yaml:"excerpts"`
}

// Civilization is an entry in the civilization directory.
type Civilization struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	System         string   `json:"system" yaml:"system"`
	Density        string   `json:"density" yaml:"density"`
	Theme          string   `json:"theme" yaml:"theme"`
	Appearance     string   `json:"appearance,omitempty" yaml:"appearance,omitempty"`
	Traits         []string `json:"traits" yaml:"traits"`
	Description    string   `json:"description" yaml:"description"`
	Gradient       string   `json:"gradient,omitempty" yaml:"gradient,omitempty"`
	Icon           string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	RelatedSpheres []string `json:"relatedSpheres,omitempty" yaml:"related_spheres,omitempty"`
}

// Topic is a cross-cutting subject linked to a set of civilizations.
type Topic struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Icon         string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	RelatedRaces []string `json:"relatedRaces" yaml:"related_races"`
}

// document is the on-disk shape of a dataset file. A file may carry any
// subset of the three sections.
type document struct {
	Spheres       []Sphere       `json:"spheres" yaml:"spheres"`
	Civilizations []Civilization `json:"civilizations" yaml:"civilizations"`
	Topics        []Topic        `json:"topics" yaml:"topics"`
}
