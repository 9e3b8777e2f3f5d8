// Package article builds the reading view for a single transmission.
package article

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/akasha/internal/lookup"
	"github.com/ziadkadry99/akasha/internal/lore"
)

// WordsPerMinute is the reading speed used for ReadTime.
const WordsPerMinute = 200

// LedeWords is how many words of the content the lede keeps.
const LedeWords = 5

// Backdrop identifies the illustration shown behind an article.
type Backdrop string

const (
	BackdropDefault       Backdrop = "default"
	BackdropSolarFlash    Backdrop = "solar-flash"
	BackdropDNAActivation Backdrop = "dna-activation"
	BackdropGreatPyramid  Backdrop = "great-pyramid"
	BackdropAgartha       Backdrop = "agartha"
)

// backdropRules are checked in order; the first rule with a matching
// keyword wins.
var backdropRules = []struct {
	backdrop Backdrop
	keywords []string
}{
	{BackdropSolarFlash, []string{"solar flash", "pulse", "sun"}},
	{BackdropDNAActivation, []string{"dna", "genetic", "molecule"}},
	{BackdropGreatPyramid, []string{"pyramid", "giza", "anchor"}},
	{BackdropAgartha, []string{"agartha", "telos", "inner earth"}},
}

// Article is the view model of one excerpt.
type Article struct {
	lore.Excerpt
	Title         string   `json:"title"`
	Lede          string   `json:"lede"`
	Paragraphs    []string `json:"paragraphs"`
	ReadMinutes   int      `json:"readMinutes"`
	FormattedDate string   `json:"formattedDate"`
	Backdrop      Backdrop `json:"backdrop"`
	HTML          string   `json:"html"`
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.Typographer),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// New builds the article view for e.
func New(e lore.Excerpt) (Article, error) {
	rendered, err := Render(e.Content)
	if err != nil {
		return Article{}, fmt.Errorf("rendering %s: %w", e.ID, err)
	}
	return Article{
		Excerpt:       e,
		Title:         e.Source,
		Lede:          Lede(e.Content),
		Paragraphs:    Paragraphs(e.Content),
		ReadMinutes:   ReadTime(e.Content),
		FormattedDate: lookup.FormatDate(e.Date),
		Backdrop:      PickBackdrop(e),
		HTML:          rendered,
	}, nil
}

// ReadTime estimates minutes to read text, rounding up, never below 1.
func ReadTime(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Lede returns the first LedeWords words of text followed by an ellipsis.
func Lede(text string) string {
	words := strings.Fields(text)
	if len(words) > LedeWords {
		words = words[:LedeWords]
	}
	return strings.Join(words, " ") + "..."
}

// Paragraphs splits text on newlines, dropping blank lines.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// PickBackdrop chooses an illustration from keywords in the excerpt's
// content. The source line is not consulted.
func PickBackdrop(e lore.Excerpt) Backdrop {
	text := strings.ToLower(e.Content)
	for _, rule := range backdropRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.backdrop
			}
		}
	}
	return BackdropDefault
}

// Render converts markdown-flavoured content to HTML. Raw HTML in the
// source is not passed through.
func Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
