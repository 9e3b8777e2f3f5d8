package article

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/akasha/internal/lore"
)

func TestReadTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{401, 3},
	}
	for _, tt := range tests {
		text := strings.TrimSpace(strings.Repeat("word ", tt.words))
		if got := ReadTime(text); got != tt.want {
			t.Errorf("ReadTime(%d words) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestLede(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"The sun is a gateway of light for all", "The sun is a gateway..."},
		{"Short  text", "Short text..."},
		{"", "..."},
	}
	for _, tt := range tests {
		if got := Lede(tt.in); got != tt.want {
			t.Errorf("Lede(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParagraphs(t *testing.T) {
	got := Paragraphs("  first line \n\n   \nsecond line\n")
	if diff := cmp.Diff([]string{"first line", "second line"}, got); diff != "" {
		t.Errorf("Paragraphs (-want +got):\n%s", diff)
	}
	if got := Paragraphs(""); len(got) != 0 {
		t.Errorf("expected no paragraphs, got %v", got)
	}
}

func TestPickBackdrop(t *testing.T) {
	tests := []struct {
		name string
		e    lore.Excerpt
		want Backdrop
	}{
		{"flash", lore.Excerpt{Content: "The Solar Flash approaches"}, BackdropSolarFlash},
		{"pulse", lore.Excerpt{Content: "a pulse of light"}, BackdropSolarFlash},
		{"dna", lore.Excerpt{Content: "Your DNA is awakening"}, BackdropDNAActivation},
		{"giza", lore.Excerpt{Content: "beneath Giza lies a chamber"}, BackdropGreatPyramid},
		{"agartha", lore.Excerpt{Content: "the halls of Telos", Source: "Adama"}, BackdropAgartha},
		{"source ignored", lore.Excerpt{Content: "Crystal grids hum beneath the oceans.", Source: "Sunday Channeling Circle"}, BackdropDefault},
		{"first rule wins", lore.Excerpt{Content: "the sun touches the pyramid"}, BackdropSolarFlash},
		{"none", lore.Excerpt{Content: "love is all"}, BackdropDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PickBackdrop(tt.e); got != tt.want {
				t.Errorf("PickBackdrop = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderOmitsRawHTML(t *testing.T) {
	out, err := Render("Hello <script>alert(1)</script> world")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML leaked into output: %s", out)
	}
	if !strings.Contains(out, "<p>") {
		t.Errorf("expected a paragraph, got %s", out)
	}
}

func TestNew(t *testing.T) {
	e := lore.Excerpt{
		ID:      "ascension-mechanics-0",
		Content: "The DNA remembers.\nLight encodes itself anew.",
		Source:  "Pleiadian Collective",
		Date:    "20210704",
	}
	a, err := New(e)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Title != "Pleiadian Collective" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.FormattedDate != "July 4, 2021" {
		t.Errorf("FormattedDate = %q", a.FormattedDate)
	}
	if a.ReadMinutes != 1 {
		t.Errorf("ReadMinutes = %d", a.ReadMinutes)
	}
	if a.Backdrop != BackdropDNAActivation {
		t.Errorf("Backdrop = %q", a.Backdrop)
	}
	if len(a.Paragraphs) != 2 {
		t.Errorf("expected 2 paragraphs, got %v", a.Paragraphs)
	}
	if !strings.Contains(a.HTML, "<br") {
		t.Errorf("expected hard wraps in HTML, got %s", a.HTML)
	}
}
