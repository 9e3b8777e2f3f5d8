package lookup

import (
	"slices"
	"sort"
	"time"

	"github.com/ziadkadry99/akasha/internal/lore"
)

// AllYears selects every year in Timeline.
const AllYears = "All"

const (
	isoDate     = "2006-01-02"
	displayDate = "January 2, 2006"
)

// ParseDate reads the YYYYMMDD prefix of raw. Anything shorter, or with a
// month or day out of range, is reported as unparseable.
func ParseDate(raw string) (time.Time, bool) {
	if len(raw) < 8 {
		return time.Time{}, false
	}
	t, err := time.Parse(isoDate, raw[0:4]+"-"+raw[4:6]+"-"+raw[6:8])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders raw as a long-form date, or returns raw unchanged when
// it does not parse.
func FormatDate(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return t.Format(displayDate)
}

// SortByDate returns a copy of excerpts ordered by date. Any comparison
// involving an unparseable date reports equality, so such excerpts keep
// their relative input order under the stable sort.
func SortByDate(excerpts []lore.Excerpt, ascending bool) []lore.Excerpt {
	out := slices.Clone(excerpts)
	slices.SortStableFunc(out, func(a, b lore.Excerpt) int {
		ta, okA := ParseDate(a.Date)
		tb, okB := ParseDate(b.Date)
		if !okA || !okB {
			return 0
		}
		if ascending {
			return ta.Compare(tb)
		}
		return tb.Compare(ta)
	})
	return out
}

// GroupByYear buckets excerpts by the year of their date. Excerpts with an
// unparseable date are left out.
func GroupByYear(excerpts []lore.Excerpt) map[string][]lore.Excerpt {
	groups := make(map[string][]lore.Excerpt)
	for _, e := range excerpts {
		if _, ok := ParseDate(e.Date); !ok {
			continue
		}
		year := e.Date[0:4]
		groups[year] = append(groups[year], e)
	}
	return groups
}

// Years returns the distinct years present in excerpts, newest first.
func Years(excerpts []lore.Excerpt) []string {
	groups := GroupByYear(excerpts)
	years := make([]string, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// TimelineEntry is an excerpt decorated for chronological display.
type TimelineEntry struct {
	lore.Excerpt
	Year          string    `json:"year"`
	Parsed        bool      `json:"parsed"`
	Time          time.Time `json:"-"`
	FormattedDate string    `json:"formattedDate"`
}

// TimelineView is the sorted, optionally year-filtered timeline together
// with the year facet.
type TimelineView struct {
	Ascending bool            `json:"ascending"`
	Year      string          `json:"year"`
	Years     []string        `json:"years"`
	Entries   []TimelineEntry `json:"entries"`
}

// Timeline sorts excerpts by date and keeps those from year. An empty year
// or AllYears keeps everything, including undated excerpts, which show
// their raw date string.
func Timeline(excerpts []lore.Excerpt, ascending bool, year string) TimelineView {
	if year == "" {
		year = AllYears
	}
	view := TimelineView{
		Ascending: ascending,
		Year:      year,
		Years:     Years(excerpts),
		Entries:   []TimelineEntry{},
	}

	for _, e := range SortByDate(excerpts, ascending) {
		entry := TimelineEntry{Excerpt: e, FormattedDate: e.Date}
		if len(e.Date) >= 4 {
			entry.Year = e.Date[0:4]
		}
		if t, ok := ParseDate(e.Date); ok {
			entry.Parsed = true
			entry.Time = t
			entry.FormattedDate = t.Format(displayDate)
		}
		if year != AllYears && (!entry.Parsed || entry.Year != year) {
			continue
		}
		view.Entries = append(view.Entries, entry)
	}
	return view
}
