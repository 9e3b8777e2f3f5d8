package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/ziadkadry99/akasha/internal/db"
	"github.com/ziadkadry99/akasha/internal/lore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupTestStore(t *testing.T) (*Store, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database, DefaultSlot, zap.NewNop()), database
}

// failingSlots simulates disabled or full storage.
type failingSlots struct {
	writes int
}

func (f *failingSlots) ReadSlot(context.Context, string) ([]byte, error) {
	return nil, errors.New("storage disabled")
}

func (f *failingSlots) WriteSlot(context.Context, string, []byte) error {
	f.writes++
	return errors.New("quota exceeded")
}

var (
	first  = lore.Excerpt{Content: "All is one", Source: "Ra", Date: "19810115"}
	second = lore.Excerpt{Content: "Love is the frequency", Source: "Pleiades", Date: "20190321"}
)

func TestToggleIsItsOwnInverse(t *testing.T) {
	sets := []Set{nil, {}, {first}, {second, first}, {second}}
	for _, s := range sets {
		for _, e := range []lore.Excerpt{first, second} {
			got := Toggle(Toggle(s, e), e)
			if !equalByContent(normalize(s), got) && !isReorderedRemoval(s, got, e) {
				t.Errorf("Toggle(Toggle(%v, %q)) = %v", s, e.Content, got)
			}
		}
	}
}

// normalize treats nil and empty sets alike.
func normalize(s Set) Set {
	if s == nil {
		return Set{}
	}
	return s
}

func equalByContent(a, b Set) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Content != b[i].Content {
			return false
		}
	}
	return true
}

// isReorderedRemoval accepts that re-adding an excerpt puts it at the end.
func isReorderedRemoval(orig, got Set, e lore.Excerpt) bool {
	if !IsSaved(orig, e) {
		return false
	}
	want := append(Toggle(orig, e), e)
	return equalByContent(want, got)
}

func TestToggleFlipsIsSaved(t *testing.T) {
	for _, s := range []Set{{}, {first}, {second}, {first, second}} {
		for _, e := range []lore.Excerpt{first, second} {
			if IsSaved(Toggle(s, e), e) == IsSaved(s, e) {
				t.Errorf("IsSaved not flipped for %q in %v", e.Content, s)
			}
		}
	}
}

func TestToggleTwiceRemoves(t *testing.T) {
	s := Toggle(Toggle(Set{}, first), first)
	if IsSaved(s, first) {
		t.Error("bookmarking twice should leave the excerpt unsaved")
	}
	if len(s) != 0 {
		t.Errorf("expected empty set, got %d entries", len(s))
	}
}

func TestToggleIdentityIsContent(t *testing.T) {
	twin := lore.Excerpt{Content: first.Content, Source: "Elsewhere", Date: "20000101"}
	s := Toggle(Set{first}, twin)
	if len(s) != 0 {
		t.Errorf("identical content should count as the same bookmark, got %v", s)
	}
}

func TestTogglePreservesOrderAndInput(t *testing.T) {
	third := lore.Excerpt{Content: "third"}
	in := Set{first, second, third}
	out := Toggle(in, second)

	if diff := cmp.Diff(Set{first, third}, out); diff != "" {
		t.Errorf("order after removal (-want +got):\n%s", diff)
	}
	if len(in) != 3 || in[1].Content != second.Content {
		t.Error("Toggle mutated its input")
	}
}

func TestEncodeDecode(t *testing.T) {
	empty, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil): %v", err)
	}
	if string(empty) != "[]" {
		t.Errorf("expected [], got %s", empty)
	}

	a, _ := Encode(Set{first, second})
	b, _ := Encode(Set{first, second})
	if string(a) != string(b) {
		t.Error("encoding the same set twice should be identical")
	}

	if diff := cmp.Diff(Set{first, second}, Decode(a)); diff != "" {
		t.Errorf("Decode (-want +got):\n%s", diff)
	}
}

func TestDecodeGarbage(t *testing.T) {
	for _, in := range []string{"", "null", "{", `{"content":"x"}`, "not json"} {
		got := Decode([]byte(in))
		if got == nil || len(got) != 0 {
			t.Errorf("Decode(%q) = %v, want empty set", in, got)
		}
	}

	dup := `[{"content":"a"},{"content":"a"},{"content":""}]`
	if got := Decode([]byte(dup)); len(got) != 1 {
		t.Errorf("expected duplicates and blanks dropped, got %v", got)
	}
}

func TestStoreLoadMissingSlot(t *testing.T) {
	store, _ := setupTestStore(t)
	if got := store.Load(context.Background()); len(got) != 0 {
		t.Errorf("expected empty set, got %v", got)
	}
}

func TestStoreLoadGarbledSlot(t *testing.T) {
	store, database := setupTestStore(t)
	ctx := context.Background()
	if err := database.WriteSlot(ctx, DefaultSlot, []byte("{{{")); err != nil {
		t.Fatalf("WriteSlot: %v", err)
	}
	if got := store.Load(ctx); len(got) != 0 {
		t.Errorf("expected empty set from garbled slot, got %v", got)
	}
}

func TestStorePersistsAcrossSessions(t *testing.T) {
	store, database := setupTestStore(t)
	ctx := context.Background()

	saved, _ := store.Toggle(ctx, first)
	if !saved {
		t.Fatal("expected first to be saved")
	}
	store.Toggle(ctx, second)

	next := NewStore(database, DefaultSlot, nil)
	restored := next.Load(ctx)
	if diff := cmp.Diff(Set{first, second}, restored); diff != "" {
		t.Errorf("restored set (-want +got):\n%s", diff)
	}
	if !next.IsSaved(second) {
		t.Error("expected second to be saved after reload")
	}
}

func TestStorePersistIdempotent(t *testing.T) {
	store, database := setupTestStore(t)
	ctx := context.Background()
	store.Toggle(ctx, first)

	if err := store.Persist(ctx); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	a, _ := database.ReadSlot(ctx, DefaultSlot)
	if err := store.Persist(ctx); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	b, _ := database.ReadSlot(ctx, DefaultSlot)
	if string(a) != string(b) {
		t.Errorf("persisting twice changed the stored value: %s vs %s", a, b)
	}
}

func TestStoreSwallowsPersistFailure(t *testing.T) {
	slots := &failingSlots{}
	store := NewStore(slots, DefaultSlot, zap.NewNop())
	ctx := context.Background()

	if got := store.Load(ctx); len(got) != 0 {
		t.Errorf("unreadable storage should load as empty, got %v", got)
	}

	saved, set := store.Toggle(ctx, first)
	if !saved || len(set) != 1 {
		t.Fatalf("toggle should succeed in memory, saved=%v set=%v", saved, set)
	}
	if slots.writes != 1 {
		t.Errorf("expected one write attempt, got %d", slots.writes)
	}
	if store.LastPersistError() == nil {
		t.Error("expected the write failure to be recorded")
	}
	if !store.IsSaved(first) {
		t.Error("in-memory set should remain authoritative")
	}
}

func TestStoreConcurrentToggles(t *testing.T) {
	store, database := setupTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Toggle(ctx, lore.Excerpt{Content: fmt.Sprintf("excerpt %d", i)})
		}(i)
	}
	wg.Wait()

	if got := len(store.Snapshot()); got != n {
		t.Fatalf("expected %d saved, got %d", n, got)
	}
	data, err := database.ReadSlot(ctx, DefaultSlot)
	if err != nil {
		t.Fatalf("ReadSlot: %v", err)
	}
	if got := len(Decode(data)); got != n {
		t.Errorf("persisted set has %d entries, want %d", got, n)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	store, _ := setupTestStore(t)
	store.Toggle(context.Background(), first)
	snap := store.Snapshot()
	snap[0].Content = "changed"
	if !store.IsSaved(first) {
		t.Error("mutating a snapshot changed the store")
	}
}

func setupRouter(store *Store) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r
}

func TestToggleEndpoint(t *testing.T) {
	store, _ := setupTestStore(t)
	r := setupRouter(store)

	body := `{"content":"All is one","source":"Ra","date":"19810115"}`
	req := httptest.NewRequest(http.MethodPost, "/api/saved/toggle", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp toggleResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if !resp.Saved || resp.Count != 1 {
		t.Errorf("unexpected response %+v", resp)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/saved/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var list listResponse
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if list.Count != 1 || list.Excerpts[0].Content != "All is one" {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestStatusEndpoint(t *testing.T) {
	store, _ := setupTestStore(t)
	store.Toggle(context.Background(), first)
	r := setupRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/saved/status", strings.NewReader(`{"content":"All is one"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if !resp["saved"] {
		t.Error("expected saved=true")
	}
}

func TestToggleEndpointValidation(t *testing.T) {
	store, _ := setupTestStore(t)
	r := setupRouter(store)

	for _, body := range []string{"not json", `{"source":"x"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/saved/toggle", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestToggleEndpointReportsPersistFailure(t *testing.T) {
	store := NewStore(&failingSlots{}, DefaultSlot, nil)
	r := setupRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/saved/toggle", strings.NewReader(`{"content":"x"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("persist failure must not fail the request, got %d", w.Code)
	}
	var resp toggleResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.Saved || resp.Warning == "" {
		t.Errorf("expected saved with a warning, got %+v", resp)
	}
}
