package catalog

import (
	"testing"

	"github.com/bigkatzo/storefun-backend/internal/kv"
	"github.com/bigkatzo/storefun-backend/internal/product"
)

func ptrString(s string) *string { return &s }

func makeProducts(n int) []product.Product {
	out := make([]product.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, product.Product{ID: i, Name: "P", Visible: true})
	}
	return out
}

func TestPaginationRevealsInIncrements(t *testing.T) {
	// 25 products, page size 12: 12 → 24 → 25, then no-op
	p := NewPaginator(makeProducts(25), Options{InitialPageSize: 12, Increment: 12})

	if got := len(p.Page()); got != 12 {
		t.Fatalf("initial page: expected 12, got %d", got)
	}
	if !p.HasMore() {
		t.Fatalf("expected hasMore=true after initial page")
	}

	if !p.LoadMore() {
		t.Fatalf("first LoadMore should succeed")
	}
	if got := len(p.Page()); got != 24 {
		t.Fatalf("after first LoadMore: expected 24, got %d", got)
	}
	if !p.HasMore() {
		t.Fatalf("expected hasMore=true at 24 of 25")
	}

	if !p.LoadMore() {
		t.Fatalf("second LoadMore should succeed")
	}
	if got := len(p.Page()); got != 25 {
		t.Fatalf("after second LoadMore: expected 25, got %d", got)
	}
	if p.HasMore() {
		t.Fatalf("expected hasMore=false at the end")
	}

	if p.LoadMore() {
		t.Fatalf("LoadMore at the end must be a no-op")
	}
	if got := len(p.Page()); got != 25 {
		t.Fatalf("no-op LoadMore changed the page: %d", got)
	}
}

func TestRecommendedOrderingPinsFirst(t *testing.T) {
	items := []product.Product{
		{ID: 1, SalesCount: 50, Visible: true},
		{ID: 2, PinOrder: 2, SalesCount: 1, Visible: true},
		{ID: 3, SalesCount: 50, Visible: true},
		{ID: 4, PinOrder: 1, SalesCount: 0, Visible: true},
		{ID: 5, SalesCount: 80, Visible: true},
	}
	p := NewPaginator(items, Options{Policy: SortRecommended})

	got := p.Page()
	want := []int{4, 2, 5, 1, 3} // pins by rank, then sales desc, ties by ID
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected product %d, got %d (order %v)", i, id, got[i].ID, ids(got))
		}
	}
}

func TestOtherPoliciesIgnorePinning(t *testing.T) {
	items := []product.Product{
		{ID: 1, PinOrder: 1, SalesCount: 0, BasePrice: 30, CreatedAt: ptrString("2026-01-01T00:00:00Z"), Visible: true},
		{ID: 2, SalesCount: 10, BasePrice: 20, CreatedAt: ptrString("2026-03-01T00:00:00Z"), Visible: true},
		{ID: 3, SalesCount: 5, BasePrice: 10, CreatedAt: ptrString("2026-02-01T00:00:00Z"), Visible: true},
	}

	cases := []struct {
		policy SortPolicy
		want   []int
	}{
		{SortPopular, []int{2, 3, 1}},
		{SortNewest, []int{2, 3, 1}},
		{SortPrice, []int{3, 2, 1}},
	}
	for _, tc := range cases {
		p := NewPaginator(items, Options{Policy: tc.policy})
		got := ids(p.Page())
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: expected %v, got %v", tc.policy, tc.want, got)
			}
		}
	}
}

func TestResetDiscardsRevealedPrefixOnFilterChange(t *testing.T) {
	apparel := ptrString("apparel")
	posters := ptrString("posters")
	items := []product.Product{
		{ID: 1, Category: apparel, Visible: true},
		{ID: 2, Category: posters, Visible: true},
		{ID: 3, Category: apparel, Visible: true},
		{ID: 4, Category: apparel, Visible: true},
	}
	p := NewPaginator(items, Options{Category: "apparel", InitialPageSize: 2, Increment: 2})
	p.LoadMore()
	if got := len(p.Page()); got != 3 {
		t.Fatalf("expected all 3 apparel items revealed, got %d", got)
	}

	p.Reset("posters", SortRecommended)
	page := p.Page()
	if len(page) != 1 || page[0].ID != 2 {
		t.Fatalf("stale items survived the filter change: %v", ids(page))
	}
	if p.HasMore() {
		t.Fatalf("one poster item means no more pages")
	}
}

func TestPaginatorRemembersSeenIDsInSessionStore(t *testing.T) {
	store := kv.NewMemoryStore()
	p := NewPaginator(makeProducts(5), Options{
		InitialPageSize: 2,
		Increment:       2,
		SessionID:       "sess-1",
		Seen:            store,
	})

	if got := p.SeenIDs(); len(got) != 2 {
		t.Fatalf("expected 2 seen IDs after initial page, got %v", got)
	}
	p.LoadMore()
	if got := p.SeenIDs(); len(got) != 4 {
		t.Fatalf("expected 4 seen IDs after LoadMore, got %v", got)
	}

	// another session must not observe this one's cache
	other := NewPaginator(makeProducts(5), Options{SessionID: "sess-2", Seen: store})
	if got := other.SeenIDs(); len(got) != 5 {
		t.Fatalf("expected 5 seen IDs for the fresh session, got %v", got)
	}
	if raw, ok := store.Get("catalog:seen:sess-1"); !ok || raw != "1,2,3,4" {
		t.Fatalf("session cache corrupted: %q", raw)
	}
}

func ids(items []product.Product) []int {
	out := make([]int, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}
