package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bigkatzo/storefun-backend/internal/kv"
	"github.com/bigkatzo/storefun-backend/internal/product"
)

// SortPolicy names the supported orderings of the storefront grid.
type SortPolicy string

const (
	SortRecommended SortPolicy = "recommended"
	SortPopular     SortPolicy = "popular"
	SortNewest      SortPolicy = "newest"
	SortPrice       SortPolicy = "price"
)

// ParseSortPolicy maps a query value to a policy, defaulting to
// recommended for anything unknown.
func ParseSortPolicy(s string) SortPolicy {
	switch SortPolicy(s) {
	case SortPopular, SortNewest, SortPrice:
		return SortPolicy(s)
	default:
		return SortRecommended
	}
}

const (
	DefaultInitialPageSize = 12
	DefaultIncrement       = 12
)

// Options configures a Paginator. Seen/SessionID are optional; when both
// are set the revealed IDs are remembered in the store under the session.
type Options struct {
	Category        string
	Policy          SortPolicy
	InitialPageSize int
	Increment       int
	SessionID       string
	Seen            kv.Store
}

// Paginator presents a fully fetched product slice as an incrementally
// revealed, sorted list, imitating server-side pagination. It never drops
// fetched data — the whole slice stays resident — it only controls how
// much of it is exposed to the rendering layer.
type Paginator struct {
	all       []product.Product
	category  string
	policy    SortPolicy
	initial   int
	increment int

	sorted   []product.Product
	revealed int
	loading  bool

	sessionID string
	seen      kv.Store
}

func NewPaginator(all []product.Product, opts Options) *Paginator {
	p := &Paginator{
		all:       append([]product.Product(nil), all...),
		initial:   opts.InitialPageSize,
		increment: opts.Increment,
		sessionID: opts.SessionID,
		seen:      opts.Seen,
	}
	if p.initial <= 0 {
		p.initial = DefaultInitialPageSize
	}
	if p.increment <= 0 {
		p.increment = DefaultIncrement
	}
	p.Reset(opts.Category, opts.Policy)
	return p
}

// Reset re-derives the first page from scratch for the given filter and
// policy. The previously revealed prefix is discarded, so a filter or
// policy change can never keep stale items on screen.
func (p *Paginator) Reset(category string, policy SortPolicy) {
	if policy == "" {
		policy = SortRecommended
	}
	p.category = category
	p.policy = policy
	p.sorted = sortProducts(filterByCategory(p.all, category), policy)
	p.revealed = p.initial
	if p.revealed > len(p.sorted) {
		p.revealed = len(p.sorted)
	}
	p.loading = false
	p.rememberSeen()
}

// Page returns the currently revealed prefix.
func (p *Paginator) Page() []product.Product {
	out := make([]product.Product, p.revealed)
	copy(out, p.sorted[:p.revealed])
	return out
}

// HasMore reports whether any items remain hidden.
func (p *Paginator) HasMore() bool {
	return p.revealed < len(p.sorted)
}

// LoadMore extends the revealed prefix by the increment size. It is a
// no-op when everything is already revealed or another load is in flight.
func (p *Paginator) LoadMore() bool {
	if p.loading || !p.HasMore() {
		return false
	}
	p.loading = true
	p.revealed += p.increment
	if p.revealed > len(p.sorted) {
		p.revealed = len(p.sorted)
	}
	p.loading = false
	p.rememberSeen()
	return true
}

// SeenIDs returns the IDs remembered for this paginator's session.
func (p *Paginator) SeenIDs() []int {
	if p.seen == nil || p.sessionID == "" {
		return nil
	}
	raw, ok := p.seen.Get(seenKey(p.sessionID))
	if !ok || raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, s := range parts {
		if id, err := strconv.Atoi(s); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// rememberSeen records the revealed IDs under the session key so a
// returning client can be shown where it left off.
func (p *Paginator) rememberSeen() {
	if p.seen == nil || p.sessionID == "" {
		return
	}
	ids := make([]string, 0, p.revealed)
	for _, item := range p.sorted[:p.revealed] {
		ids = append(ids, strconv.Itoa(item.ID))
	}
	p.seen.Set(seenKey(p.sessionID), strings.Join(ids, ","))
}

func seenKey(sessionID string) string {
	return "catalog:seen:" + sessionID
}

func filterByCategory(items []product.Product, category string) []product.Product {
	if category == "" {
		return items
	}
	out := make([]product.Product, 0, len(items))
	for _, p := range items {
		if p.Category != nil && *p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts orders a copy of items under the given policy. Only the
// recommended policy honors pinning: pinned items lead, ordered by their
// pin rank, and the rest follow by sales count with the product ID as the
// stable tie-break.
func sortProducts(items []product.Product, policy SortPolicy) []product.Product {
	out := make([]product.Product, len(items))
	copy(out, items)

	switch policy {
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SalesCount > out[j].SalesCount
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if at, bt := createdAt(a), createdAt(b); at != bt {
				return at > bt
			}
			return a.ID > b.ID
		})
	case SortPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].BasePrice < out[j].BasePrice
		})
	default: // SortRecommended
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if a.Pinned() != b.Pinned() {
				return a.Pinned()
			}
			if a.Pinned() && b.Pinned() {
				return a.PinOrder < b.PinOrder
			}
			if a.SalesCount != b.SalesCount {
				return a.SalesCount > b.SalesCount
			}
			return a.ID < b.ID
		})
	}
	return out
}

// createdAt is the recency proxy for the newest ordering: the RFC3339
// creation timestamp compares correctly as a string. Missing timestamps
// sort last; ties fall back to the serial product ID.
func createdAt(p product.Product) string {
	if p.CreatedAt != nil {
		return *p.CreatedAt
	}
	return ""
}
