package catalog

import (
	"github.com/bigkatzo/storefun-backend/internal/kv"
	"github.com/bigkatzo/storefun-backend/internal/product"
)

// ProductSource supplies the full product array the paginator works over.
// The product service satisfies it.
type ProductSource interface {
	ListVisible() []product.Product
	ListByCollection(collectionID int) []product.Product
}

// Service builds paginators over the current product set. The session
// store is shared so the revealed-ID cache survives across requests.
type Service struct {
	products ProductSource
	sessions kv.Store
}

func NewService(products ProductSource, sessions kv.Store) *Service {
	return &Service{products: products, sessions: sessions}
}

// BrowseRequest captures one storefront grid request: the filter, the sort
// policy, the page sizing and how many load-more steps the client has
// taken beyond the initial page.
type BrowseRequest struct {
	CollectionID int
	Category     string
	Policy       SortPolicy
	PageSize     int
	Increment    int
	Pages        int
	SessionID    string
}

// BrowseResult is the revealed prefix plus the flag the client needs to
// decide whether to offer another load-more step.
type BrowseResult struct {
	Products []product.Product `json:"products"`
	HasMore  bool              `json:"hasMore"`
}

// Browse re-derives the grid from current state — never from a previously
// revealed prefix — and replays the client's load-more steps on it.
func (s *Service) Browse(req BrowseRequest) BrowseResult {
	var items []product.Product
	if req.CollectionID > 0 {
		items = visibleOnly(s.products.ListByCollection(req.CollectionID))
	} else {
		items = s.products.ListVisible()
	}

	p := NewPaginator(items, Options{
		Category:        req.Category,
		Policy:          req.Policy,
		InitialPageSize: req.PageSize,
		Increment:       req.Increment,
		SessionID:       req.SessionID,
		Seen:            s.sessions,
	})
	for i := 0; i < req.Pages; i++ {
		if !p.LoadMore() {
			break
		}
	}
	return BrowseResult{Products: p.Page(), HasMore: p.HasMore()}
}

func visibleOnly(items []product.Product) []product.Product {
	out := make([]product.Product, 0, len(items))
	for _, p := range items {
		if p.Visible {
			out = append(out, p)
		}
	}
	return out
}
