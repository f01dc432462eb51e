package product

import (
	"github.com/bigkatzo/storefun-backend/internal/pricing"
	"github.com/bigkatzo/storefun-backend/internal/variant"
)

// Product represents a storefront product and maps to the `products` table.
// JSON tags follow the camelCase convention used by the web client.
// Variants and VariantPrices are persisted as jsonb and always written
// together with the rest of the record (single-record atomic writes).
type Product struct {
	ID                 int               `json:"productId"`
	Name               string            `json:"productName"`
	Description        string            `json:"productDesc"`
	CollectionID       int               `json:"collectionId"`
	Category           *string           `json:"category,omitempty"`
	BasePrice          float64           `json:"basePrice"`
	Image              *string           `json:"productPic,omitempty"`
	ImageSecond        *string           `json:"productPicSecond,omitempty"`
	Visible            bool              `json:"visible"`
	PinOrder           int               `json:"pinOrder"`
	SalesCount         int               `json:"salesCount"`
	ImageCustomization bool              `json:"imageCustomization"`
	TextCustomization  bool              `json:"textCustomization"`
	Variants           []variant.Variant `json:"variants,omitempty"`
	VariantPrices      pricing.Map       `json:"variantPrices,omitempty"`
	CreatedAt          *string           `json:"createdAt,omitempty"`
	UpdatedAt          *string           `json:"updatedAt,omitempty"`
}

// Price resolves the price for a combination key: the stored override when
// present, otherwise the base price.
func (p Product) Price(key string) float64 {
	if v, ok := p.VariantPrices[key]; ok {
		return v
	}
	return p.BasePrice
}

// Pinned reports whether the product carries a pin rank for the
// recommended ordering.
func (p Product) Pinned() bool {
	return p.PinOrder > 0
}

// PricedCombination is the API shape of one pricing-table row: a
// combination plus its resolved price.
type PricedCombination struct {
	variant.Combination
	Price float64 `json:"price"`
}

// Combinations enumerates the product's valid combinations with their
// resolved prices, one row per pricing-table entry.
func (p Product) Combinations() []PricedCombination {
	combos := variant.Enumerate(p.Variants)
	out := make([]PricedCombination, 0, len(combos))
	for _, c := range combos {
		out = append(out, PricedCombination{Combination: c, Price: p.Price(c.Key)})
	}
	return out
}
