package product

import (
	"errors"
	"time"

	"github.com/bigkatzo/storefun-backend/internal/pricing"
	"github.com/bigkatzo/storefun-backend/internal/variant"
)

// Pricing-table sections for the bulk apply-base-price action. The
// customization section covers combinations that include a reserved
// variant; regular covers everything else.
const (
	SectionAll           = "all"
	SectionCustomization = "customization"
	SectionRegular       = "regular"
)

var ErrUnknownSection = errors.New("unknown pricing section")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

// ListVisible returns only the products exposed on the public storefront.
func (s *Service) ListVisible() []Product {
	all := s.repo.List()
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if p.Visible {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) ListByCollection(collectionID int) []Product {
	return s.repo.ListByCollection(collectionID)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

// Create persists a new product. The variant machinery is normalized
// before the write: customization flags inject or remove the reserved
// variants and the pricing map is reconciled, so a stale key is never
// stored.
func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(normalize(p))
}

// Update persists merchant edits, running the same normalization pass as
// Create. Toggling a customization flag off therefore removes the reserved
// variant and every pricing entry referencing it in one step.
func (s *Service) Update(id int, p Product) (Product, error) {
	return s.repo.Update(id, normalize(p))
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// SetVariantPrice stores one pricing override through the table controller
// and persists the product when the write is accepted. Invalid prices are
// dropped silently per the pricing boundary contract; the caller gets the
// unchanged product back.
func (s *Service) SetVariantPrice(id int, key string, price float64) (Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	changed := false
	tbl := pricing.NewTable(p.BasePrice, p.Variants, p.VariantPrices, func(vs []variant.Variant, prices pricing.Map) {
		p.Variants = vs
		p.VariantPrices = prices
		changed = true
	})
	tbl.SetPrice(key, price)
	if !changed {
		return p, nil
	}
	return s.persist(p)
}

// ApplyBasePrice writes the base price over every combination in the given
// section and persists the product when at least one value changed.
func (s *Service) ApplyBasePrice(id int, section string) (Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	combos := variant.Enumerate(p.Variants)
	subset := make([]variant.Combination, 0, len(combos))
	switch section {
	case SectionAll, "":
		subset = combos
	case SectionCustomization:
		for _, c := range combos {
			if c.Customization {
				subset = append(subset, c)
			}
		}
	case SectionRegular:
		for _, c := range combos {
			if !c.Customization {
				subset = append(subset, c)
			}
		}
	default:
		return Product{}, ErrUnknownSection
	}

	changed := false
	tbl := pricing.NewTable(p.BasePrice, p.Variants, p.VariantPrices, func(vs []variant.Variant, prices pricing.Map) {
		p.Variants = vs
		p.VariantPrices = prices
		changed = true
	})
	tbl.ApplyBasePriceToSection(subset)
	if !changed {
		return p, nil
	}
	return s.persist(p)
}

func (s *Service) persist(p Product) (Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	p.UpdatedAt = &now
	return s.repo.Update(p.ID, p)
}

// normalize brings the variant machinery into a consistent state before a
// write: reserved variants follow the customization flags and the pricing
// map is reconciled against the resulting variant set.
func normalize(p Product) Product {
	p.Variants = variant.ApplyCustomizationFlags(p.Variants, p.ImageCustomization, p.TextCustomization)
	prices, _ := pricing.Reconcile(p.Variants, p.VariantPrices, p.BasePrice)
	p.VariantPrices = prices
	return p
}
