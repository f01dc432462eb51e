package pricing

import (
	"math"

	"github.com/bigkatzo/storefun-backend/internal/variant"
)

// Map associates a combination key with its override price. Keys absent
// from the map resolve to the product base price at read time.
type Map map[string]float64

// Equal reports structural equality of two pricing maps.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the map. A nil map clones to an
// empty, writable one.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Reconcile rebuilds the pricing map for the given variant set: overrides
// for keys that are still valid are carried forward, newly valid keys
// default to the base price, and keys that no longer name a combination
// are dropped. Pure function. `changed` reports whether the result differs
// structurally from prev, so a second run on an unchanged variant set
// always comes back with changed=false.
func Reconcile(variants []variant.Variant, prev Map, base float64) (Map, bool) {
	combos := variant.Enumerate(variants)
	next := make(Map, len(combos))
	for _, c := range combos {
		if p, ok := prev[c.Key]; ok {
			next[c.Key] = p
		} else {
			next[c.Key] = base
		}
	}
	return next, !next.Equal(prev)
}

// validPrice is the write-boundary check for merchant price input. Invalid
// prices are dropped silently, never surfaced as errors.
func validPrice(p float64) bool {
	return p >= 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}

// Table keeps a product's variant set, base price and override map in sync
// and reports every effective mutation to its owner through a single
// onChange callback. It is the explicit replacement for the reactive
// watch-effect coupling of the web form: every mutator runs the state
// transition synchronously and notifies at most once.
type Table struct {
	base     float64
	variants []variant.Variant
	prices   Map
	onChange func(variants []variant.Variant, prices Map)
}

// NewTable builds a controller around an existing (variants, prices) pair,
// e.g. one loaded from a persisted product. onChange may be nil.
func NewTable(base float64, variants []variant.Variant, prices Map, onChange func([]variant.Variant, Map)) *Table {
	return &Table{
		base:     base,
		variants: cloneVariants(variants),
		prices:   prices.Clone(),
		onChange: onChange,
	}
}

func (t *Table) notify() {
	if t.onChange != nil {
		t.onChange(t.Variants(), t.Prices())
	}
}

// Variants returns a copy of the current variant set.
func (t *Table) Variants() []variant.Variant {
	return cloneVariants(t.variants)
}

// Prices returns a copy of the current override map.
func (t *Table) Prices() Map {
	return t.prices.Clone()
}

// BasePrice returns the current fallback price.
func (t *Table) BasePrice() float64 {
	return t.base
}

// Price resolves a combination key: the stored override when present,
// otherwise the base price.
func (t *Table) Price(key string) float64 {
	if p, ok := t.prices[key]; ok {
		return p
	}
	return t.base
}

// SetBasePrice changes the fallback price. Keys holding an explicit
// override keep resolving to that override.
func (t *Table) SetBasePrice(p float64) bool {
	if !validPrice(p) || p == t.base {
		return false
	}
	t.base = p
	t.notify()
	return true
}

// SetPrice stores an override for key. Negative, NaN or infinite prices
// are rejected at the boundary: the write is not applied and no
// notification fires. The key is not checked for validity here — callers
// only ever write keys they just enumerated, and reconciliation prunes
// anything stale.
func (t *Table) SetPrice(key string, price float64) bool {
	if !validPrice(price) {
		return false
	}
	t.prices[key] = price
	t.notify()
	return true
}

// ApplyBasePriceToAll writes a concrete override equal to the base price
// for every currently valid combination key. It overwrites existing
// overrides rather than clearing them.
func (t *Table) ApplyBasePriceToAll() {
	t.ApplyBasePriceToSection(variant.Enumerate(t.variants))
}

// ApplyBasePriceToSection does the same for a caller-supplied subset of
// combinations, used to scope the action to only the customization or only
// the regular sub-table. Notifies once when at least one value changed.
func (t *Table) ApplyBasePriceToSection(combos []variant.Combination) {
	changed := false
	for _, c := range combos {
		if cur, ok := t.prices[c.Key]; !ok || cur != t.base {
			t.prices[c.Key] = t.base
			changed = true
		}
	}
	if changed {
		t.notify()
	}
}

// SetVariants replaces the variant set and reconciles the override map
// against it. Stale keys are pruned, newly valid keys default to the base
// price. A reconcile that changes nothing produces no notification.
func (t *Table) SetVariants(vs []variant.Variant) {
	next, pricesChanged := Reconcile(vs, t.prices, t.base)
	variantsChanged := !variantsEqual(t.variants, vs)
	t.variants = cloneVariants(vs)
	t.prices = next
	if pricesChanged || variantsChanged {
		t.notify()
	}
}

// AddVariant appends a variant and reconciles.
func (t *Table) AddVariant(v variant.Variant) {
	t.SetVariants(append(t.Variants(), v))
}

// RemoveVariant drops the variant with the given id and reconciles,
// pruning every pricing entry whose key referenced it.
func (t *Table) RemoveVariant(id string) {
	vs := t.Variants()
	out := vs[:0]
	for _, v := range vs {
		if v.ID != id {
			out = append(out, v)
		}
	}
	t.SetVariants(out)
}

// AddOption appends an option value to the named variant and reconciles.
func (t *Table) AddOption(variantID string, opt variant.Option) {
	vs := t.Variants()
	for i := range vs {
		if vs[i].ID == variantID {
			vs[i].Options = append(vs[i].Options, opt)
		}
	}
	t.SetVariants(vs)
}

// RemoveOption drops one option from the named variant and reconciles,
// pruning exactly the entries whose key referenced that (variant, option)
// pair.
func (t *Table) RemoveOption(variantID, optionID string) {
	vs := t.Variants()
	for i := range vs {
		if vs[i].ID != variantID {
			continue
		}
		opts := vs[i].Options[:0]
		for _, o := range vs[i].Options {
			if o.ID != optionID {
				opts = append(opts, o)
			}
		}
		vs[i].Options = opts
	}
	t.SetVariants(vs)
}

func cloneVariants(vs []variant.Variant) []variant.Variant {
	out := make([]variant.Variant, len(vs))
	for i, v := range vs {
		v.Options = append([]variant.Option(nil), v.Options...)
		out[i] = v
	}
	return out
}

func variantsEqual(a, b []variant.Variant) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Name != b[i].Name || len(a[i].Options) != len(b[i].Options) {
			return false
		}
		for j := range a[i].Options {
			if a[i].Options[j] != b[i].Options[j] {
				return false
			}
		}
	}
	return true
}
