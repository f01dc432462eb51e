package pricing

import (
	"testing"

	"github.com/bigkatzo/storefun-backend/internal/variant"
)

func fixedVariant(id, name string, values ...string) variant.Variant {
	opts := make([]variant.Option, 0, len(values))
	for i, v := range values {
		opts = append(opts, variant.Option{ID: id + "-opt-" + string(rune('a'+i)), Value: v})
	}
	return variant.Variant{ID: id, Name: name, Options: opts}
}

func TestReconcileSeedsEveryCombinationWithBasePrice(t *testing.T) {
	size := fixedVariant("size", "Size", "S", "M", "L")
	prices, changed := Reconcile([]variant.Variant{size}, nil, 10)
	if !changed {
		t.Fatalf("seeding an empty map must report a change")
	}
	if len(prices) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(prices))
	}
	for _, key := range []string{"size:S", "size:M", "size:L"} {
		if prices[key] != 10 {
			t.Fatalf("key %q should default to base price, got %v", key, prices[key])
		}
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	vs := []variant.Variant{
		fixedVariant("size", "Size", "S", "M"),
		fixedVariant("color", "Color", "Red", "Blue"),
	}
	first, _ := Reconcile(vs, nil, 10)
	second, changed := Reconcile(vs, first, 10)
	if changed {
		t.Fatalf("second reconcile on an unchanged variant set reported a change")
	}
	if !first.Equal(second) {
		t.Fatalf("second reconcile altered the map: %v vs %v", first, second)
	}
}

func TestReconcileCarriesOverridesAndPrunesStaleKeys(t *testing.T) {
	size := fixedVariant("size", "Size", "S", "M")
	color := fixedVariant("color", "Color", "Red", "Blue")
	prices, _ := Reconcile([]variant.Variant{size, color}, nil, 10)
	if len(prices) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(prices))
	}
	prices["color:Red|size:S"] = 12

	// removing the Color variant entirely drops every Color-bearing key,
	// including the overridden one; S and M default back to base price
	next, changed := Reconcile([]variant.Variant{size}, prices, 10)
	if !changed {
		t.Fatalf("dropping a variant must report a change")
	}
	if len(next) != 2 {
		t.Fatalf("expected 2 entries after removal, got %d", len(next))
	}
	for _, key := range []string{"size:S", "size:M"} {
		if next[key] != 10 {
			t.Fatalf("key %q should resolve to base price, got %v", key, next[key])
		}
	}
}

func TestRemoveOptionPrunesExactlyItsKeys(t *testing.T) {
	size := fixedVariant("size", "Size", "S", "M")
	color := fixedVariant("color", "Color", "Red", "Blue")
	tbl := NewTable(10, []variant.Variant{size, color}, nil, nil)
	tbl.SetVariants([]variant.Variant{size, color})
	tbl.SetPrice("color:Blue|size:M", 15)

	tbl.RemoveOption("color", "color-opt-a") // removes "Red"

	prices := tbl.Prices()
	if len(prices) != 2 {
		t.Fatalf("expected 2 surviving entries, got %d: %v", len(prices), prices)
	}
	for key := range prices {
		if key == "color:Red|size:S" || key == "color:Red|size:M" {
			t.Fatalf("stale key %q survived the removal", key)
		}
	}
	if prices["color:Blue|size:M"] != 15 {
		t.Fatalf("unrelated override was not carried forward: %v", prices)
	}
}

func TestTableNotifiesExactlyOncePerMutation(t *testing.T) {
	notifications := 0
	tbl := NewTable(10, nil, nil, func([]variant.Variant, Map) {
		notifications++
	})

	size := fixedVariant("size", "Size", "S", "M", "L")
	tbl.SetVariants([]variant.Variant{size})
	if notifications != 1 {
		t.Fatalf("expected 1 notification after seeding, got %d", notifications)
	}

	// unchanged variant set: reconcile is a no-op and must stay silent
	tbl.SetVariants([]variant.Variant{size})
	if notifications != 1 {
		t.Fatalf("no-op reconcile notified: %d notifications", notifications)
	}

	tbl.SetPrice("size:S", 12)
	if notifications != 2 {
		t.Fatalf("expected 2 notifications after a price edit, got %d", notifications)
	}

	// rejected writes must not notify
	if tbl.SetPrice("size:S", -1) {
		t.Fatalf("negative price must be rejected")
	}
	if notifications != 2 {
		t.Fatalf("rejected write notified: %d notifications", notifications)
	}
	if tbl.Price("size:S") != 12 {
		t.Fatalf("rejected write clobbered the override: %v", tbl.Price("size:S"))
	}
}

func TestApplyBasePriceToAllOverwritesOverrides(t *testing.T) {
	size := fixedVariant("size", "Size", "S", "M", "L")
	tbl := NewTable(10, nil, nil, nil)
	tbl.SetVariants([]variant.Variant{size})
	tbl.SetPrice("size:M", 25)

	tbl.ApplyBasePriceToAll()
	for _, key := range []string{"size:S", "size:M", "size:L"} {
		if tbl.Price(key) != 10 {
			t.Fatalf("key %q should read base price after apply-all, got %v", key, tbl.Price(key))
		}
	}

	// all values already equal base: apply-all is a no-op and stays silent
	notifications := 0
	tbl2 := NewTable(10, nil, nil, nil)
	tbl2.SetVariants([]variant.Variant{size})
	tbl2.onChange = func([]variant.Variant, Map) { notifications++ }
	tbl2.ApplyBasePriceToAll()
	if notifications != 0 {
		t.Fatalf("apply-all without value changes notified %d times", notifications)
	}
}

func TestApplyBasePriceToSectionScopesTheWrite(t *testing.T) {
	size := fixedVariant("size", "Size", "S", "M")
	img := fixedVariant("img", variant.ImageCustomizationName, "Enabled")
	vs := []variant.Variant{size, img}
	tbl := NewTable(10, nil, nil, nil)
	tbl.SetVariants(vs)

	combos := variant.Enumerate(vs)
	if len(combos) != 2 {
		t.Fatalf("expected 2 combinations, got %d", len(combos))
	}
	for _, c := range combos {
		tbl.SetPrice(c.Key, 99)
	}

	// scope the bulk action to the first combination only
	tbl.ApplyBasePriceToSection(combos[:1])
	if tbl.Price(combos[0].Key) != 10 {
		t.Fatalf("scoped key should read base price, got %v", tbl.Price(combos[0].Key))
	}
	if tbl.Price(combos[1].Key) != 99 {
		t.Fatalf("out-of-scope key lost its override: %v", tbl.Price(combos[1].Key))
	}
}

func TestOverridePrecedenceOverBasePrice(t *testing.T) {
	tbl := NewTable(10, nil, Map{"size:S": 12}, nil)
	if tbl.Price("size:S") != 12 {
		t.Fatalf("override should win, got %v", tbl.Price("size:S"))
	}
	if tbl.Price("size:M") != 10 {
		t.Fatalf("absent key should fall back to base, got %v", tbl.Price("size:M"))
	}

	// changing the base price only moves keys without an explicit override
	tbl.SetBasePrice(20)
	if tbl.Price("size:S") != 12 {
		t.Fatalf("override moved with the base price: %v", tbl.Price("size:S"))
	}
	if tbl.Price("size:M") != 20 {
		t.Fatalf("fallback did not follow the base price: %v", tbl.Price("size:M"))
	}
}

func TestCustomizationToggleRemovesVariantAndKeysTogether(t *testing.T) {
	size := fixedVariant("size", "Size", "S", "M")
	vs := variant.ApplyCustomizationFlags([]variant.Variant{size}, true, false)
	tbl := NewTable(10, nil, nil, nil)
	tbl.SetVariants(vs)
	if len(tbl.Prices()) != 2 {
		t.Fatalf("expected 2 combinations with the image variant, got %d", len(tbl.Prices()))
	}

	// flag off: one reconciliation pass removes the variant and its keys
	tbl.SetVariants(variant.ApplyCustomizationFlags(vs, false, false))
	if len(tbl.Variants()) != 1 {
		t.Fatalf("reserved variant survived the toggle: %v", tbl.Variants())
	}
	prices := tbl.Prices()
	if len(prices) != 2 {
		t.Fatalf("expected 2 size-only entries, got %d: %v", len(prices), prices)
	}
	for _, key := range []string{"size:S", "size:M"} {
		if prices[key] != 10 {
			t.Fatalf("key %q should default to base price, got %v", key, prices[key])
		}
	}
}
