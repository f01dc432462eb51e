package variant

import (
	"sort"
	"strings"
)

// KeyDelimiter joins the sorted "<variantId>:<optionValue>" pairs of a
// combination key.
const KeyDelimiter = "|"

// Combination is one concrete choice of option per variant — the atomic
// unit a price can be attached to.
type Combination struct {
	Key           string   `json:"key"`
	Labels        []string `json:"labels"`
	Customization bool     `json:"customization"`
}

// Key builds the deterministic combination key for a selection of
// (variant id → option value) pairs. Each pair is serialized as
// "<variantId>:<optionValue>", the pairs are sorted lexicographically and
// joined with KeyDelimiter, so the same logical selection yields the same
// string regardless of iteration order.
func Key(selection map[string]string) string {
	pairs := make([]string, 0, len(selection))
	for id, value := range selection {
		pairs = append(pairs, id+":"+value)
	}
	return joinKey(pairs)
}

func joinKey(pairs []string) string {
	sorted := make([]string, len(pairs))
	copy(sorted, pairs)
	sort.Strings(sorted)
	return strings.Join(sorted, KeyDelimiter)
}

// Enumerate produces every combination of one option per variant, variant
// order outer and option order inner. The total equals the product of the
// option counts: an empty variant list yields no combinations, and a single
// variant with zero options zeroes the whole cartesian product (observed
// behavior of the storefront, kept as is).
func Enumerate(variants []Variant) []Combination {
	out := make([]Combination, 0, Count(variants))
	if len(variants) == 0 {
		return out
	}

	pairs := make([]string, 0, len(variants))
	labels := make([]string, 0, len(variants))

	var walk func(depth int, customization bool)
	walk = func(depth int, customization bool) {
		if depth == len(variants) {
			out = append(out, Combination{
				Key:           joinKey(pairs),
				Labels:        append([]string(nil), labels...),
				Customization: customization,
			})
			return
		}
		v := variants[depth]
		for _, opt := range v.Options {
			pairs = append(pairs, v.ID+":"+opt.Value)
			labels = append(labels, v.Name+": "+opt.Value)
			walk(depth+1, customization || IsReserved(v.Name))
			pairs = pairs[:len(pairs)-1]
			labels = labels[:len(labels)-1]
		}
	}
	walk(0, false)
	return out
}

// Count returns the number of combinations Enumerate would produce without
// building them.
func Count(variants []Variant) int {
	if len(variants) == 0 {
		return 0
	}
	n := 1
	for _, v := range variants {
		n *= len(v.Options)
	}
	return n
}
