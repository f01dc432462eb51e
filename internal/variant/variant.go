package variant

import "github.com/google/uuid"

// Option is a single selectable value inside a variant (e.g. "Small").
type Option struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Variant is one configurable product dimension (e.g. "Size") with its
// ordered option values. JSON tags match the shape persisted in the
// product `variants` jsonb column.
type Variant struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// Names of the auto-managed customization variants. They are injected and
// removed by the product customization flags, never edited directly by the
// merchant.
const (
	ImageCustomizationName = "Image Customization"
	TextCustomizationName  = "Text Customization"
)

// IsReserved reports whether a variant name belongs to one of the
// auto-managed customization variants.
func IsReserved(name string) bool {
	return name == ImageCustomizationName || name == TextCustomizationName
}

// New builds an ordinary merchant variant with fresh opaque IDs.
func New(name string, values ...string) Variant {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{ID: uuid.NewString(), Value: v})
	}
	return Variant{ID: uuid.NewString(), Name: name, Options: opts}
}

// NewImageCustomization builds the synthetic single-option variant added
// when the image customization flag is switched on.
func NewImageCustomization() Variant {
	return New(ImageCustomizationName, "Enabled")
}

// NewTextCustomization builds the synthetic single-option variant added
// when the text customization flag is switched on.
func NewTextCustomization() Variant {
	return New(TextCustomizationName, "Enabled")
}

// ApplyCustomizationFlags makes the variant list agree with the product's
// customization flags: reserved variants are appended when their flag is on
// and missing, and dropped when their flag is off. Ordinary variants keep
// their order and are never touched.
func ApplyCustomizationFlags(variants []Variant, image, text bool) []Variant {
	out := make([]Variant, 0, len(variants)+2)
	var haveImage, haveText bool
	for _, v := range variants {
		switch v.Name {
		case ImageCustomizationName:
			if image {
				out = append(out, v)
				haveImage = true
			}
		case TextCustomizationName:
			if text {
				out = append(out, v)
				haveText = true
			}
		default:
			out = append(out, v)
		}
	}
	if image && !haveImage {
		out = append(out, NewImageCustomization())
	}
	if text && !haveText {
		out = append(out, NewTextCustomization())
	}
	return out
}
