package coupon

import "strings"

// Discount types and coupon statuses as stored in the `coupons` table.
const (
	DiscountFixed      = "fixed"
	DiscountPercentage = "percentage"

	StatusActive = "active"
	StatusPaused = "paused"
)

// Coupon is a merchant-issued discount code. Fixed discounts subtract
// DiscountValue from the price; percentage discounts take DiscountValue
// percent off, optionally capped at MaxDiscount.
type Coupon struct {
	CouponID      int      `json:"couponId"`
	Code          string   `json:"code"`
	DiscountType  string   `json:"discountType"`
	DiscountValue float64  `json:"discountValue"`
	MaxDiscount   *float64 `json:"maxDiscount,omitempty"`
	Status        string   `json:"status"`
	CollectionID  *int     `json:"collectionId,omitempty"`
	CreatedAt     *string  `json:"createdAt,omitempty"`
	UpdatedAt     *string  `json:"updatedAt,omitempty"`
}

// NormalizeCode canonicalizes a coupon code for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Active reports whether the coupon can currently be redeemed.
func (c Coupon) Active() bool {
	return c.Status == StatusActive
}

// Discount computes the discount amount for a price. The result never
// exceeds the price itself, so applying a coupon cannot go below zero.
func (c Coupon) Discount(price float64) float64 {
	var d float64
	switch c.DiscountType {
	case DiscountPercentage:
		d = price * c.DiscountValue / 100
		if c.MaxDiscount != nil && d > *c.MaxDiscount {
			d = *c.MaxDiscount
		}
	case DiscountFixed:
		d = c.DiscountValue
	}
	if d < 0 {
		d = 0
	}
	if d > price {
		d = price
	}
	return d
}

// Apply returns the price after the discount.
func (c Coupon) Apply(price float64) float64 {
	return price - c.Discount(price)
}
