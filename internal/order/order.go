package order

// Order statuses. An order starts as a draft, moves to pending_payment
// once the buyer commits, and settles as confirmed or cancelled.
const (
	StatusDraft          = "draft"
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusCancelled      = "cancelled"
)

// Order represents a storefront purchase and maps to the `orders` table.
// CombinationKey identifies the exact variant combination bought; Price is
// the resolved unit price at order time and Total the discounted amount,
// both frozen so later pricing edits never change a placed order.
type Order struct {
	OrderID        int     `json:"orderId"`
	ProductID      int     `json:"productId"`
	CombinationKey string  `json:"combinationKey"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	CouponCode     *string `json:"couponCode,omitempty"`
	Total          float64 `json:"total"`
	WalletAddress  *string `json:"walletAddress,omitempty"`
	TxSignature    *string `json:"txSignature,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      *string `json:"createdAt,omitempty"`
	UpdatedAt      *string `json:"updatedAt,omitempty"`
}

// validTransitions encodes the order status workflow.
var validTransitions = map[string][]string{
	StatusDraft:          {StatusPendingPayment, StatusCancelled},
	StatusPendingPayment: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether an order in `from` may move to `to`.
func CanTransition(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
