package merchant

// Merchant is a store operator account and maps to the `merchants` table.
// PayoutWallet is the Solana address sales proceeds settle to.
type Merchant struct {
	ID           int     `json:"merchantId"`
	Email        string  `json:"email"`
	Password     string  `json:"password,omitempty"`
	StoreName    string  `json:"storeName"`
	PayoutWallet *string `json:"payoutWallet,omitempty"`
	CreatedAt    *string `json:"createdAt,omitempty"`
	UpdatedAt    *string `json:"updatedAt,omitempty"`
}
