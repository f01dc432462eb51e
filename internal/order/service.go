package order

import (
	"errors"
	"time"

	"github.com/bigkatzo/storefun-backend/internal/coupon"
	"github.com/bigkatzo/storefun-backend/internal/product"
	"github.com/bigkatzo/storefun-backend/internal/variant"
)

var (
	ErrInvalidCombination = errors.New("combination key does not match the product's variants")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrBadTransition      = errors.New("invalid order status transition")
)

// ProductSource is the slice of the product service the order flow needs.
type ProductSource interface {
	GetByID(id int) (product.Product, error)
}

// CouponSource resolves a redeemable coupon for a collection.
type CouponSource interface {
	Redeemable(code string, collectionID *int) (coupon.Coupon, error)
}

// Service builds and transitions orders. Prices are resolved from the
// product's pricing table at creation time and frozen on the order.
type Service struct {
	repo     Repository
	products ProductSource
	coupons  CouponSource
}

func NewService(repo Repository, products ProductSource, coupons CouponSource) *Service {
	return &Service{repo: repo, products: products, coupons: coupons}
}

func (s *Service) List() []Order {
	items, err := s.repo.List()
	if err != nil {
		return []Order{}
	}
	return items
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

// CreateRequest captures the buyer's checkout selection.
type CreateRequest struct {
	ProductID      int     `json:"productId"`
	CombinationKey string  `json:"combinationKey"`
	Quantity       int     `json:"quantity"`
	CouponCode     *string `json:"couponCode,omitempty"`
	WalletAddress  *string `json:"walletAddress,omitempty"`
}

// Create validates the selection against the product's current variants,
// resolves the unit price for the combination, applies an optional coupon
// and stores the order as a draft.
func (s *Service) Create(req CreateRequest) (Order, error) {
	if req.Quantity <= 0 {
		return Order{}, ErrInvalidQuantity
	}
	p, err := s.products.GetByID(req.ProductID)
	if err != nil {
		return Order{}, err
	}
	if !validKey(p, req.CombinationKey) {
		return Order{}, ErrInvalidCombination
	}

	unit := p.Price(req.CombinationKey)
	total := unit * float64(req.Quantity)
	if req.CouponCode != nil && *req.CouponCode != "" {
		cp, err := s.coupons.Redeemable(*req.CouponCode, &p.CollectionID)
		if err != nil {
			return Order{}, err
		}
		total = cp.Apply(total)
		code := cp.Code
		req.CouponCode = &code
	} else {
		req.CouponCode = nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	o := Order{
		ProductID:      req.ProductID,
		CombinationKey: req.CombinationKey,
		Quantity:       req.Quantity,
		Price:          unit,
		CouponCode:     req.CouponCode,
		Total:          total,
		WalletAddress:  req.WalletAddress,
		Status:         StatusDraft,
		CreatedAt:      &now,
		UpdatedAt:      &now,
	}
	return s.repo.Create(o)
}

// Transition moves an order along the status workflow.
func (s *Service) Transition(id int, status string) (Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(o.Status, status) {
		return Order{}, ErrBadTransition
	}
	o.Status = status
	now := time.Now().UTC().Format(time.RFC3339)
	o.UpdatedAt = &now
	return s.repo.Update(id, o)
}

// AttachTransaction records the on-chain payment signature and moves the
// order to pending_payment in one step.
func (s *Service) AttachTransaction(id int, walletAddress, txSignature string) (Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(o.Status, StatusPendingPayment) {
		return Order{}, ErrBadTransition
	}
	o.WalletAddress = &walletAddress
	o.TxSignature = &txSignature
	o.Status = StatusPendingPayment
	now := time.Now().UTC().Format(time.RFC3339)
	o.UpdatedAt = &now
	return s.repo.Update(id, o)
}

// validKey checks the combination key against the product's enumerated
// combinations. A product without variants has no combinations; the only
// acceptable key for it is the empty string (base price applies).
func validKey(p product.Product, key string) bool {
	if len(p.Variants) == 0 {
		return key == ""
	}
	for _, c := range variant.Enumerate(p.Variants) {
		if c.Key == key {
			return true
		}
	}
	return false
}
