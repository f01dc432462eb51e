package coupon

import "errors"

var (
	ErrInactive        = errors.New("coupon is not active")
	ErrWrongCollection = errors.New("coupon does not apply to this collection")
)

// Service provides business logic for coupons.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() []Coupon {
	items, err := s.repo.List()
	if err != nil {
		return []Coupon{}
	}
	return items
}

// Redeemable looks up a code and checks it can be applied. A coupon bound
// to a collection only applies to products of that collection; pass a nil
// collectionID to skip the scope check.
func (s *Service) Redeemable(code string, collectionID *int) (Coupon, error) {
	cp, err := s.repo.GetByCode(code)
	if err != nil {
		return Coupon{}, err
	}
	if !cp.Active() {
		return Coupon{}, ErrInactive
	}
	if cp.CollectionID != nil && collectionID != nil && *cp.CollectionID != *collectionID {
		return Coupon{}, ErrWrongCollection
	}
	return cp, nil
}

func (s *Service) Create(cp Coupon) (Coupon, error) {
	return s.repo.Create(cp)
}

func (s *Service) Update(id int, cp Coupon) (Coupon, error) {
	return s.repo.Update(id, cp)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
