package coupon

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("coupon not found")

// Repository provides access to coupon rows. Codes are stored normalized.
type Repository interface {
	List() ([]Coupon, error)
	GetByCode(code string) (Coupon, error)
	Create(cp Coupon) (Coupon, error)
	Update(id int, cp Coupon) (Coupon, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Coupon
	nextID  int
}

func NewInMemoryRepository(seed []Coupon) *InMemoryRepository {
	r := &InMemoryRepository{storage: append([]Coupon(nil), seed...), nextID: 1}
	for i := range r.storage {
		r.storage[i].Code = NormalizeCode(r.storage[i].Code)
		if r.storage[i].CouponID >= r.nextID {
			r.nextID = r.storage[i].CouponID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List() ([]Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Coupon(nil), r.storage...), nil
}

func (r *InMemoryRepository) GetByCode(code string) (Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code = NormalizeCode(code)
	for _, cp := range r.storage {
		if cp.Code == code {
			return cp, nil
		}
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) Create(cp Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp.Code = NormalizeCode(cp.Code)
	if cp.CouponID == 0 {
		cp.CouponID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, cp)
	return cp, nil
}

func (r *InMemoryRepository) Update(id int, cp Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].CouponID == id {
			cp.CouponID = id
			cp.Code = NormalizeCode(cp.Code)
			r.storage[i] = cp
			return cp, nil
		}
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].CouponID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
