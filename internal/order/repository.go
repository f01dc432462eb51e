package order

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("order not found")

// Repository provides access to order rows.
type Repository interface {
	List() ([]Order, error)
	GetByID(id int) (Order, error)
	Create(o Order) (Order, error)
	Update(id int, o Order) (Order, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Order
	nextID  int
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{storage: append([]Order(nil), seed...), nextID: 1}
	for _, o := range seed {
		if o.OrderID >= r.nextID {
			r.nextID = o.OrderID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Order(nil), r.storage...), nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.storage {
		if o.OrderID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.OrderID == 0 {
		o.OrderID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, o)
	return o, nil
}

func (r *InMemoryRepository) Update(id int, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].OrderID == id {
			o.OrderID = id
			r.storage[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}
