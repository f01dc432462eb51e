package collection

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("collection not found")

// Repository provides access to collection rows.
type Repository interface {
	List(limit int) ([]Collection, error)
	GetBySlug(slug string) (Collection, error)
	Create(col Collection) (Collection, error)
	Update(id int, col Collection) (Collection, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Collection
	nextID  int
}

func NewInMemoryRepository(seed []Collection) *InMemoryRepository {
	r := &InMemoryRepository{storage: append([]Collection(nil), seed...), nextID: 1}
	for _, c := range seed {
		if c.CollectionID >= r.nextID {
			r.nextID = c.CollectionID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List(limit int) ([]Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Collection, 0)
	for _, c := range r.storage {
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(slug string) (Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Collection{}, ErrNotFound
}

func (r *InMemoryRepository) Create(col Collection) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if col.CollectionID == 0 {
		col.CollectionID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, col)
	return col, nil
}

func (r *InMemoryRepository) Update(id int, col Collection) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].CollectionID == id {
			col.CollectionID = id
			r.storage[i] = col
			return col, nil
		}
	}
	return Collection{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].CollectionID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
