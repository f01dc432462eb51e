package merchant

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("merchant not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

// Repository provides access to merchant accounts.
type Repository interface {
	GetByID(id int) (Merchant, error)
	GetByEmail(email string) (Merchant, error)
	Create(m Merchant) (Merchant, error)
	Update(id int, m Merchant) (Merchant, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts []Merchant
	nextID   int
}

func NewInMemoryRepository(seed []Merchant) *InMemoryRepository {
	r := &InMemoryRepository{accounts: append([]Merchant(nil), seed...), nextID: 1}
	for _, m := range seed {
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) GetByID(id int) (Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.accounts {
		if m.ID == id {
			return m, nil
		}
	}
	return Merchant{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.accounts {
		if m.Email == email {
			return m, nil
		}
	}
	return Merchant{}, ErrNotFound
}

func (r *InMemoryRepository) Create(m Merchant) (Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == 0 {
		m.ID = r.nextID
		r.nextID++
	}
	r.accounts = append(r.accounts, m)
	return m, nil
}

func (r *InMemoryRepository) Update(id int, m Merchant) (Merchant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			m.ID = id
			if m.Password == "" {
				m.Password = r.accounts[i].Password
			}
			r.accounts[i] = m
			return m, nil
		}
	}
	return Merchant{}, ErrNotFound
}
