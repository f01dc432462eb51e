package category

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` categories, optionally scoped to one
// collection (collectionID <= 0 lists all).
func (s *Service) List(collectionID int, limit int) []Category {
	items, err := s.repo.List(collectionID, limit)
	if err != nil {
		return []Category{}
	}
	return items
}

func (s *Service) Create(cat Category) (Category, error) {
	return s.repo.Create(cat)
}

func (s *Service) Update(id int, cat Category) (Category, error) {
	return s.repo.Update(id, cat)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
