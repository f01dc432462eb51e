package collection

// Service provides business logic for collections.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` collections, featured first. Only visible
// collections are exposed unless includeHidden is set (merchant view).
func (s *Service) List(limit int, includeHidden bool) []Collection {
	items, err := s.repo.List(limit)
	if err != nil {
		return []Collection{}
	}
	if includeHidden {
		return items
	}
	out := make([]Collection, 0, len(items))
	for _, c := range items {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

func (s *Service) GetBySlug(slug string) (Collection, error) {
	return s.repo.GetBySlug(slug)
}

func (s *Service) Create(col Collection) (Collection, error) {
	return s.repo.Create(col)
}

func (s *Service) Update(id int, col Collection) (Collection, error) {
	return s.repo.Update(id, col)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
