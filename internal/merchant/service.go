package merchant

import "golang.org/x/crypto/bcrypt"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (Merchant, error) {
	return s.repo.GetByID(id)
}

// Register creates a new merchant account with a bcrypt-hashed password.
func (s *Service) Register(m Merchant) (Merchant, error) {
	if _, err := s.repo.GetByEmail(m.Email); err == nil {
		return Merchant{}, ErrEmailExists
	} else if err != ErrNotFound {
		return Merchant{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(m.Password), bcrypt.DefaultCost)
	if err != nil {
		return Merchant{}, err
	}
	m.Password = string(hashed)
	return s.repo.Create(m)
}

// Authenticate verifies an email/password pair. Both a missing account and
// a wrong password return ErrInvalidCredentials.
func (s *Service) Authenticate(email, password string) (Merchant, error) {
	m, err := s.repo.GetByEmail(email)
	if err != nil {
		return Merchant{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password)) != nil {
		return Merchant{}, ErrInvalidCredentials
	}
	return m, nil
}

func (s *Service) Update(id int, m Merchant) (Merchant, error) {
	return s.repo.Update(id, m)
}
