package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sahayak/internal/domain"
	"sahayak/internal/pkg/apperror"
)

type Service struct {
	users     UserRepository
	providers ProviderRepository
	tokens    TokenIssuer
	log       *zap.Logger
	cost      int
}

func NewService(users UserRepository, providers ProviderRepository, tokens TokenIssuer, log *zap.Logger) *Service {
	return &Service{
		users:     users,
		providers: providers,
		tokens:    tokens,
		log:       log,
		cost:      bcrypt.DefaultCost,
	}
}

func (s *Service) RegisterUser(ctx context.Context, req RegisterUserRequest) (*AuthResult, error) {
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, mapConflict(err)
	}

	s.log.Info("user registered", zap.String("user_id", u.ID))
	return s.issueForUser(u)
}

// RegisterProvider creates the provider and links it to every service of the
// chosen category. An empty or unknown category creates nothing.
func (s *Service) RegisterProvider(ctx context.Context, req RegisterProviderRequest) (*AuthResult, error) {
	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	p := &domain.ServiceProvider{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		CategoryID:   req.CategoryID,
		Experience:   req.Experience,
		Status:       domain.StatusActive,
	}
	linked, err := s.providers.CreateWithServices(ctx, p)
	if err != nil {
		return nil, mapConflict(err)
	}

	s.log.Info("provider registered",
		zap.String("provider_id", p.ID),
		zap.String("category_id", p.CategoryID),
		zap.Int("linked_services", linked))

	res, err := s.issueForProvider(p)
	if err != nil {
		return nil, err
	}
	res.LinkedServices = linked
	return res, nil
}

func (s *Service) LoginUser(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	return s.loginAccount(ctx, req, domain.RoleUser)
}

func (s *Service) LoginAdmin(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	return s.loginAccount(ctx, req, domain.RoleAdmin)
}

func (s *Service) loginAccount(ctx context.Context, req LoginRequest, role domain.Role) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, credentialsErr(err)
	}
	if u.Role != role || !checkPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if u.Status == domain.StatusBlocked {
		return nil, ErrAccountBlocked
	}
	return s.issueForUser(u)
}

func (s *Service) LoginProvider(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	p, err := s.providers.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, credentialsErr(err)
	}
	if !checkPassword(p.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if p.Status == domain.StatusBlocked {
		return nil, ErrAccountBlocked
	}
	return s.issueForProvider(p)
}

func (s *Service) Me(ctx context.Context, id string, role domain.Role) (*MeResponse, error) {
	switch role {
	case domain.RoleUser, domain.RoleAdmin:
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &MeResponse{Role: u.Role, User: u}, nil
	case domain.RoleProvider:
		p, err := s.providers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &MeResponse{Role: domain.RoleProvider, Provider: p}, nil
	}
	return nil, ErrUnknownRole
}

// PrincipalStatus satisfies middleware.PrincipalChecker.
func (s *Service) PrincipalStatus(ctx context.Context, id string, role domain.Role) (domain.AccountStatus, error) {
	switch role {
	case domain.RoleUser, domain.RoleAdmin:
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if u.Role != role {
			return "", apperror.New(apperror.ErrNotFound, "account not found")
		}
		return u.Status, nil
	case domain.RoleProvider:
		p, err := s.providers.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return p.Status, nil
	}
	return "", apperror.New(apperror.ErrNotFound, "account not found")
}

// EnsureAdmin creates the configured admin account on first start. An existing
// account under that email is left untouched.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.log.Info("admin account seeded", zap.String("email", admin.Email))
	return nil
}

func (s *Service) issueForUser(u *domain.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Role: u.Role, User: u}, nil
}

func (s *Service) issueForProvider(p *domain.ServiceProvider) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(p.ID, string(domain.RoleProvider))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Role: domain.RoleProvider, Provider: p}, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func credentialsErr(err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return ErrInvalidCredentials
	}
	return err
}

func mapConflict(err error) error {
	if errors.Is(err, apperror.ErrConflict) {
		return ErrEmailTaken
	}
	return err
}
