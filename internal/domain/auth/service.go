package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"venuehub/internal/domain"
	"venuehub/internal/pkg/jwt"
)

type tokenIssuer interface {
	GenerateToken(sub jwt.Subject) (string, error)
}

type Service struct {
	users     *UserRepository
	jwt       tokenIssuer
	ttlSecond int64
	log       logrus.FieldLogger
}

func NewService(users *UserRepository, jwtService *jwt.Service, log logrus.FieldLogger) *Service {
	return &Service{
		users:     users,
		jwt:       jwtService,
		ttlSecond: int64(jwtService.TTL().Seconds()),
		log:       log,
	}
}

// Register creates an account. Admin and event manager accounts are only
// created through the admin surface.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*SessionResult, error) {
	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleOwner && role != domain.RoleProvider {
		return nil, ErrRoleNotAllowed
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		Status:       domain.UserActive,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	return s.session(u)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*SessionResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := CheckPassword(req.Password, u.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Status == domain.UserSuspended {
		return nil, ErrAccountSuspended
	}
	return s.session(u)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) session(u *domain.User) (*SessionResult, error) {
	token, err := s.jwt.GenerateToken(jwt.Subject{
		UserID: u.ID,
		Role:   string(u.Role),
		Email:  u.Email,
		Name:   u.Name,
	})
	if err != nil {
		return nil, err
	}
	return &SessionResult{User: u, AccessToken: token, ExpiresIn: s.ttlSecond}, nil
}
