package admin

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"venuehub/internal/domain"
	"venuehub/internal/domain/auth"
)

type Service struct {
	repo    *Repository
	catalog CatalogModerator
	users   UserStore
	notifs  NotificationSender
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewService(repo *Repository, catalog CatalogModerator, users UserStore, notifs NotificationSender, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, catalog: catalog, users: users, notifs: notifs, log: log, now: time.Now}
}

func clamp(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// -------------------- Halls & services --------------------

func (s *Service) ListHalls(ctx context.Context, status string, limit, offset int) ([]domain.Hall, int64, error) {
	limit, offset = clamp(limit, offset)
	return s.catalog.ListAllHalls(ctx, status, limit, offset)
}

// ApproveHall publishes the hall and marks it verified.
func (s *Service) ApproveHall(ctx context.Context, hallID int64) error {
	verified := true
	return s.catalog.SetHallStatus(ctx, hallID, domain.HallActive, &verified)
}

func (s *Service) DeactivateHall(ctx context.Context, hallID int64) error {
	return s.catalog.SetHallStatus(ctx, hallID, domain.HallInactive, nil)
}

func (s *Service) DeleteHall(ctx context.Context, hallID int64) error {
	return s.catalog.DeleteHall(ctx, hallID)
}

func (s *Service) ListServices(ctx context.Context, status string) ([]domain.VendorService, error) {
	return s.catalog.ListServicesForModeration(ctx, status)
}

func (s *Service) SetServiceApproval(ctx context.Context, id int64, approved bool) error {
	return s.catalog.SetServiceApproval(ctx, id, approved)
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, f UserListFilter) ([]domain.User, int64, error) {
	limit, offset := clamp(f.Limit, f.Offset)
	return s.users.List(ctx, auth.UserFilter{Role: f.Role, Status: f.Status, Limit: limit, Offset: offset})
}

func (s *Service) SetUserStatus(ctx context.Context, adminID, userID int64, status domain.UserStatus) error {
	if adminID == userID {
		return ErrSelfModeration
	}
	if status != domain.UserActive && status != domain.UserSuspended {
		return ErrValidation
	}
	if err := s.users.SetStatus(ctx, userID, status); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"admin_id": adminID, "user_id": userID, "status": status}).Info("admin: user status changed")
	return nil
}

func (s *Service) SetUserRole(ctx context.Context, adminID, userID int64, role domain.UserRole) error {
	if adminID == userID {
		return ErrSelfModeration
	}
	if !role.Valid() {
		return ErrValidation
	}
	if err := s.users.SetRole(ctx, userID, role); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"admin_id": adminID, "user_id": userID, "role": role}).Info("admin: user role changed")
	return nil
}

// -------------------- Verifications --------------------

// SubmitVerification files documents for review. One pending request per user.
func (s *Service) SubmitVerification(ctx context.Context, userID int64, docs []string) (*domain.Verification, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != domain.RoleOwner && u.Role != domain.RoleProvider {
		return nil, ErrRoleNotVerifying
	}
	pending, err := s.repo.HasPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrAlreadyPending
	}

	v := &domain.Verification{
		UserID:    userID,
		Documents: docs,
		Status:    domain.VerificationPending,
	}
	if err := s.repo.CreateVerification(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) MyVerifications(ctx context.Context, userID int64) ([]domain.Verification, error) {
	return s.repo.ListVerifications(ctx, "", userID)
}

func (s *Service) ListVerifications(ctx context.Context, status string) ([]domain.Verification, error) {
	return s.repo.ListVerifications(ctx, status, 0)
}

// ReviewVerification settles a pending request and flips User.verified in the same transaction.
func (s *Service) ReviewVerification(ctx context.Context, adminID, id int64, approved bool, reason string) (*domain.Verification, error) {
	status := domain.VerificationRejected
	if approved {
		status = domain.VerificationApproved
		reason = ""
	}

	var v *domain.Verification
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		var err error
		if v, err = tx.GetVerification(ctx, id); err != nil {
			return err
		}
		if err := tx.Review(ctx, id, status, reason, adminID, s.now()); err != nil {
			return err
		}
		return tx.SetUserVerified(ctx, v.UserID, approved)
	})
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyVerification(ctx, v.UserID, approved, reason); err != nil {
			s.log.WithError(err).WithField("verification_id", id).Warn("admin: notify failed")
		}
	}
	return s.repo.GetVerification(ctx, id)
}

// -------------------- Statistics --------------------

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	return s.repo.Statistics(ctx, s.now())
}
