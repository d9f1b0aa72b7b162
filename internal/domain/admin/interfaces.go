package admin

import (
	"context"

	"venuehub/internal/domain"
	"venuehub/internal/domain/auth"
)

// CatalogModerator is implemented by catalog.Service.
type CatalogModerator interface {
	ListAllHalls(ctx context.Context, status string, limit, offset int) ([]domain.Hall, int64, error)
	SetHallStatus(ctx context.Context, hallID int64, status domain.HallStatus, verified *bool) error
	DeleteHall(ctx context.Context, hallID int64) error
	ListServicesForModeration(ctx context.Context, status string) ([]domain.VendorService, error)
	SetServiceApproval(ctx context.Context, id int64, approved bool) error
}

// UserStore is implemented by auth.UserRepository.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, f auth.UserFilter) ([]domain.User, int64, error)
	SetStatus(ctx context.Context, id int64, status domain.UserStatus) error
	SetRole(ctx context.Context, id int64, role domain.UserRole) error
}

type NotificationSender interface {
	NotifyVerification(ctx context.Context, userID int64, approved bool, reason string) error
}
