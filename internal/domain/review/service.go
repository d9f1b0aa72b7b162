package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"venuehub/internal/domain"
	"venuehub/internal/pkg/events"
)

type Notifier interface {
	NotifyNewReview(ctx context.Context, ownerID, hallID, reviewID int64, rating int) error
}

type Service struct {
	repo   *Repository
	notifs Notifier
	events events.Publisher
	log    logrus.FieldLogger
}

func NewService(repo *Repository, notifs Notifier, pub events.Publisher, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, notifs: notifs, events: pub, log: log}
}

// Create stores a review for a completed booking and refreshes the hall's
// rating aggregate in the same transaction.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, *Summary, error) {
	if userID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, nil, ErrInvalidRequest
	}

	b, err := s.repo.GetBooking(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrReviewNotAllowed
		}
		return nil, nil, err
	}
	if b.UserID != userID || b.HallID != req.HallID || b.Status != domain.BookingCompleted {
		return nil, nil, ErrReviewNotAllowed
	}
	hall, err := s.repo.GetHall(ctx, req.HallID)
	if err != nil {
		return nil, nil, err
	}

	rv := &domain.Review{
		HallID:    req.HallID,
		UserID:    userID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		Images:    req.Images,
		Status:    domain.ReviewApproved,
	}
	var sum *Summary
	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		dup, err := tx.Exists(ctx, rv.HallID, rv.UserID, rv.BookingID)
		if err != nil {
			return err
		}
		if dup {
			return ErrConflict
		}
		if err := tx.Create(ctx, rv); err != nil {
			return err
		}
		sum, err = tx.Recompute(ctx, rv.HallID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{"review_id": rv.ID, "hall_id": rv.HallID, "rating": rv.Rating, "average": sum.AverageRating}).Info("review created")
	if err := s.notifs.NotifyNewReview(ctx, hall.OwnerID, hall.ID, rv.ID, rv.Rating); err != nil {
		s.log.WithError(err).Warn("notify owner failed")
	}
	if err := s.events.PublishJSON(ctx, events.ReviewCreated, map[string]any{
		"review_id": rv.ID,
		"hall_id":   rv.HallID,
		"rating":    rv.Rating,
		"average":   sum.AverageRating,
	}); err != nil {
		s.log.WithError(err).Warn("publish review event failed")
	}
	return rv, sum, nil
}

func (s *Service) ListByHall(ctx context.Context, hallID int64, limit, offset int) ([]domain.Review, int64, error) {
	if hallID <= 0 {
		return nil, 0, ErrInvalidRequest
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByHall(ctx, hallID, false, limit, offset)
}

func (s *Service) AddOwnerResponse(ctx context.Context, reviewID, userID int64, response string) (*domain.Review, error) {
	response = strings.TrimSpace(response)
	if reviewID <= 0 || userID <= 0 || response == "" {
		return nil, ErrInvalidRequest
	}
	rv, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	hall, err := s.repo.GetHall(ctx, rv.HallID)
	if err != nil {
		return nil, err
	}
	if hall.OwnerID != userID {
		return nil, ErrForbidden
	}

	now := time.Now().UTC()
	if err := s.repo.SetOwnerResponse(ctx, reviewID, response, now); err != nil {
		return nil, err
	}
	rv.OwnerResponse = &response
	rv.RespondedAt = &now
	return rv, nil
}

// SetStatus hides or restores a review and refreshes the hall aggregate.
func (s *Service) SetStatus(ctx context.Context, reviewID int64, status domain.ReviewStatus) (*Summary, error) {
	if status != domain.ReviewApproved && status != domain.ReviewHidden {
		return nil, ErrInvalidRequest
	}
	rv, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	var sum *Summary
	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.SetStatus(ctx, rv.ID, status); err != nil {
			return err
		}
		sum, err = tx.Recompute(ctx, rv.HallID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"review_id": rv.ID, "status": status}).Info("review moderated")
	return sum, nil
}
