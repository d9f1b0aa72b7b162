package planning

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"venuehub/internal/domain"
)

type Notifier interface {
	NotifyPlanEventAssigned(ctx context.Context, recipientID int64, ev *domain.PlanEvent) error
}

type Service struct {
	repo   *Repository
	notifs Notifier
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewService(repo *Repository, notifs Notifier, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, notifs: notifs, log: log, now: time.Now}
}

// managerTransitions lists where a manager may move an event from each state.
var managerTransitions = map[domain.PlanEventStatus][]domain.PlanEventStatus{
	domain.PlanEventAssigned:   {domain.PlanEventInProgress, domain.PlanEventCancelled},
	domain.PlanEventInProgress: {domain.PlanEventDone, domain.PlanEventCancelled},
}

func canMove(from, to domain.PlanEventStatus) bool {
	for _, s := range managerTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *Service) Create(ctx context.Context, userID int64, req CreatePlanEventRequest) (*domain.PlanEvent, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.EventDate))
	if err != nil {
		return nil, ErrValidation
	}
	if date.Before(domain.DateOnly(s.now())) {
		return nil, ErrValidation
	}
	if req.BookingID != nil {
		ok, err := s.repo.BookingBelongsTo(ctx, *req.BookingID, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrValidation
		}
	}

	ev := &domain.PlanEvent{
		UserID:    userID,
		BookingID: req.BookingID,
		Title:     strings.TrimSpace(req.Title),
		EventType: strings.TrimSpace(req.EventType),
		EventDate: date,
		Guests:    req.Guests,
		Budget:    req.Budget,
		City:      strings.TrimSpace(req.City),
		Notes:     req.Notes,
		Status:    domain.PlanEventNew,
	}
	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]domain.PlanEvent, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, status string) ([]domain.PlanEvent, error) {
	return s.repo.ListAll(ctx, status)
}

func (s *Service) ListAssigned(ctx context.Context, managerID int64) ([]domain.PlanEvent, error) {
	return s.repo.ListByManager(ctx, managerID)
}

// Assign hands an open event to an active event manager and tells both sides.
func (s *Service) Assign(ctx context.Context, id, managerID int64) (*domain.PlanEvent, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.Status != domain.PlanEventNew && ev.Status != domain.PlanEventAssigned {
		return nil, ErrInvalidTransition
	}

	m, err := s.repo.GetUser(ctx, managerID)
	if err != nil {
		return nil, ErrNotEventManager
	}
	if m.Role != domain.RoleEventManager || m.Status != domain.UserActive {
		return nil, ErrNotEventManager
	}

	if err := s.repo.Update(ctx, id, map[string]any{
		"manager_id": managerID,
		"status":     domain.PlanEventAssigned,
	}); err != nil {
		return nil, err
	}
	ev.ManagerID = &managerID
	ev.Status = domain.PlanEventAssigned

	if s.notifs != nil {
		for _, rid := range []int64{managerID, ev.UserID} {
			if err := s.notifs.NotifyPlanEventAssigned(ctx, rid, ev); err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{"plan_event_id": id, "recipient_id": rid}).Warn("planning: notify failed")
			}
		}
	}
	s.log.WithFields(logrus.Fields{"plan_event_id": id, "manager_id": managerID}).Info("planning: manager assigned")
	return ev, nil
}

// ManagerUpdate lets the assigned manager move the event forward and keep notes.
func (s *Service) ManagerUpdate(ctx context.Context, managerID, id int64, req ManagerUpdateRequest) (*domain.PlanEvent, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.ManagerID == nil || *ev.ManagerID != managerID {
		return nil, ErrForbidden
	}

	updates := map[string]any{}
	if req.Status != "" {
		to := domain.PlanEventStatus(req.Status)
		if to != ev.Status {
			if !canMove(ev.Status, to) {
				return nil, ErrInvalidTransition
			}
			updates["status"] = to
		}
	}
	if req.Notes != nil {
		updates["manager_notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return ev, nil
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
