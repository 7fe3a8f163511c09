package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mergingtonactivities/internal/domain"
)

// ActivityServiceOptions tunes the activity service.
type ActivityServiceOptions struct {
	// EnforceCapacity rejects signups once an activity reaches max_participants.
	EnforceCapacity bool
	Timeout         time.Duration
}

type activityService struct {
	repo            domain.ActivityRepository
	emailService    domain.EmailService
	observer        domain.RosterObserver
	logger          *slog.Logger
	enforceCapacity bool
	contextTimeout  time.Duration
}

// NewActivityService creates an ActivityService. emailService and observer may be nil.
func NewActivityService(
	repo domain.ActivityRepository,
	emailService domain.EmailService,
	observer domain.RosterObserver,
	logger *slog.Logger,
	opts ActivityServiceOptions,
) domain.ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &activityService{
		repo:            repo,
		emailService:    emailService,
		observer:        observer,
		logger:          logger,
		enforceCapacity: opts.EnforceCapacity,
		contextTimeout:  timeout,
	}
}

func (s *activityService) ListActivities(ctx context.Context) (domain.ActivityList, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if activities == nil {
		activities = domain.ActivityList{}
	}
	return activities, nil
}

func (s *activityService) GetActivity(ctx context.Context, name string) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

func (s *activityService) Signup(ctx context.Context, activityName, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.repo.Update(ctx, activityName, func(a *domain.Activity) error {
		if a.HasParticipant(email) {
			return domain.ErrAlreadySignedUp
		}
		if s.enforceCapacity && a.IsFull() {
			return domain.ErrActivityFull
		}
		a.Participants = append(a.Participants, email)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return "", err
		}
		return "", fmt.Errorf("signup: %w", err)
	}

	if s.observer != nil {
		s.observer.ParticipantAdded(updated.Name, len(updated.Participants))
	}
	if s.emailService != nil {
		data := rosterEmailData(updated, email)
		if err := s.emailService.SendSignupConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "signup confirmation email failed", "activity", updated.Name, "email", email, "err", err)
		}
	}
	return fmt.Sprintf("Signed up %s for %s", email, updated.Name), nil
}

func (s *activityService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.repo.Update(ctx, activityName, func(a *domain.Activity) error {
		if !a.RemoveParticipant(email) {
			return domain.ErrNotRegistered
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return "", err
		}
		return "", fmt.Errorf("unregister: %w", err)
	}

	if s.observer != nil {
		s.observer.ParticipantRemoved(updated.Name, len(updated.Participants))
	}
	if s.emailService != nil {
		data := rosterEmailData(updated, email)
		if err := s.emailService.SendUnregisterNotice(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "unregister notice email failed", "activity", updated.Name, "email", email, "err", err)
		}
	}
	return fmt.Sprintf("Unregistered %s from %s", email, updated.Name), nil
}

func rosterEmailData(a *domain.Activity, email string) *domain.RosterEmailData {
	return &domain.RosterEmailData{
		Email:        email,
		ActivityName: a.Name,
		Schedule:     a.Schedule,
		SpotsLeft:    a.SpotsLeft(),
	}
}
