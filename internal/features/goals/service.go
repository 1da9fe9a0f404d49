package goals

import (
	"context"

	"github.com/xyz-asif/goalpath/internal/pkg/logger"
	apperrors "github.com/xyz-asif/goalpath/pkg/errors"
)

type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{repo: repo, log: log}
}

func notFound(id int64) error {
	return apperrors.NotFound("Could not find goal with id: %d", id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Goal, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *Service) ListCompleted(ctx context.Context, userID string) ([]Goal, error) {
	return s.repo.FindByUserAndCompleted(ctx, userID, true)
}

func (s *Service) ListInProgress(ctx context.Context, userID string) ([]Goal, error) {
	return s.repo.FindByUserAndCompleted(ctx, userID, false)
}

// Create stores a new goal. The id is always assigned by storage.
func (s *Service) Create(ctx context.Context, req *GoalRequest) (*Goal, error) {
	goal := req.ToGoal()
	if err := s.repo.Save(ctx, goal); err != nil {
		return nil, err
	}

	s.log.Debug("goal %d created for user %q", goal.ID, goal.UserID)
	return goal, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Goal, error) {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, notFound(id)
	}
	return goal, nil
}

// Update overwrites title, description, progress and target date.
// Owner and creation time are kept from the stored goal.
func (s *Service) Update(ctx context.Context, id int64, req *GoalRequest) (*Goal, error) {
	goal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	goal.Title = req.Title
	goal.Description = req.Description
	goal.SetProgress(req.Progress)
	goal.TargetDate = req.TargetDate

	if err := s.repo.Save(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}
