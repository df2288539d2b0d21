package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/dto/request"
	"ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

type FeedbackService interface {
	CreateFeedback(ctx context.Context, req *request.CreateFeedbackRequest) (*entity.Feedback, error)
	ByEvent(ctx context.Context, eventID int64) ([]*entity.Feedback, error)
}

type feedbackService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFeedbackService(repo *repository.Repository, log *zap.Logger) FeedbackService {
	return &feedbackService{
		repo: repo,
		log:  log.With(zap.String("service", "feedback")),
	}
}

func (s *feedbackService) CreateFeedback(ctx context.Context, req *request.CreateFeedbackRequest) (*entity.Feedback, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create feedback validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	event, err := s.repo.Event.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("find event %d: %w", req.EventID, err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	feedback := &entity.Feedback{
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
		EventID: req.EventID,
		UserID:  req.UserID,
		Text:    req.Text,
		Rating:  req.Rating,
	}

	if err := s.repo.Feedback.Create(ctx, feedback); err != nil {
		s.log.Error("Failed to create feedback",
			zap.Error(err),
			zap.Int64("event_id", req.EventID),
			zap.Int64("user_id", req.UserID),
		)
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	s.log.Info("Feedback created",
		zap.Int64("feedback_id", feedback.ID),
		zap.Int64("event_id", feedback.EventID),
	)

	return feedback, nil
}

func (s *feedbackService) ByEvent(ctx context.Context, eventID int64) ([]*entity.Feedback, error) {
	feedbacks, err := s.repo.Feedback.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list feedback for event %d: %w", eventID, err)
	}

	return feedbacks, nil
}
