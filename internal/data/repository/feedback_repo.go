package repository

import (
	"context"
	"fmt"

	"ticket-booking/internal/data/entity"
	"ticket-booking/pkg/database"

	"go.uber.org/zap"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindByEventID(ctx context.Context, eventID int64) ([]*entity.Feedback, error)
}

type feedbackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFeedbackRepository(db database.PgxIface, log *zap.Logger) FeedbackRepository {
	return &feedbackRepository{
		db:  db,
		log: log.With(zap.String("repository", "feedback")),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	query := `
		INSERT INTO feedback (event_id, user_id, text, rating, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		feedback.EventID,
		feedback.UserID,
		feedback.Text,
		feedback.Rating,
		feedback.CreatedAt,
	).Scan(&feedback.ID)

	if err != nil {
		r.log.Error("Failed to create feedback",
			zap.Error(err),
			zap.Int64("event_id", feedback.EventID),
			zap.Int64("user_id", feedback.UserID),
		)
		return fmt.Errorf("create feedback for event %d by user %d: %w",
			feedback.EventID, feedback.UserID, err)
	}

	return nil
}

func (r *feedbackRepository) FindByEventID(ctx context.Context, eventID int64) ([]*entity.Feedback, error) {
	query := `
		SELECT id, event_id, user_id, text, rating, created_at
		FROM feedback
		WHERE event_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find feedback by event ID",
			zap.Error(err),
			zap.Int64("event_id", eventID),
		)
		return nil, fmt.Errorf("find feedback by event ID %d: %w", eventID, err)
	}
	defer rows.Close()

	var feedbacks []*entity.Feedback
	for rows.Next() {
		var feedback entity.Feedback
		err := rows.Scan(
			&feedback.ID,
			&feedback.EventID,
			&feedback.UserID,
			&feedback.Text,
			&feedback.Rating,
			&feedback.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan feedback row", zap.Error(err))
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		feedbacks = append(feedbacks, &feedback)
	}

	return feedbacks, nil
}
