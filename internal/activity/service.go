package activity

import (
	"context"
	"fmt"
	"time"

	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

// Service is the activity sink the rest of the system reports to.
// Recording is best-effort: a failed audit line must never fail the
// operation that produced it.
type Service interface {
	Record(ctx context.Context, email, text string)
	ListRecent(ctx context.Context) ([]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, email, text string) {
	if err := s.repo.Create(ctx, email, text); err != nil {
		logger.FromCtx(ctx).Warn("failed to record activity",
			zap.String("email", email),
			zap.String("activity", text),
			zap.Error(err),
		)
	}
}

func (s *service) ListRecent(ctx context.Context) ([]string, error) {
	since := time.Now().Add(-24 * time.Hour)

	acts, err := s.repo.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(acts))
	for _, a := range acts {
		lines = append(lines, fmt.Sprintf("• %s %s %s",
			a.Email, a.Activity, a.CreatedAt.Format("2006-01-02 15:04:05")))
	}

	return lines, nil
}
