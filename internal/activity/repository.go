package activity

import (
	"context"
	"database/sql"
	"time"

	"tilemart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, text string) error
	ListSince(ctx context.Context, since time.Time) ([]*RecentActivity, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, text string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Activity"),
		zap.String("method", "Create"),
		zap.String("email", email),
	)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recent_activities (email, activity)
		VALUES ($1, $2)
	`, email, text)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) ListSince(ctx context.Context, since time.Time) ([]*RecentActivity, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Activity"),
		zap.String("method", "ListSince"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, activity, created_at
		FROM recent_activities
		WHERE created_at >= $1
		ORDER BY created_at DESC
	`, since)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*RecentActivity
	for rows.Next() {
		var a RecentActivity
		if err := rows.Scan(&a.ID, &a.Email, &a.Activity, &a.CreatedAt); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &a)
	}

	return res, rows.Err()
}
