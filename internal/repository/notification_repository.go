package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
)

// NotificationRepository stores in-app notification rows.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByRequest(ctx context.Context, requestID string) ([]domain.Notification, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository builds repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (request_id, channel, kind, body, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		notification.RequestID,
		notification.Channel,
		notification.Kind,
		notification.Body,
		notification.Status,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *notificationRepository) ListByRequest(ctx context.Context, requestID string) ([]domain.Notification, error) {
	const query = `
        SELECT id, request_id, channel, kind, body, status, created_at
        FROM notifications WHERE request_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.RequestID,
			&notification.Channel,
			&notification.Kind,
			&notification.Body,
			&notification.Status,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}
