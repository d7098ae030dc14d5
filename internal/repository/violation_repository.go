package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/sla"
)

// ViolationAudit is a persisted violation detection.
type ViolationAudit struct {
	ID         string
	Violation  sla.Violation
	DetectedAt time.Time
}

// ViolationRepository stores violation audit rows. A violation is keyed by
// (request, type, due date), so re-detecting the same miss on every sweep
// inserts nothing new.
type ViolationRepository interface {
	Record(ctx context.Context, violation sla.Violation, detectedAt time.Time) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]ViolationAudit, error)
	ListByRequest(ctx context.Context, requestID string) ([]ViolationAudit, error)
}

type violationRepository struct {
	pool *pgxpool.Pool
}

// NewViolationRepository builds repository.
func NewViolationRepository(pool *pgxpool.Pool) ViolationRepository {
	return &violationRepository{pool: pool}
}

// Record inserts the violation and reports whether it was newly detected.
func (r *violationRepository) Record(ctx context.Context, violation sla.Violation, detectedAt time.Time) (bool, error) {
	const query = `
        INSERT INTO sla_violations (request_id, violation_type, due_date, minutes_overdue, priority, workflow_stage, detected_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (request_id, violation_type, due_date) DO NOTHING`
	cmd, err := r.pool.Exec(ctx, query,
		violation.RequestID,
		violation.Type,
		violation.DueDate,
		violation.MinutesOverdue,
		violation.Priority,
		violation.WorkflowStage,
		detectedAt,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *violationRepository) ListRecent(ctx context.Context, limit int) ([]ViolationAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, request_id, violation_type, due_date, minutes_overdue, priority, workflow_stage, detected_at
        FROM sla_violations ORDER BY detected_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanViolations(rows)
}

func (r *violationRepository) ListByRequest(ctx context.Context, requestID string) ([]ViolationAudit, error) {
	const query = `
        SELECT id, request_id, violation_type, due_date, minutes_overdue, priority, workflow_stage, detected_at
        FROM sla_violations WHERE request_id=$1 ORDER BY detected_at ASC`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanViolations(rows)
}

func scanViolations(rows pgx.Rows) ([]ViolationAudit, error) {
	var result []ViolationAudit
	for rows.Next() {
		var audit ViolationAudit
		if err := rows.Scan(
			&audit.ID,
			&audit.Violation.RequestID,
			&audit.Violation.Type,
			&audit.Violation.DueDate,
			&audit.Violation.MinutesOverdue,
			&audit.Violation.Priority,
			&audit.Violation.WorkflowStage,
			&audit.DetectedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, audit)
	}
	return result, rows.Err()
}
