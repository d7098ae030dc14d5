package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
)

// RequestFilter captures search parameters for request listings.
type RequestFilter struct {
	PropertyID   *string
	RequesterID  *string
	TechnicianID *string
	Stages       []domain.WorkflowStage
	Statuses     []domain.RequestStatus
	Priorities   []domain.RequestPriority
	SearchTerm   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// RequestRepository encapsulates maintenance request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.MaintenanceRequest) error
	Update(ctx context.Context, request *domain.MaintenanceRequest) error
	GetByID(ctx context.Context, id string) (*domain.MaintenanceRequest, error)
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.MaintenanceRequest, error)
	ListInFlight(ctx context.Context) ([]domain.MaintenanceRequest, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestColumns = `id, external_key, property_id, requester_id, technician_id,
               title, description, priority, workflow_stage, status,
               sla_accept_due, sla_arrive_due, sla_complete_due,
               created_at, updated_at, closed_at`

func (r *requestRepository) Create(ctx context.Context, request *domain.MaintenanceRequest) error {
	const query = `
        INSERT INTO maintenance_requests (external_key, property_id, requester_id, technician_id, title, description,
            priority, workflow_stage, status, sla_accept_due, sla_arrive_due, sla_complete_due)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.ExternalKey,
		request.PropertyID,
		request.RequesterID,
		request.TechnicianID,
		request.Title,
		request.Description,
		request.Priority,
		request.WorkflowStage,
		request.Status,
		request.SLAAcceptDue,
		request.SLAArriveDue,
		request.SLACompleteDue,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *requestRepository) Update(ctx context.Context, request *domain.MaintenanceRequest) error {
	const query = `
        UPDATE maintenance_requests SET technician_id=$1, title=$2, description=$3, priority=$4,
            workflow_stage=$5, status=$6, sla_accept_due=$7, sla_arrive_due=$8, sla_complete_due=$9,
            closed_at=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		request.TechnicianID,
		request.Title,
		request.Description,
		request.Priority,
		request.WorkflowStage,
		request.Status,
		request.SLAAcceptDue,
		request.SLAArriveDue,
		request.SLACompleteDue,
		request.ClosedAt,
		request.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenance_requests WHERE id=$1`, requestColumns)
	var request domain.MaintenanceRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.ExternalKey,
		&request.PropertyID,
		&request.RequesterID,
		&request.TechnicianID,
		&request.Title,
		&request.Description,
		&request.Priority,
		&request.WorkflowStage,
		&request.Status,
		&request.SLAAcceptDue,
		&request.SLAArriveDue,
		&request.SLACompleteDue,
		&request.CreatedAt,
		&request.UpdatedAt,
		&request.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListInFlight returns the SLA evaluation snapshot: every request whose status
// is not terminal. Stage filtering is the evaluator's concern, not the query's.
func (r *requestRepository) ListInFlight(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM maintenance_requests
        WHERE LOWER(status) NOT IN ('completed','cancelled','closed')
        ORDER BY created_at ASC`, requestColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.MaintenanceRequest, error) {
	base := fmt.Sprintf(`SELECT %s FROM maintenance_requests`, requestColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.PropertyID != nil {
		args = append(args, *filter.PropertyID)
		clauses = append(clauses, fmt.Sprintf("property_id=$%d", len(args)))
	}
	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("requester_id=$%d", len(args)))
	}
	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		clauses = append(clauses, fmt.Sprintf("technician_id=$%d", len(args)))
	}
	if len(filter.Stages) > 0 {
		placeholders := make([]string, len(filter.Stages))
		for i, stage := range filter.Stages {
			args = append(args, stage)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("workflow_stage IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, strings.ToLower(string(status)))
			placeholders[i] = fmt.Sprintf("LOWER($%d)", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("LOWER(status) IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]domain.MaintenanceRequest, error) {
	var result []domain.MaintenanceRequest
	for rows.Next() {
		var request domain.MaintenanceRequest
		if err := rows.Scan(
			&request.ID,
			&request.ExternalKey,
			&request.PropertyID,
			&request.RequesterID,
			&request.TechnicianID,
			&request.Title,
			&request.Description,
			&request.Priority,
			&request.WorkflowStage,
			&request.Status,
			&request.SLAAcceptDue,
			&request.SLAArriveDue,
			&request.SLACompleteDue,
			&request.CreatedAt,
			&request.UpdatedAt,
			&request.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
