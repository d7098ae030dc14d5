package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mohamedazab224/uberfix-maintenance-service/internal/domain"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/repository"
	"github.com/mohamedazab224/uberfix-maintenance-service/internal/sla"
)

type memoryRequestRepo struct {
	byID  map[string]*domain.MaintenanceRequest
	order []string
	seq   int
}

func newMemoryRequestRepo() *memoryRequestRepo {
	return &memoryRequestRepo{byID: make(map[string]*domain.MaintenanceRequest)}
}

func (r *memoryRequestRepo) Create(ctx context.Context, request *domain.MaintenanceRequest) error {
	r.seq++
	request.ID = "req-" + strconv.Itoa(r.seq)
	request.CreatedAt = time.Now().UTC()
	request.UpdatedAt = request.CreatedAt
	clone := *request
	r.byID[request.ID] = &clone
	r.order = append(r.order, request.ID)
	return nil
}

func (r *memoryRequestRepo) Update(ctx context.Context, request *domain.MaintenanceRequest) error {
	if _, ok := r.byID[request.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *request
	r.byID[request.ID] = &clone
	return nil
}

func (r *memoryRequestRepo) GetByID(ctx context.Context, id string) (*domain.MaintenanceRequest, error) {
	request, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *request
	return &clone, nil
}

func (r *memoryRequestRepo) ListWithFilter(ctx context.Context, filter repository.RequestFilter) ([]domain.MaintenanceRequest, error) {
	var result []domain.MaintenanceRequest
	for _, id := range r.order {
		result = append(result, *r.byID[id])
	}
	return result, nil
}

func (r *memoryRequestRepo) ListInFlight(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	var result []domain.MaintenanceRequest
	for _, id := range r.order {
		request := r.byID[id]
		if request.Status.IsTerminal() {
			continue
		}
		result = append(result, *request)
	}
	return result, nil
}

type memoryViolationRepo struct {
	recorded []repository.ViolationAudit
	seen     map[string]bool
	failNext bool
}

func newMemoryViolationRepo() *memoryViolationRepo {
	return &memoryViolationRepo{seen: make(map[string]bool)}
}

func (r *memoryViolationRepo) Record(ctx context.Context, violation sla.Violation, detectedAt time.Time) (bool, error) {
	if r.failNext {
		r.failNext = false
		return false, fmt.Errorf("violation insert failed")
	}
	key := violation.RequestID + "|" + string(violation.Type) + "|" + violation.DueDate.Format(time.RFC3339Nano)
	if r.seen[key] {
		return false, nil
	}
	r.seen[key] = true
	r.recorded = append(r.recorded, repository.ViolationAudit{
		ID:         "viol-" + strconv.Itoa(len(r.recorded)+1),
		Violation:  violation,
		DetectedAt: detectedAt,
	})
	return true, nil
}

func (r *memoryViolationRepo) ListRecent(ctx context.Context, limit int) ([]repository.ViolationAudit, error) {
	if limit <= 0 || limit > len(r.recorded) {
		limit = len(r.recorded)
	}
	result := make([]repository.ViolationAudit, limit)
	for i := 0; i < limit; i++ {
		result[i] = r.recorded[len(r.recorded)-1-i]
	}
	return result, nil
}

func (r *memoryViolationRepo) ListByRequest(ctx context.Context, requestID string) ([]repository.ViolationAudit, error) {
	var result []repository.ViolationAudit
	for _, audit := range r.recorded {
		if audit.Violation.RequestID == requestID {
			result = append(result, audit)
		}
	}
	return result, nil
}

type memoryNotificationRepo struct {
	created []domain.Notification
}

func (r *memoryNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	notification.ID = "ntf-" + strconv.Itoa(len(r.created)+1)
	notification.CreatedAt = time.Now().UTC()
	r.created = append(r.created, *notification)
	return nil
}

func (r *memoryNotificationRepo) ListByRequest(ctx context.Context, requestID string) ([]domain.Notification, error) {
	var result []domain.Notification
	for _, notification := range r.created {
		if notification.RequestID == requestID {
			result = append(result, notification)
		}
	}
	return result, nil
}
