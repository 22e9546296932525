package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eserbisyo/brgy-docs-api/internal/models"
	"github.com/eserbisyo/brgy-docs-api/internal/notify"
	"github.com/eserbisyo/brgy-docs-api/internal/registry"
	appErrors "github.com/eserbisyo/brgy-docs-api/pkg/errors"
)

type requestDispatcher interface {
	RequestCreated(ctx context.Context, typeLabel string, templates notify.TemplateSet, rec models.DocumentRecord) error
	StatusChanged(ctx context.Context, typeLabel string, templates notify.TemplateSet, rec models.DocumentRecord, status models.Status) error
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// RequestService is the lifecycle engine. It executes create and
// status-transition operations for any document type through its registry
// entry, never branching on concrete record shapes.
type RequestService struct {
	registry   *registry.Registry
	dispatcher requestDispatcher
	audit      auditLogger
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
}

// NewRequestService builds a RequestService.
func NewRequestService(reg *registry.Registry, dispatcher requestDispatcher, audit auditLogger, metrics *MetricsService, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		registry:   reg,
		dispatcher: dispatcher,
		audit:      audit,
		metrics:    metrics,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a new document request scoped to the actor's barangay and
// notifies the barangay staff. Notification failure never fails the create.
func (s *RequestService) Create(ctx context.Context, requestType models.RequestType, rec models.DocumentRecord, actorScope string) (models.DocumentRecord, error) {
	entry, err := s.registry.Resolve(requestType)
	if err != nil {
		return nil, err
	}
	if actorScope == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "actor barangay scope is required")
	}

	rec.BindScope(actorScope)

	if err := entry.Store.Insert(ctx, rec); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, fmt.Sprintf("failed to save %s request", entry.Label))
	}

	s.metrics.RecordLifecycleOperation(string(entry.Type), "create")
	s.logger.Info("document request created",
		zap.String("request_type", string(entry.Type)),
		zap.String("request_id", rec.RecordID()),
		zap.String("barangay", actorScope),
	)

	if err := s.dispatcher.RequestCreated(ctx, entry.Label, entry.Templates, rec); err != nil {
		s.metrics.RecordNotification(string(notify.KindCreated), false)
		s.logger.Warn("created notification failed",
			zap.String("request_id", rec.RecordID()),
			zap.Error(err),
		)
	} else {
		s.metrics.RecordNotification(string(notify.KindCreated), true)
	}

	s.emitCreateAudit(ctx, entry, rec)

	return rec, nil
}

// UpdateStatus normalises the raw status, applies it to the stored record and
// notifies the requester. The engine accepts any of the four canonical
// statuses regardless of the current one; transition legality is owned by
// the presentation layer.
func (s *RequestService) UpdateStatus(ctx context.Context, requestType models.RequestType, id, rawStatus string) (models.DocumentRecord, error) {
	entry, err := s.registry.Resolve(requestType)
	if err != nil {
		return nil, err
	}

	status, err := models.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	rec, err := entry.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", entry.Label))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, fmt.Sprintf("failed to load %s request", entry.Label))
	}

	previous := rec.CurrentStatus()
	rec.ApplyStatus(status, s.now())

	if err := entry.Store.UpdateStatus(ctx, rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", entry.Label))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, fmt.Sprintf("failed to update %s request", entry.Label))
	}

	s.metrics.RecordLifecycleOperation(string(entry.Type), "updateStatus")
	s.logger.Info("document request status updated",
		zap.String("request_type", string(entry.Type)),
		zap.String("request_id", rec.RecordID()),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	if err := s.dispatcher.StatusChanged(ctx, entry.Label, entry.Templates, rec, status); err != nil {
		s.metrics.RecordNotification(string(notify.KindStatusChanged), false)
		s.logger.Warn("status notification failed",
			zap.String("request_id", rec.RecordID()),
			zap.Error(err),
		)
	} else {
		s.metrics.RecordNotification(string(notify.KindStatusChanged), true)
	}

	s.emitStatusAudit(ctx, entry, rec, previous, status)

	return rec, nil
}

func (s *RequestService) emitCreateAudit(ctx context.Context, entry *registry.Entry, rec models.DocumentRecord) {
	if s.audit == nil {
		return
	}
	newValues, _ := json.Marshal(map[string]interface{}{
		"status":   rec.CurrentStatus(),
		"barangay": rec.Scope(),
	})
	id := rec.RecordID()
	log := &models.AuditLog{
		Action:     models.AuditActionRequestCreate,
		Resource:   entry.Slug,
		ResourceID: &id,
		NewValues:  newValues,
		IPAddress:  "system",
		UserAgent:  "request-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record create audit", zap.Error(err))
	}
}

func (s *RequestService) emitStatusAudit(ctx context.Context, entry *registry.Entry, rec models.DocumentRecord, previous, next models.Status) {
	if s.audit == nil {
		return
	}
	oldValues, _ := json.Marshal(map[string]interface{}{"status": previous})
	newValues, _ := json.Marshal(map[string]interface{}{"status": next})
	id := rec.RecordID()
	log := &models.AuditLog{
		Action:     models.AuditActionStatusUpdate,
		Resource:   entry.Slug,
		ResourceID: &id,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  "system",
		UserAgent:  "request-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record status audit", zap.Error(err))
	}
}
