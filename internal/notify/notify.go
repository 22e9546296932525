package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eserbisyo/brgy-docs-api/internal/models"
)

// Kind discriminates the two lifecycle events that produce notifications.
type Kind string

const (
	KindCreated       Kind = "created"
	KindStatusChanged Kind = "statusChanged"
)

// Message is the transport-agnostic notification payload handed to a Sender.
type Message struct {
	Kind        Kind      `json:"kind"`
	RequestID   string    `json:"requestId"`
	RequestType string    `json:"requestType"`
	Barangay    string    `json:"barangay"`
	Recipients  []string  `json:"recipients"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Sender delivers a message over some channel (email, SMS, push). Delivery
// retries and deduplication are the sender's own concern.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// TemplateSet holds the per-document-type notification texts. Body strings
// are fmt templates; Created receives (requester, barangay) and Status
// receives (requester, status label).
type TemplateSet struct {
	CreatedSubject string
	CreatedBody    string
	StatusSubject  string
	StatusBody     string
}

// StaffDirectory resolves the staff distribution list for a barangay.
type StaffDirectory interface {
	ListStaffEmails(ctx context.Context, barangay string) ([]string, error)
}

// Dispatcher builds and sends lifecycle notifications. Callers treat
// dispatch as best-effort; errors returned here are logged and swallowed by
// the lifecycle engine so a committed write is never reported as failed.
type Dispatcher struct {
	sender Sender
	staff  StaffDirectory
	logger *zap.Logger
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(sender Sender, staff StaffDirectory, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{sender: sender, staff: staff, logger: logger}
}

// RequestCreated notifies the barangay staff about a newly submitted request.
func (d *Dispatcher) RequestCreated(ctx context.Context, typeLabel string, templates TemplateSet, rec models.DocumentRecord) error {
	if d.sender == nil {
		return nil
	}

	recipients, err := d.staffRecipients(ctx, rec.Scope())
	if err != nil {
		return fmt.Errorf("resolve staff recipients: %w", err)
	}

	contact := rec.Contact()
	msg := Message{
		Kind:        KindCreated,
		RequestID:   rec.RecordID(),
		RequestType: typeLabel,
		Barangay:    rec.Scope(),
		Recipients:  recipients,
		Subject:     templates.CreatedSubject,
		Body:        fmt.Sprintf(templates.CreatedBody, contact.Name, rec.Scope()),
		CreatedAt:   time.Now().UTC(),
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send created notification: %w", err)
	}

	d.logger.Debug("created notification dispatched",
		zap.String("request_id", rec.RecordID()),
		zap.String("request_type", typeLabel),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

// StatusChanged notifies the original requester about the new status.
func (d *Dispatcher) StatusChanged(ctx context.Context, typeLabel string, templates TemplateSet, rec models.DocumentRecord, status models.Status) error {
	if d.sender == nil {
		return nil
	}

	contact := rec.Contact()
	recipients := make([]string, 0, 2)
	if contact.Email != "" {
		recipients = append(recipients, contact.Email)
	}
	if contact.Number != "" {
		recipients = append(recipients, contact.Number)
	}

	msg := Message{
		Kind:        KindStatusChanged,
		RequestID:   rec.RecordID(),
		RequestType: typeLabel,
		Barangay:    rec.Scope(),
		Recipients:  recipients,
		Subject:     fmt.Sprintf(templates.StatusSubject, status.Label()),
		Body:        fmt.Sprintf(templates.StatusBody, contact.Name, status.Label()),
		CreatedAt:   time.Now().UTC(),
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send status notification: %w", err)
	}

	d.logger.Debug("status notification dispatched",
		zap.String("request_id", rec.RecordID()),
		zap.String("request_type", typeLabel),
		zap.String("status", string(status)),
	)
	return nil
}

func (d *Dispatcher) staffRecipients(ctx context.Context, barangay string) ([]string, error) {
	if d.staff == nil {
		return nil, nil
	}
	return d.staff.ListStaffEmails(ctx, barangay)
}
