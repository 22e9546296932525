package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eserbisyo/brgy-docs-api/internal/models"
)

type captureSender struct {
	messages []Message
	err      error
}

func (s *captureSender) Send(ctx context.Context, msg Message) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

type staticStaff struct {
	emails   []string
	err      error
	barangay string
}

func (s *staticStaff) ListStaffEmails(ctx context.Context, barangay string) ([]string, error) {
	s.barangay = barangay
	if s.err != nil {
		return nil, s.err
	}
	return s.emails, nil
}

func clearanceTemplates() TemplateSet {
	return TemplateSet{
		CreatedSubject: "New Barangay Clearance request",
		CreatedBody:    "%s filed a barangay clearance request in %s.",
		StatusSubject:  "Barangay Clearance request %s",
		StatusBody:     "Hi %s, your barangay clearance request is now %s.",
	}
}

func sampleClearance() *models.BarangayClearance {
	rec := &models.BarangayClearance{
		Name:          "Juan Dela Cruz",
		Email:         "juan@example.com",
		ContactNumber: "09171234567",
	}
	rec.ID = "c1"
	rec.Barangay = "San Isidro"
	return rec
}

func TestRequestCreatedGoesToStaff(t *testing.T) {
	sender := &captureSender{}
	staff := &staticStaff{emails: []string{"secretary@brgy.gov.ph", "captain@brgy.gov.ph"}}
	d := NewDispatcher(sender, staff, zap.NewNop())

	err := d.RequestCreated(context.Background(), "Barangay Clearance", clearanceTemplates(), sampleClearance())
	require.NoError(t, err)
	assert.Equal(t, "San Isidro", staff.barangay)
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, KindCreated, msg.Kind)
	assert.Equal(t, "c1", msg.RequestID)
	assert.Equal(t, []string{"secretary@brgy.gov.ph", "captain@brgy.gov.ph"}, msg.Recipients)
	assert.Equal(t, "New Barangay Clearance request", msg.Subject)
	assert.Equal(t, "Juan Dela Cruz filed a barangay clearance request in San Isidro.", msg.Body)
}

func TestRequestCreatedStaffLookupFailure(t *testing.T) {
	sender := &captureSender{}
	staff := &staticStaff{err: errors.New("db down")}
	d := NewDispatcher(sender, staff, zap.NewNop())

	err := d.RequestCreated(context.Background(), "Barangay Clearance", clearanceTemplates(), sampleClearance())
	require.Error(t, err)
	assert.Empty(t, sender.messages)
}

func TestStatusChangedGoesToRequester(t *testing.T) {
	sender := &captureSender{}
	d := NewDispatcher(sender, &staticStaff{}, zap.NewNop())

	err := d.StatusChanged(context.Background(), "Barangay Clearance", clearanceTemplates(), sampleClearance(), models.StatusApproved)
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, KindStatusChanged, msg.Kind)
	assert.Equal(t, []string{"juan@example.com", "09171234567"}, msg.Recipients)
	assert.Equal(t, "Barangay Clearance request Approved", msg.Subject)
	assert.Equal(t, "Hi Juan Dela Cruz, your barangay clearance request is now Approved.", msg.Body)
}

func TestStatusChangedContactWithoutEmail(t *testing.T) {
	sender := &captureSender{}
	d := NewDispatcher(sender, &staticStaff{}, zap.NewNop())

	rec := &models.Cedula{Name: "Ana Reyes"}
	rec.ID = "d1"
	rec.Barangay = "Poblacion"
	templates := TemplateSet{
		StatusSubject: "Cedula request %s",
		StatusBody:    "Hi %s, your cedula request is now %s.",
	}

	err := d.StatusChanged(context.Background(), "Cedula", templates, rec, models.StatusRejected)
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)
	assert.Empty(t, sender.messages[0].Recipients)
	assert.Equal(t, "Hi Ana Reyes, your cedula request is now Rejected.", sender.messages[0].Body)
}

func TestDispatcherPropagatesSenderFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("stream unavailable")}
	d := NewDispatcher(sender, &staticStaff{}, zap.NewNop())

	err := d.StatusChanged(context.Background(), "Barangay Clearance", clearanceTemplates(), sampleClearance(), models.StatusCompleted)
	require.Error(t, err)
}

func TestNilSenderIsNoop(t *testing.T) {
	d := NewDispatcher(nil, &staticStaff{}, zap.NewNop())

	err := d.RequestCreated(context.Background(), "Barangay Clearance", clearanceTemplates(), sampleClearance())
	require.NoError(t, err)
	err = d.StatusChanged(context.Background(), "Barangay Clearance", clearanceTemplates(), sampleClearance(), models.StatusApproved)
	require.NoError(t, err)
}
