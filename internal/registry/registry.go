package registry

import (
	"context"
	"fmt"

	"github.com/eserbisyo/brgy-docs-api/internal/dto"
	"github.com/eserbisyo/brgy-docs-api/internal/models"
	"github.com/eserbisyo/brgy-docs-api/internal/notify"
	appErrors "github.com/eserbisyo/brgy-docs-api/pkg/errors"
)

// Store is the persistence contract a document type plugs into the registry.
// FindByID reports absence with sql.ErrNoRows from the underlying driver.
type Store interface {
	FindByID(ctx context.Context, id string) (models.DocumentRecord, error)
	FindByBarangay(ctx context.Context, barangay string) ([]models.DocumentRecord, error)
	Insert(ctx context.Context, rec models.DocumentRecord) error
	UpdateStatus(ctx context.Context, rec models.DocumentRecord) error
}

// Projection turns a variant record into the common queue summary shape.
type Projection func(models.DocumentRecord) dto.RequestSummary

// Entry bundles everything generic code needs to operate on one document
// type: its store adapter, its listing projection and its notification
// templates. Engine and aggregator never branch on concrete types.
type Entry struct {
	Type      models.RequestType
	Label     string
	Slug      string
	Store     Store
	Project   Projection
	Templates notify.TemplateSet
}

// Registry maps the closed set of request types to their capability entries.
type Registry struct {
	entries map[models.RequestType]*Entry
	bySlug  map[string]*Entry
	order   []models.RequestType
}

// New builds a registry from the provided entries. Entry order is preserved
// for deterministic fan-out.
func New(entries ...Entry) *Registry {
	r := &Registry{
		entries: make(map[models.RequestType]*Entry, len(entries)),
		bySlug:  make(map[string]*Entry, len(entries)),
	}
	for i := range entries {
		e := entries[i]
		r.entries[e.Type] = &e
		r.bySlug[e.Slug] = &e
		r.order = append(r.order, e.Type)
	}
	return r
}

// NewDefault wires the four supported document types against their stores.
// Adding a fifth type means adding one entry here, nothing else.
func NewDefault(clearances, indigencies, businesses, cedulas Store) *Registry {
	return New(
		Entry{
			Type:    models.TypeBarangayClearance,
			Label:   "Barangay Clearance",
			Slug:    "barangay-clearance",
			Store:   clearances,
			Project: projectClearance,
			Templates: notify.TemplateSet{
				CreatedSubject: "New Barangay Clearance request",
				CreatedBody:    "%s filed a barangay clearance request in %s.",
				StatusSubject:  "Barangay Clearance request %s",
				StatusBody:     "Hi %s, your barangay clearance request is now %s.",
			},
		},
		Entry{
			Type:    models.TypeBarangayIndigency,
			Label:   "Certificate of Indigency",
			Slug:    "barangay-indigency",
			Store:   indigencies,
			Project: projectIndigency,
			Templates: notify.TemplateSet{
				CreatedSubject: "New Certificate of Indigency request",
				CreatedBody:    "%s filed a certificate of indigency request in %s.",
				StatusSubject:  "Certificate of Indigency request %s",
				StatusBody:     "Hi %s, your certificate of indigency request is now %s.",
			},
		},
		Entry{
			Type:    models.TypeBusinessClearance,
			Label:   "Business Clearance",
			Slug:    "business-clearance",
			Store:   businesses,
			Project: projectBusiness,
			Templates: notify.TemplateSet{
				CreatedSubject: "New Business Clearance request",
				CreatedBody:    "%s filed a business clearance request in %s.",
				StatusSubject:  "Business Clearance request %s",
				StatusBody:     "Hi %s, your business clearance request is now %s.",
			},
		},
		Entry{
			Type:    models.TypeCedula,
			Label:   "Cedula",
			Slug:    "cedula",
			Store:   cedulas,
			Project: projectCedula,
			Templates: notify.TemplateSet{
				CreatedSubject: "New Cedula request",
				CreatedBody:    "%s filed a cedula request in %s.",
				StatusSubject:  "Cedula request %s",
				StatusBody:     "Hi %s, your cedula request is now %s.",
			},
		},
	)
}

// Resolve returns the entry for the given request type.
func (r *Registry) Resolve(t models.RequestType) (*Entry, error) {
	entry, ok := r.entries[t]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownRequestType, fmt.Sprintf("unknown document request type %q", t))
	}
	return entry, nil
}

// BySlug returns the entry addressed by its route slug.
func (r *Registry) BySlug(slug string) (*Entry, error) {
	entry, ok := r.bySlug[slug]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnknownRequestType, fmt.Sprintf("unknown document request type %q", slug))
	}
	return entry, nil
}

// Entries returns all entries in registration order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.entries[t])
	}
	return out
}

func summaryBase(rec models.DocumentRecord, label string) dto.RequestSummary {
	return dto.RequestSummary{
		ID:           rec.RecordID(),
		Type:         label,
		RequestDate:  rec.RequestedAt(),
		ResidentName: rec.Contact().Name,
		Status:       rec.CurrentStatus().Label(),
	}
}

func projectClearance(rec models.DocumentRecord) dto.RequestSummary {
	summary := summaryBase(rec, "Barangay Clearance")
	if doc, ok := rec.(*models.BarangayClearance); ok {
		summary.Purpose = doc.Purpose
		summary.Email = doc.Email
		summary.ContactNumber = doc.ContactNumber
	}
	return summary
}

func projectIndigency(rec models.DocumentRecord) dto.RequestSummary {
	summary := summaryBase(rec, "Certificate of Indigency")
	if doc, ok := rec.(*models.BarangayIndigency); ok {
		summary.Purpose = doc.Purpose
		summary.ContactNumber = doc.ContactNumber
	}
	return summary
}

func projectBusiness(rec models.DocumentRecord) dto.RequestSummary {
	summary := summaryBase(rec, "Business Clearance")
	summary.Purpose = "Business Permit"
	if doc, ok := rec.(*models.BusinessClearance); ok {
		summary.BusinessName = doc.BusinessName
		summary.BusinessType = doc.BusinessType
		summary.BusinessNature = doc.BusinessNature
		summary.OwnerAddress = doc.OwnerAddress
		summary.ContactNumber = doc.ContactNumber
		summary.Email = doc.Email
	}
	return summary
}

func projectCedula(rec models.DocumentRecord) dto.RequestSummary {
	summary := summaryBase(rec, "Cedula")
	summary.Purpose = "Community Tax Certificate"
	if doc, ok := rec.(*models.Cedula); ok {
		dob := doc.DateOfBirth
		tax := doc.Tax
		summary.DateOfBirth = &dob
		summary.PlaceOfBirth = doc.PlaceOfBirth
		summary.CivilStatus = doc.CivilStatus
		summary.Occupation = doc.Occupation
		summary.Tax = &tax
	}
	return summary
}
