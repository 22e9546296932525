package models

import (
	"strings"
	"time"

	appErrors "github.com/eserbisyo/brgy-docs-api/pkg/errors"
)

// Status is the canonical lifecycle state of a document request.
// The persisted form is always lowercase.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// ParseStatus canonicalises free-form status input. Matching is
// case-insensitive; anything outside the four lifecycle states fails.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", appErrors.Clone(appErrors.ErrInvalidStatus, "status must be one of pending, approved, completed, rejected")
	}
}

// Label returns the capitalised presentation form of the status.
func (s Status) Label() string {
	if s == "" {
		return "Pending"
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// RequestType identifies one of the four fixed document categories.
type RequestType string

const (
	TypeBarangayClearance RequestType = "BarangayClearance"
	TypeBarangayIndigency RequestType = "BarangayIndigency"
	TypeBusinessClearance RequestType = "BusinessClearance"
	TypeCedula            RequestType = "Cedula"
)

// RequestBase carries the lifecycle fields shared by every document request
// variant. Variants embed it and the engine only ever touches these fields.
type RequestBase struct {
	ID             string     `db:"id" json:"id"`
	Barangay       string     `db:"barangay" json:"barangay"`
	Status         Status     `db:"status" json:"status"`
	IsVerified     bool       `db:"is_verified" json:"isVerified"`
	DateOfIssuance *time.Time `db:"date_of_issuance" json:"dateOfIssuance,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// RecordID returns the store-assigned identifier.
func (b *RequestBase) RecordID() string { return b.ID }

// Scope returns the barangay the request belongs to.
func (b *RequestBase) Scope() string { return b.Barangay }

// CurrentStatus returns the canonical lifecycle state.
func (b *RequestBase) CurrentStatus() Status { return b.Status }

// RequestedAt returns the creation timestamp used as the queue sort key.
func (b *RequestBase) RequestedAt() time.Time { return b.CreatedAt }

// BindScope stamps the tenant scope and lifecycle defaults ahead of the first
// persist. The scope comes from the authenticated actor, never the payload.
func (b *RequestBase) BindScope(barangay string) {
	b.Barangay = barangay
	b.Status = StatusPending
	b.IsVerified = false
	b.DateOfIssuance = nil
}

// ApplyStatus is the single status-write path. isVerified is strictly derived
// from the new status and dateOfIssuance is stamped on every transition, so
// the invariant cannot drift.
func (b *RequestBase) ApplyStatus(next Status, at time.Time) {
	b.Status = next
	b.IsVerified = next == StatusApproved
	issued := at
	b.DateOfIssuance = &issued
	b.UpdatedAt = at
}

// ContactPoint is the requester's reachable channel for status notifications.
type ContactPoint struct {
	Name   string
	Email  string
	Number string
}

// DocumentRecord is the workflow contract every request variant satisfies.
// The lifecycle engine and aggregator operate exclusively through it.
type DocumentRecord interface {
	RecordID() string
	Scope() string
	CurrentStatus() Status
	RequestedAt() time.Time
	BindScope(barangay string)
	ApplyStatus(next Status, at time.Time)
	Contact() ContactPoint
}

// BarangayClearance is a clearance certifying residency and good standing.
type BarangayClearance struct {
	RequestBase
	Name          string `db:"name" json:"name"`
	Email         string `db:"email" json:"email,omitempty"`
	ContactNumber string `db:"contact_number" json:"contactNumber"`
	Address       string `db:"address" json:"address"`
	Purpose       string `db:"purpose" json:"purpose"`
}

func (r *BarangayClearance) Contact() ContactPoint {
	return ContactPoint{Name: r.Name, Email: r.Email, Number: r.ContactNumber}
}

// BarangayIndigency is a certificate of indigency request.
type BarangayIndigency struct {
	RequestBase
	Name          string `db:"name" json:"name"`
	ContactNumber string `db:"contact_number" json:"contactNumber"`
	Address       string `db:"address" json:"address"`
	Purpose       string `db:"purpose" json:"purpose"`
}

func (r *BarangayIndigency) Contact() ContactPoint {
	return ContactPoint{Name: r.Name, Number: r.ContactNumber}
}

// BusinessClearance is a clearance for operating a business in the barangay.
type BusinessClearance struct {
	RequestBase
	OwnerName      string `db:"owner_name" json:"ownerName"`
	BusinessName   string `db:"business_name" json:"businessName"`
	BusinessType   string `db:"business_type" json:"businessType"`
	BusinessNature string `db:"business_nature" json:"businessNature"`
	OwnerAddress   string `db:"owner_address" json:"ownerAddress"`
	ContactNumber  string `db:"contact_number" json:"contactNumber"`
	Email          string `db:"email" json:"email,omitempty"`
}

func (r *BusinessClearance) Contact() ContactPoint {
	return ContactPoint{Name: r.OwnerName, Email: r.Email, Number: r.ContactNumber}
}

// Cedula is a community tax certificate request.
type Cedula struct {
	RequestBase
	Name         string    `db:"name" json:"name"`
	Address      string    `db:"address" json:"address"`
	DateOfBirth  time.Time `db:"date_of_birth" json:"dateOfBirth"`
	PlaceOfBirth string    `db:"place_of_birth" json:"placeOfBirth"`
	CivilStatus  string    `db:"civil_status" json:"civilStatus"`
	Occupation   string    `db:"occupation" json:"occupation"`
	Tax          float64   `db:"tax" json:"tax"`
}

func (r *Cedula) Contact() ContactPoint {
	return ContactPoint{Name: r.Name}
}
