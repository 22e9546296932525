package dto

import "time"

// CreateClearanceRequest is the citizen-facing barangay clearance payload.
type CreateClearanceRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Purpose       string `json:"purpose" validate:"required"`
}

// CreateIndigencyRequest is the certificate of indigency payload.
type CreateIndigencyRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Purpose       string `json:"purpose" validate:"required"`
}

// CreateBusinessClearanceRequest is the business clearance payload.
type CreateBusinessClearanceRequest struct {
	OwnerName      string `json:"ownerName" validate:"required"`
	BusinessName   string `json:"businessName" validate:"required"`
	BusinessType   string `json:"businessType" validate:"required"`
	BusinessNature string `json:"businessNature" validate:"required"`
	OwnerAddress   string `json:"ownerAddress" validate:"required"`
	ContactNumber  string `json:"contactNumber" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
}

// CreateCedulaRequest is the community tax certificate payload.
type CreateCedulaRequest struct {
	Name         string    `json:"name" validate:"required"`
	Address      string    `json:"address" validate:"required"`
	DateOfBirth  time.Time `json:"dateOfBirth" validate:"required"`
	PlaceOfBirth string    `json:"placeOfBirth" validate:"required"`
	CivilStatus  string    `json:"civilStatus" validate:"required"`
	Occupation   string    `json:"occupation" validate:"required"`
	Tax          float64   `json:"tax" validate:"gte=0"`
}

// UpdateStatusRequest carries the staff-facing status transition payload.
// The status string is free-form at the boundary and normalised by the engine.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RequestSummary is the common projection every variant is reconciled into
// for the unified work queue.
type RequestSummary struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	RequestDate   time.Time `json:"requestDate"`
	ResidentName  string    `json:"residentName"`
	Status        string    `json:"status"`
	Purpose       string    `json:"purpose"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Email         string    `json:"email,omitempty"`

	// Business clearance extras.
	BusinessName   string `json:"businessName,omitempty"`
	BusinessType   string `json:"businessType,omitempty"`
	BusinessNature string `json:"businessNature,omitempty"`
	OwnerAddress   string `json:"ownerAddress,omitempty"`

	// Cedula extras.
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	PlaceOfBirth string     `json:"placeOfBirth,omitempty"`
	CivilStatus  string     `json:"civilStatus,omitempty"`
	Occupation   string     `json:"occupation,omitempty"`
	Tax          *float64   `json:"tax,omitempty"`
}

// QueueFilter captures boundary pagination for the aggregated queue. The
// aggregation itself is always full; slicing happens after the merge.
type QueueFilter struct {
	Page     int
	PageSize int
}
