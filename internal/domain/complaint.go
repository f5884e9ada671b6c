package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusCancelled  ComplaintStatus = "cancelled"
	ComplaintStatusOnHold     ComplaintStatus = "on_hold"
	ComplaintStatusReopened   ComplaintStatus = "reopened"
)

// Valid reports whether the status is one of the enumerated values.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved,
		ComplaintStatusCancelled, ComplaintStatusOnHold, ComplaintStatusReopened:
		return true
	}
	return false
}

// ComplaintPriority enumerates triage urgency.
type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
	ComplaintPriorityUrgent ComplaintPriority = "urgent"
)

// Valid reports whether the priority is one of the enumerated values.
func (p ComplaintPriority) Valid() bool {
	switch p {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh, ComplaintPriorityUrgent:
		return true
	}
	return false
}

// ComplaintCategory classifies the civic issue being reported.
type ComplaintCategory string

const (
	CategoryInfrastructure ComplaintCategory = "infrastructure"
	CategorySanitation     ComplaintCategory = "sanitation"
	CategoryUtilities      ComplaintCategory = "utilities"
	CategoryPublicSafety   ComplaintCategory = "public_safety"
	CategoryEnvironment    ComplaintCategory = "environment"
	CategoryOther          ComplaintCategory = "other"
)

// Valid reports whether the category is one of the enumerated values.
func (c ComplaintCategory) Valid() bool {
	switch c {
	case CategoryInfrastructure, CategorySanitation, CategoryUtilities,
		CategoryPublicSafety, CategoryEnvironment, CategoryOther:
		return true
	}
	return false
}

// Complaint is the aggregate for citizen-reported issues. Fields other than
// Status and Priority never change after creation. SubmittedBy is a weak
// reference: nil for guest submissions, and never required to resolve.
type Complaint struct {
	ID           string
	Title        string
	Category     ComplaintCategory
	Description  string
	State        string
	City         string
	Address      string
	Pincode      string
	ContactPhone *string
	ContactEmail *string
	PhotoPath    *string
	Status       ComplaintStatus
	Priority     ComplaintPriority
	SubmittedBy  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
