package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintResponse is the wire shape for a single complaint.
type ComplaintResponse struct {
	ID           string                   `json:"id"`
	Title        string                   `json:"title"`
	Category     domain.ComplaintCategory `json:"category"`
	Description  string                   `json:"description"`
	State        string                   `json:"state"`
	City         string                   `json:"city"`
	Address      string                   `json:"address"`
	Pincode      string                   `json:"pincode"`
	ContactPhone *string                  `json:"contact_phone,omitempty"`
	ContactEmail *string                  `json:"contact_email,omitempty"`
	PhotoPath    *string                  `json:"photo_path,omitempty"`
	Status       domain.ComplaintStatus   `json:"status"`
	Priority     domain.ComplaintPriority `json:"priority"`
	SubmittedBy  *string                  `json:"submitted_by,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// SetStatusRequest payload for triage status updates.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// SetPriorityRequest payload for triage priority updates.
type SetPriorityRequest struct {
	Priority string `json:"priority"`
}

// FromComplaint maps a domain complaint onto the response shape.
func FromComplaint(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:           complaint.ID,
		Title:        complaint.Title,
		Category:     complaint.Category,
		Description:  complaint.Description,
		State:        complaint.State,
		City:         complaint.City,
		Address:      complaint.Address,
		Pincode:      complaint.Pincode,
		ContactPhone: complaint.ContactPhone,
		ContactEmail: complaint.ContactEmail,
		PhotoPath:    complaint.PhotoPath,
		Status:       complaint.Status,
		Priority:     complaint.Priority,
		SubmittedBy:  complaint.SubmittedBy,
		CreatedAt:    complaint.CreatedAt,
		UpdatedAt:    complaint.UpdatedAt,
	}
}

// FromComplaints maps a slice of domain complaints.
func FromComplaints(complaints []domain.Complaint) []ComplaintResponse {
	items := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, FromComplaint(&complaints[i]))
	}
	return items
}
