package events

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated         EventType = "complaint_created"
	EventComplaintStatusChanged   EventType = "complaint_status_changed"
	EventComplaintPriorityChanged EventType = "complaint_priority_changed"
)

// Actor identifies who triggered an event. SubjectID is nil for guest
// submissions.
type Actor struct {
	SubjectID *string `json:"subject_id,omitempty"`
	IsAdmin   bool    `json:"is_admin,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	Title    string                   `json:"title"`
	Category domain.ComplaintCategory `json:"category"`
	City     string                   `json:"city"`
	HasPhoto bool                     `json:"has_photo"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}

// ComplaintPriorityChangedPayload payload.
type ComplaintPriorityChangedPayload struct {
	OldPriority domain.ComplaintPriority `json:"old_priority"`
	NewPriority domain.ComplaintPriority `json:"new_priority"`
}
