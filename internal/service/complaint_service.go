package service

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/storage"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

var pincodeRE = regexp.MustCompile(`^[0-9]{6}$`)

// ComplaintService coordinates complaint submission and triage workflows.
type ComplaintService struct {
	complaints   repository.ComplaintRepository
	photos       storage.Store
	dispatcher   events.Dispatcher
	maxPhotoSize int64
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	PhotoStore    storage.Store
	Dispatcher    events.Dispatcher
	MaxPhotoSize  int64
}

// SubmitInput describes complaint submission payload.
type SubmitInput struct {
	Title        string
	Category     string
	Description  string
	State        string
	City         string
	Address      string
	Pincode      string
	ContactPhone string
	ContactEmail string
}

// PhotoUpload carries an optional photo attachment. Content is held in
// memory only up to the configured ceiling; the gate rejects larger bodies
// before any persistence happens.
type PhotoUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

// ComplaintListFilter describes triage listing filters.
type ComplaintListFilter struct {
	Statuses   []domain.ComplaintStatus
	Priorities []domain.ComplaintPriority
	Limit      int
	Offset     int
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	maxSize := deps.MaxPhotoSize
	if maxSize <= 0 {
		maxSize = 5 << 20
	}
	return &ComplaintService{
		complaints:   deps.ComplaintRepo,
		photos:       deps.PhotoStore,
		dispatcher:   deps.Dispatcher,
		maxPhotoSize: maxSize,
	}
}

// Submit validates and persists a new complaint. identity is nil for guest
// submissions; a guest complaint carries no submitter reference.
func (s *ComplaintService) Submit(ctx context.Context, input SubmitInput, photo *PhotoUpload, identity *domain.Identity) (*domain.Complaint, error) {
	missing := missingComplaintFields(input)
	if len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing)
	}

	category := domain.ComplaintCategory(strings.TrimSpace(input.Category))
	if !category.Valid() {
		return nil, apperrors.NewInvalidValue("category", "unknown complaint category")
	}
	if !pincodeRE.MatchString(input.Pincode) {
		return nil, apperrors.NewInvalidValue("pincode", "pincode must be exactly 6 digits")
	}

	var photoPath *string
	if photo != nil {
		if !strings.HasPrefix(photo.ContentType, "image/") {
			return nil, apperrors.NewUnsupportedMediaType("only image uploads are allowed")
		}
		if photo.Size > s.maxPhotoSize {
			return nil, apperrors.NewPayloadTooLarge(s.maxPhotoSize)
		}
		path, err := s.photos.Save(ctx, photo.FileName, bytes.NewReader(photo.Content))
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		photoPath = &path
	}

	complaint := &domain.Complaint{
		Title:       strings.TrimSpace(input.Title),
		Category:    category,
		Description: strings.TrimSpace(input.Description),
		State:       strings.TrimSpace(input.State),
		City:        strings.TrimSpace(input.City),
		Address:     strings.TrimSpace(input.Address),
		Pincode:     input.Pincode,
		PhotoPath:   photoPath,
		Status:      domain.ComplaintStatusPending,
		Priority:    domain.ComplaintPriorityMedium,
	}
	if phone := strings.TrimSpace(input.ContactPhone); phone != "" {
		complaint.ContactPhone = &phone
	}
	if email := strings.TrimSpace(input.ContactEmail); email != "" {
		complaint.ContactEmail = &email
	}
	if identity != nil && identity.SubjectID != "" && identity.SubjectID != domain.AdminSubjectID {
		subject := identity.SubjectID
		complaint.SubmittedBy = &subject
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       actorFromIdentity(identity),
		Payload: events.ComplaintCreatedPayload{
			Title:    complaint.Title,
			Category: complaint.Category,
			City:     complaint.City,
			HasPhoto: photoPath != nil,
		},
	})
	return complaint, nil
}

// SetStatus moves a complaint to any enumerated status. Authorization is the
// admin guard's job; this validates the value and applies it.
func (s *ComplaintService) SetStatus(ctx context.Context, complaintID string, status domain.ComplaintStatus, actor *domain.Identity) (*domain.Complaint, error) {
	if !status.Valid() {
		return nil, apperrors.NewInvalidValue("status", "unknown complaint status")
	}
	current, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}

	updated, err := s.complaints.UpdateStatus(ctx, complaintID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: updated.ID,
		Actor:       actorFromIdentity(actor),
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// SetPriority is the symmetric setter over the priority enumeration.
func (s *ComplaintService) SetPriority(ctx context.Context, complaintID string, priority domain.ComplaintPriority, actor *domain.Identity) (*domain.Complaint, error) {
	if !priority.Valid() {
		return nil, apperrors.NewInvalidValue("priority", "unknown complaint priority")
	}
	current, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}

	updated, err := s.complaints.UpdatePriority(ctx, complaintID, priority)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintPriorityChanged,
		ComplaintID: updated.ID,
		Actor:       actorFromIdentity(actor),
		Payload: events.ComplaintPriorityChangedPayload{
			OldPriority: current.Priority,
			NewPriority: updated.Priority,
		},
	})
	return updated, nil
}

// ListForSubmitter returns the caller's own complaints, newest first.
func (s *ComplaintService) ListForSubmitter(ctx context.Context, userID string, limit, offset int) ([]domain.Complaint, error) {
	return s.complaints.ListBySubmitter(ctx, userID, limit, offset)
}

// ListAll returns complaints across all submitters for triage.
func (s *ComplaintService) ListAll(ctx context.Context, filter ComplaintListFilter) ([]domain.Complaint, error) {
	return s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// GetByID fetches a single complaint for triage detail views.
func (s *ComplaintService) GetByID(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", nil)
		}
		return nil, err
	}
	return complaint, nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFromIdentity(identity *domain.Identity) events.Actor {
	if identity == nil {
		return events.Actor{}
	}
	subject := identity.SubjectID
	return events.Actor{SubjectID: &subject, IsAdmin: identity.IsAdmin}
}

func missingComplaintFields(input SubmitInput) []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"category", input.Category},
		{"description", input.Description},
		{"state", input.State},
		{"city", input.City},
		{"address", input.Address},
		{"pincode", input.Pincode},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}
