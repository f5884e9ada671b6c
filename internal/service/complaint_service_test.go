package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

type stubComplaintRepo struct {
	complaints  map[string]*domain.Complaint
	createCalls int
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{complaints: map[string]*domain.Complaint{}}
}

func (r *stubComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.createCalls++
	complaint.ID = "c-" + strconv.Itoa(r.createCalls)
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	stored := *complaint
	r.complaints[complaint.ID] = &stored
	return nil
}

func (r *stubComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *complaint
	return &copied, nil
}

func (r *stubComplaintRepo) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	complaint.Status = status
	complaint.UpdatedAt = time.Now()
	copied := *complaint
	return &copied, nil
}

func (r *stubComplaintRepo) UpdatePriority(_ context.Context, id string, priority domain.ComplaintPriority) (*domain.Complaint, error) {
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	complaint.Priority = priority
	complaint.UpdatedAt = time.Now()
	copied := *complaint
	return &copied, nil
}

func (r *stubComplaintRepo) ListBySubmitter(_ context.Context, userID string, _, _ int) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for _, complaint := range r.complaints {
		if complaint.SubmittedBy != nil && *complaint.SubmittedBy == userID {
			result = append(result, *complaint)
		}
	}
	return result, nil
}

func (r *stubComplaintRepo) ListWithFilter(_ context.Context, _ repository.ComplaintFilter) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for _, complaint := range r.complaints {
		result = append(result, *complaint)
	}
	return result, nil
}

type stubPhotoStore struct {
	saveCalls int
	failWith  error
}

func (s *stubPhotoStore) Save(_ context.Context, originalName string, _ io.Reader) (string, error) {
	s.saveCalls++
	if s.failWith != nil {
		return "", s.failWith
	}
	return "/uploads/complaints/" + originalName, nil
}

func validSubmitInput() SubmitInput {
	return SubmitInput{
		Title:       "Pothole on Main St",
		Category:    "infrastructure",
		Description: "A large pothole has formed near the school crossing.",
		State:       "Maharashtra",
		City:        "Pune",
		Address:     "MG Road",
		Pincode:     "411001",
	}
}

func newComplaintService(repo *stubComplaintRepo, store *stubPhotoStore, dispatcher events.Dispatcher) *ComplaintService {
	return NewComplaintService(ComplaintDependencies{
		ComplaintRepo: repo,
		PhotoStore:    store,
		Dispatcher:    dispatcher,
		MaxPhotoSize:  5 << 20,
	})
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a DomainError", err)
	}
	return de.Code
}

func TestSubmitGuestComplaint(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, &stubPhotoStore{}, nil)

	complaint, err := svc.Submit(context.Background(), validSubmitInput(), nil, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if complaint.ID == "" {
		t.Error("expected generated id")
	}
	if complaint.Status != domain.ComplaintStatusPending {
		t.Errorf("status = %q, want pending", complaint.Status)
	}
	if complaint.Priority != domain.ComplaintPriorityMedium {
		t.Errorf("priority = %q, want medium", complaint.Priority)
	}
	if complaint.SubmittedBy != nil {
		t.Errorf("submittedBy = %v, want nil for guest", *complaint.SubmittedBy)
	}
}

func TestSubmitAttributesAuthenticatedUser(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, &stubPhotoStore{}, nil)

	identity := &domain.Identity{SubjectID: "user-42"}
	complaint, err := svc.Submit(context.Background(), validSubmitInput(), nil, identity)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if complaint.SubmittedBy == nil || *complaint.SubmittedBy != "user-42" {
		t.Errorf("submittedBy = %v, want user-42", complaint.SubmittedBy)
	}
}

func TestSubmitMissingFields(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, &stubPhotoStore{}, nil)

	input := validSubmitInput()
	input.Title = "   "
	input.City = ""

	_, err := svc.Submit(context.Background(), input, nil, nil)
	if code := domainCode(t, err); code != "MISSING_FIELDS" {
		t.Errorf("code = %q, want MISSING_FIELDS", code)
	}
	if repo.createCalls != 0 {
		t.Error("expected no persistence attempt")
	}
}

func TestSubmitUnknownCategory(t *testing.T) {
	svc := newComplaintService(newStubComplaintRepo(), &stubPhotoStore{}, nil)

	input := validSubmitInput()
	input.Category = "roadworks"

	_, err := svc.Submit(context.Background(), input, nil, nil)
	if code := domainCode(t, err); code != "INVALID_VALUE" {
		t.Errorf("code = %q, want INVALID_VALUE", code)
	}
}

func TestSubmitShortPincode(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, &stubPhotoStore{}, nil)

	input := validSubmitInput()
	input.Pincode = "1234"

	_, err := svc.Submit(context.Background(), input, nil, nil)
	if code := domainCode(t, err); code != "INVALID_VALUE" {
		t.Errorf("code = %q, want INVALID_VALUE", code)
	}
	if repo.createCalls != 0 {
		t.Error("expected validation before any persistence attempt")
	}
}

func TestSubmitRejectsNonImagePhoto(t *testing.T) {
	repo := newStubComplaintRepo()
	store := &stubPhotoStore{}
	svc := newComplaintService(repo, store, nil)

	photo := &PhotoUpload{
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Content:     []byte("%PDF-"),
	}
	_, err := svc.Submit(context.Background(), validSubmitInput(), photo, nil)
	if code := domainCode(t, err); code != "UNSUPPORTED_MEDIA_TYPE" {
		t.Errorf("code = %q, want UNSUPPORTED_MEDIA_TYPE", code)
	}
	if store.saveCalls != 0 || repo.createCalls != 0 {
		t.Error("expected neither photo nor complaint to be persisted")
	}
}

func TestSubmitRejectsOversizePhoto(t *testing.T) {
	store := &stubPhotoStore{}
	svc := newComplaintService(newStubComplaintRepo(), store, nil)

	photo := &PhotoUpload{
		FileName:    "huge.jpg",
		ContentType: "image/jpeg",
		Size:        (5 << 20) + 1,
	}
	_, err := svc.Submit(context.Background(), validSubmitInput(), photo, nil)
	if code := domainCode(t, err); code != "PAYLOAD_TOO_LARGE" {
		t.Errorf("code = %q, want PAYLOAD_TOO_LARGE", code)
	}
	if store.saveCalls != 0 {
		t.Error("expected no store write")
	}
}

func TestSubmitStoresPhotoReference(t *testing.T) {
	store := &stubPhotoStore{}
	svc := newComplaintService(newStubComplaintRepo(), store, nil)

	photo := &PhotoUpload{
		FileName:    "pothole.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Content:     []byte("jpeg-bytes"),
	}
	complaint, err := svc.Submit(context.Background(), validSubmitInput(), photo, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if complaint.PhotoPath == nil || *complaint.PhotoPath == "" {
		t.Error("expected photo reference on complaint")
	}
	if store.saveCalls != 1 {
		t.Errorf("saveCalls = %d, want 1", store.saveCalls)
	}
}

func TestSetStatusInvalidValueLeavesComplaintUnchanged(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, &stubPhotoStore{}, nil)

	created, err := svc.Submit(context.Background(), validSubmitInput(), nil, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = svc.SetStatus(context.Background(), created.ID, domain.ComplaintStatus("archived"), nil)
	if code := domainCode(t, err); code != "INVALID_VALUE" {
		t.Errorf("code = %q, want INVALID_VALUE", code)
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.Status != domain.ComplaintStatusPending {
		t.Errorf("stored status = %q, want pending", stored.Status)
	}
}

func TestSetStatusUnknownComplaint(t *testing.T) {
	svc := newComplaintService(newStubComplaintRepo(), &stubPhotoStore{}, nil)

	_, err := svc.SetStatus(context.Background(), "missing", domain.ComplaintStatusResolved, nil)
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", code)
	}
}

func TestSetStatusAppliesAnyEnumeratedValue(t *testing.T) {
	repo := newStubComplaintRepo()
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventComplaintStatusChanged, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	svc := newComplaintService(repo, &stubPhotoStore{}, dispatcher)

	created, err := svc.Submit(context.Background(), validSubmitInput(), nil, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// no restricted transition graph: resolved can move straight back to
	// reopened, then to cancelled
	for _, status := range []domain.ComplaintStatus{
		domain.ComplaintStatusResolved,
		domain.ComplaintStatusReopened,
		domain.ComplaintStatusCancelled,
	} {
		updated, err := svc.SetStatus(context.Background(), created.ID, status, &domain.Identity{SubjectID: "admin", IsAdmin: true})
		if err != nil {
			t.Fatalf("SetStatus(%q): %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %q, want %q", updated.Status, status)
		}
	}
	if len(published) != 3 {
		t.Errorf("published %d status events, want 3", len(published))
	}
}

func TestSetPriority(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, &stubPhotoStore{}, nil)

	created, err := svc.Submit(context.Background(), validSubmitInput(), nil, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	updated, err := svc.SetPriority(context.Background(), created.ID, domain.ComplaintPriorityUrgent, nil)
	if err != nil {
		t.Fatalf("SetPriority: %v", err)
	}
	if updated.Priority != domain.ComplaintPriorityUrgent {
		t.Errorf("priority = %q, want urgent", updated.Priority)
	}

	_, err = svc.SetPriority(context.Background(), created.ID, domain.ComplaintPriority("critical"), nil)
	if code := domainCode(t, err); code != "INVALID_VALUE" {
		t.Errorf("code = %q, want INVALID_VALUE", code)
	}
}
