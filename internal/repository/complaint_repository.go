package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintFilter captures triage listing parameters.
type ComplaintFilter struct {
	SubmittedBy *string
	Statuses    []domain.ComplaintStatus
	Priorities  []domain.ComplaintPriority
	Limit       int
	Offset      int
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	// UpdateStatus and UpdatePriority persist a single lifecycle field and
	// refresh updated_at atomically in one statement.
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error)
	UpdatePriority(ctx context.Context, id string, priority domain.ComplaintPriority) (*domain.Complaint, error)
	ListBySubmitter(ctx context.Context, userID string, limit, offset int) ([]domain.Complaint, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
}

const complaintColumns = `id, title, category, description, state, city, address, pincode,
               contact_phone, contact_email, photo_path, status, priority, submitted_by, created_at, updated_at`

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (title, category, description, state, city, address, pincode,
                                contact_phone, contact_email, photo_path, status, priority, submitted_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.Title,
		complaint.Category,
		complaint.Description,
		complaint.State,
		complaint.City,
		complaint.Address,
		complaint.Pincode,
		complaint.ContactPhone,
		complaint.ContactEmail,
		complaint.PhotoPath,
		complaint.Status,
		complaint.Priority,
		complaint.SubmittedBy,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	query := `UPDATE complaints SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + complaintColumns
	return r.fetchSingle(ctx, query, status, id)
}

func (r *complaintRepository) UpdatePriority(ctx context.Context, id string, priority domain.ComplaintPriority) (*domain.Complaint, error) {
	query := `UPDATE complaints SET priority=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + complaintColumns
	return r.fetchSingle(ctx, query, priority, id)
}

func (r *complaintRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&complaint.ID,
		&complaint.Title,
		&complaint.Category,
		&complaint.Description,
		&complaint.State,
		&complaint.City,
		&complaint.Address,
		&complaint.Pincode,
		&complaint.ContactPhone,
		&complaint.ContactEmail,
		&complaint.PhotoPath,
		&complaint.Status,
		&complaint.Priority,
		&complaint.SubmittedBy,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListBySubmitter(ctx context.Context, userID string, limit, offset int) ([]domain.Complaint, error) {
	filter := ComplaintFilter{
		SubmittedBy: &userID,
		Limit:       limit,
		Offset:      offset,
	}
	return r.ListWithFilter(ctx, filter)
}

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	base := `SELECT ` + complaintColumns + ` FROM complaints`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.SubmittedBy != nil {
		args = append(args, *filter.SubmittedBy)
		clauses = append(clauses, fmt.Sprintf("submitted_by=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.Title,
			&complaint.Category,
			&complaint.Description,
			&complaint.State,
			&complaint.City,
			&complaint.Address,
			&complaint.Pincode,
			&complaint.ContactPhone,
			&complaint.ContactEmail,
			&complaint.PhotoPath,
			&complaint.Status,
			&complaint.Priority,
			&complaint.SubmittedBy,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
