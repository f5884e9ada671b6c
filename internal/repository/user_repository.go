package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// UserRepository defines persistence access for citizens.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByNumber(ctx context.Context, number string) (*domain.User, error)
	// ExistsOther reports whether another user already holds the email or
	// number, excluding the given id. Used for profile-update conflicts.
	ExistsOther(ctx context.Context, excludeID, email, number string) (bool, error)
}

const userColumns = `id, name, number, email, state, city, address, pincode, password_hash, created_at, updated_at`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, number, email, state, city, address, pincode, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Number,
		user.Email,
		user.State,
		user.City,
		user.Address,
		user.Pincode,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, number=$2, email=$3, state=$4, city=$5, address=$6, pincode=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`

	if err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.Number,
		user.Email,
		user.State,
		user.City,
		user.Address,
		user.Pincode,
		user.ID,
	).Scan(&user.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email)=LOWER($1)`, email)
}

func (r *userRepository) GetByNumber(ctx context.Context, number string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE number=$1`, number)
}

func (r *userRepository) ExistsOther(ctx context.Context, excludeID, email, number string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM users
            WHERE id <> $1 AND (($2 <> '' AND LOWER(email)=LOWER($2)) OR ($3 <> '' AND number=$3))
        )`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, excludeID, email, number).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Number,
		&user.Email,
		&user.State,
		&user.City,
		&user.Address,
		&user.Pincode,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
