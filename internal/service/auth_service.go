package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AuthService coordinates signup, signin and profile flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	adminCred  config.AuthConfig
}

// SignUpInput captures the civic profile collected at registration.
type SignUpInput struct {
	Name     string
	Number   string
	Email    string
	State    string
	City     string
	Address  string
	Pincode  string
	Password string
}

// ProfileUpdate is an explicit partial update over the closed profile field
// set. Nil means "leave unchanged".
type ProfileUpdate struct {
	Name    *string
	Number  *string
	Email   *string
	State   *string
	City    *string
	Address *string
	Pincode *string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		adminCred:  cfg.Auth,
	}
}

// SignUp creates a new citizen account. Email and mobile number are each
// unique across users.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	missing := missingSignupFields(input)
	if len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing)
	}
	if !pincodeRE.MatchString(input.Pincode) {
		return nil, apperrors.NewInvalidValue("pincode", "pincode must be exactly 6 digits")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByNumber(ctx, input.Number); err == nil {
		return nil, apperrors.NewConflict("mobile number already registered", map[string]any{"field": "number"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Number:       strings.TrimSpace(input.Number),
		Email:        email,
		State:        strings.TrimSpace(input.State),
		City:         strings.TrimSpace(input.City),
		Address:      strings.TrimSpace(input.Address),
		Pincode:      input.Pincode,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn authenticates by identifier (email or mobile number) and password,
// returning the user (nil for the bootstrap admin) plus a signed token.
func (s *AuthService) SignIn(ctx context.Context, identifier, password string) (*domain.User, string, time.Time, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("identifier and password required", nil)
	}

	if s.isBootstrapAdmin(identifier, password) {
		token, exp, err := s.tokenMgr.Issue(domain.AdminSubjectID, true)
		if err != nil {
			return nil, "", time.Time{}, err
		}
		return nil, token, exp, nil
	}

	user, err := s.users.GetByEmail(ctx, identifier)
	if errors.Is(err, pgx.ErrNoRows) {
		user, err = s.users.GetByNumber(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewValidationError("invalid credentials", nil)
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("invalid credentials", nil)
	}

	token, exp, err := s.tokenMgr.Issue(user.ID, false)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// isBootstrapAdmin is the single code path recognizing the configured
// administrator credential. It bypasses the user store but nothing else:
// the resulting token goes through the same codec as every other token.
func (s *AuthService) isBootstrapAdmin(identifier, password string) bool {
	if s.adminCred.AdminEmail == "" || s.adminCred.AdminPassword == "" {
		return false
	}
	emailMatch := strings.EqualFold(identifier, s.adminCred.AdminEmail)
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminCred.AdminPassword)) == 1
	return emailMatch && passMatch
}

// GetProfile loads the caller's own profile. The bootstrap admin subject has
// no profile row and resolves to not found.
func (s *AuthService) GetProfile(ctx context.Context, subjectID string) (*domain.User, error) {
	if subjectID == domain.AdminSubjectID {
		return nil, apperrors.NewNotFound("user", nil)
	}
	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the provided fields to the caller's profile,
// enforcing email/number uniqueness across other users.
func (s *AuthService) UpdateProfile(ctx context.Context, subjectID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.GetProfile(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	var checkEmail, checkNumber string
	if update.Email != nil {
		checkEmail = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Number != nil {
		checkNumber = strings.TrimSpace(*update.Number)
	}
	if checkEmail != "" || checkNumber != "" {
		taken, err := s.users.ExistsOther(ctx, user.ID, checkEmail, checkNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflict("email or mobile number already in use", nil)
		}
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if checkNumber != "" {
		user.Number = checkNumber
	}
	if checkEmail != "" {
		user.Email = checkEmail
	}
	if update.State != nil {
		user.State = strings.TrimSpace(*update.State)
	}
	if update.City != nil {
		user.City = strings.TrimSpace(*update.City)
	}
	if update.Address != nil {
		user.Address = strings.TrimSpace(*update.Address)
	}
	if update.Pincode != nil {
		if !pincodeRE.MatchString(*update.Pincode) {
			return nil, apperrors.NewInvalidValue("pincode", "pincode must be exactly 6 digits")
		}
		user.Pincode = *update.Pincode
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func missingSignupFields(input SignUpInput) []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"number", input.Number},
		{"email", input.Email},
		{"state", input.State},
		{"city", input.City},
		{"address", input.Address},
		{"pincode", input.Pincode},
		{"password", input.Password},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}
