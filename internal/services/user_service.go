package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gascrm-backend/internal/auth"
	"gascrm-backend/internal/cache"
	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserReferenced     = errors.New("user is still referenced by other records")
)

type UserService struct {
	userRepo   *repositories.UserRepository
	clientRepo *repositories.ClientRepository
	jwtManager *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, clientRepo *repositories.ClientRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		userRepo:   userRepo,
		clientRepo: clientRepo,
		jwtManager: jwtManager,
	}
}

// Login verifies credentials and issues a session token. Suspended accounts
// are rejected after the password check so the error does not leak which
// emails exist.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountSuspended
	}

	token, err := s.jwtManager.GenerateToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.RecordLogin(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return &models.AuthResponse{Token: token, User: u}, nil
}

func validateUserFields(name, email, role string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	if role != "" && role != models.RoleAdmin && role != models.RoleSales {
		return fmt.Errorf("invalid role: %s", role)
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := validateUserFields(req.Name, req.Email, req.Role); err != nil {
		return nil, err
	}
	if len(req.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
		AssignedArea: req.AssignedArea,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	cache.InvalidateUserCaches(ctx)
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// Update edits a user; an empty password leaves the stored hash untouched.
// A rename flows through to the assigned_to display cache on clients.
func (s *UserService) Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	if err := validateUserFields(req.Name, req.Email, req.Role); err != nil {
		return nil, err
	}

	u, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	renamed := u.Name != strings.TrimSpace(req.Name)

	if err := mergeUserUpdate(u, req); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if renamed {
		if err := s.clientRepo.RenameAssignee(ctx, u.ID, u.Name); err != nil {
			return nil, fmt.Errorf("failed to refresh assignee names: %w", err)
		}
		cache.InvalidateClientCaches(ctx)
	}

	cache.InvalidateUserCaches(ctx)
	return s.userRepo.Get(ctx, id)
}

// mergeUserUpdate applies req onto u. Empty role and empty password keep
// the stored values, matching the partial forms the UI sends.
func mergeUserUpdate(u *models.User, req *models.UpdateUserRequest) error {
	u.Name = strings.TrimSpace(req.Name)
	u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Role != "" {
		u.Role = req.Role
	}
	u.AssignedArea = req.AssignedArea
	u.PasswordHash = ""
	if req.Password != "" {
		if len(req.Password) < 6 {
			return errors.New("password must be at least 6 characters")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	return nil
}

func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := s.userRepo.Get(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := s.userRepo.ToggleActiveStatus(ctx, id, active); err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	cache.InvalidateUserCaches(ctx)
	return nil
}

// Delete removes a user. Clients held by the user are detached first; log
// rows keep their history with the actor reference cleared by the schema.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.userRepo.Get(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := s.clientRepo.UnassignClients(ctx, id); err != nil {
		return fmt.Errorf("failed to detach clients: %w", err)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return ErrUserReferenced
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	cache.InvalidateClientCaches(ctx)
	cache.InvalidateUserCaches(ctx)
	return nil
}
