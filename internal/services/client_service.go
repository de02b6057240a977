package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gascrm-backend/internal/cache"
	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrAssigneeNotFound = errors.New("assigned user not found")

type ClientService struct {
	clientRepo   *repositories.ClientRepository
	activityRepo *repositories.ActivityRepository
	userRepo     *repositories.UserRepository
}

func NewClientService(clientRepo *repositories.ClientRepository, activityRepo *repositories.ActivityRepository, userRepo *repositories.UserRepository) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

func validateClientFields(name, clientType, status, address, phone string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(address) == "" {
		return errors.New("address is required")
	}
	if strings.TrimSpace(phone) == "" {
		return errors.New("phone is required")
	}
	if !models.ValidClientType(clientType) {
		return fmt.Errorf("invalid client type: %s", clientType)
	}
	if status != "" && !models.ValidClientStatus(status) {
		return fmt.Errorf("invalid client status: %s", status)
	}
	return nil
}

// resolveAssignee maps an assigned user id to its display name so the
// denormalized assigned_to cache stays consistent with the users table.
func (s *ClientService) resolveAssignee(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrAssigneeNotFound
		}
		return "", fmt.Errorf("failed to resolve assignee: %w", err)
	}
	return u.Name, nil
}

func (s *ClientService) Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	if err := validateClientFields(req.Name, req.Type, req.Status, req.Address, req.Phone); err != nil {
		return nil, err
	}

	assignedName, err := s.resolveAssignee(ctx, req.AssignedToID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ClientStatusNew
	}

	c := &models.Client{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		Status:         status,
		Address:        strings.TrimSpace(req.Address),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          strings.TrimSpace(req.Email),
		AssignedToID:   req.AssignedToID,
		AssignedTo:     assignedName,
		Area:           req.Area,
		HasCredit:      req.HasCredit,
		CreditDays:     req.CreditDays,
		HasDiscount:    req.HasDiscount,
		DiscountAmount: req.DiscountAmount,
	}

	if err := s.clientRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	cache.InvalidateClientCaches(ctx)
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	c, err := s.clientRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	history, err := s.activityRepo.ListByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity history: %w", err)
	}
	c.ActivityHistory = history
	return c, nil
}

// ListVisible returns the clients the requesting user may see, role-scoped
// and optionally narrowed by status, type and area.
func (s *ClientService) ListVisible(ctx context.Context, current *models.User, viewingAsID, status, clientType, area string) ([]*models.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	visible := ResolveVisibleClients(clients, current, viewingAsID, users)
	return filterClients(visible, status, clientType, area), nil
}

func filterClients(clients []*models.Client, status, clientType, area string) []*models.Client {
	if status == "" && clientType == "" && area == "" {
		return clients
	}
	filtered := make([]*models.Client, 0, len(clients))
	for _, c := range clients {
		if status != "" && c.Status != status {
			continue
		}
		if clientType != "" && c.Type != clientType {
			continue
		}
		if area != "" && c.Area != area {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func (s *ClientService) Update(ctx context.Context, id string, req *models.UpdateClientRequest) (*models.Client, error) {
	if err := validateClientFields(req.Name, req.Type, req.Status, req.Address, req.Phone); err != nil {
		return nil, err
	}

	c, err := s.clientRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	assignedName, err := s.resolveAssignee(ctx, req.AssignedToID)
	if err != nil {
		return nil, err
	}

	c.Name = strings.TrimSpace(req.Name)
	c.Type = req.Type
	if req.Status != "" {
		c.Status = req.Status
	}
	c.Address = strings.TrimSpace(req.Address)
	c.Phone = strings.TrimSpace(req.Phone)
	c.Email = strings.TrimSpace(req.Email)
	c.AssignedToID = req.AssignedToID
	c.AssignedTo = assignedName
	c.Area = req.Area
	c.HasCredit = req.HasCredit
	c.CreditDays = req.CreditDays
	c.HasDiscount = req.HasDiscount
	c.DiscountAmount = req.DiscountAmount

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	cache.InvalidateClientCaches(ctx)
	return s.clientRepo.Get(ctx, id)
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := s.clientRepo.Get(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to load client: %w", err)
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	cache.InvalidateClientCaches(ctx)
	return nil
}
