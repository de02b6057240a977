package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gascrm-backend/internal/cache"
	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/timeutil"
)

const dashboardCacheTTL = 5 * time.Minute

type DashboardService struct {
	clientRepo   *repositories.ClientRepository
	activityRepo *repositories.ActivityRepository
	userRepo     *repositories.UserRepository
}

func NewDashboardService(clientRepo *repositories.ClientRepository, activityRepo *repositories.ActivityRepository, userRepo *repositories.UserRepository) *DashboardService {
	return &DashboardService{
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

// GetKPIs aggregates dashboard stats for the requesting user. Admins may
// pass viewingAsID to see the dashboard as one of their sales reps; an
// unknown or non-sales id is ignored and the admin sees everything.
func (s *DashboardService) GetKPIs(ctx context.Context, current *models.User, viewingAsID string) (*models.DashboardKPIs, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	scope := VisibilityScope(current, viewingAsID, users)
	cacheKey := fmt.Sprintf(cache.DashboardKeyFmt, scope)

	if data, ok := cache.GetCached(ctx, cacheKey); ok {
		var kpis models.DashboardKPIs
		if err := json.Unmarshal(data, &kpis); err == nil {
			return &kpis, nil
		}
	}

	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	activities, err := s.activityRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	attachActivities(clients, activities)

	visible := ResolveVisibleClients(clients, current, viewingAsID, users)
	kpis := ComputeKPIs(visible, timeutil.Now())

	if data, err := json.Marshal(kpis); err == nil {
		cache.SetCached(ctx, cacheKey, data, dashboardCacheTTL)
	} else {
		log.Printf("[Dashboard] Failed to marshal stats for scope %s: %v", scope, err)
	}

	return kpis, nil
}

// attachActivities indexes the flat activity list back onto the owning
// clients, most recent first per client
func attachActivities(clients []*models.Client, activities []*models.Activity) {
	byClient := make(map[string][]*models.Activity, len(clients))
	for _, a := range activities {
		byClient[a.ClientID] = append(byClient[a.ClientID], a)
	}
	for _, c := range clients {
		c.ActivityHistory = byClient[c.ID]
	}
}
