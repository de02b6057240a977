package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/store"
	"gascrm-backend/internal/timeutil"
)

// SnapshotResult summarizes one snapshot run
type SnapshotResult struct {
	Clients       int       `json:"clients"`
	Activities    int       `json:"activities"`
	Notifications int       `json:"notifications"`
	Users         int       `json:"users"`
	RemoteKey     string    `json:"remote_key,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SnapshotStatus reports the backup configuration and the last run of this
// process, if any.
type SnapshotStatus struct {
	R2Enabled bool            `json:"r2_enabled"`
	LastRun   *SnapshotResult `json:"last_run,omitempty"`
}

// SnapshotService mirrors the database into whole-collection JSON blobs on
// local disk, with optional upload of the combined archive to R2. The
// snapshot is the offline recovery path when the database is unreachable.
type SnapshotService struct {
	store            store.Store
	r2               *R2Client // nil when R2 is not configured
	clientRepo       *repositories.ClientRepository
	activityRepo     *repositories.ActivityRepository
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository

	mu      sync.Mutex
	lastRun *SnapshotResult
}

func NewSnapshotService(st store.Store, r2 *R2Client, clientRepo *repositories.ClientRepository, activityRepo *repositories.ActivityRepository, notificationRepo *repositories.NotificationRepository, userRepo *repositories.UserRepository) *SnapshotService {
	return &SnapshotService{
		store:            st,
		r2:               r2,
		clientRepo:       clientRepo,
		activityRepo:     activityRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Run takes one full snapshot. Each collection is written atomically; the
// R2 upload failing does not undo the local snapshot.
func (s *SnapshotService) Run(ctx context.Context) (*SnapshotResult, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	activities, err := s.activityRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	notifications, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if err := s.store.Save(store.CollectionClients, clients); err != nil {
		return nil, err
	}
	if err := s.store.Save(store.CollectionActivities, activities); err != nil {
		return nil, err
	}
	if err := s.store.Save(store.CollectionNotifications, notifications); err != nil {
		return nil, err
	}
	if err := s.store.Save(store.CollectionUsers, users); err != nil {
		return nil, err
	}

	result := &SnapshotResult{
		Clients:       len(clients),
		Activities:    len(activities),
		Notifications: len(notifications),
		Users:         len(users),
		CreatedAt:     timeutil.Now(),
	}

	if s.r2 != nil {
		key, err := s.uploadArchive(ctx, clients, activities, notifications, users)
		if err != nil {
			log.Printf("[Backup] R2 upload failed, local snapshot kept: %v", err)
		} else {
			result.RemoteKey = key
		}
	}

	s.mu.Lock()
	s.lastRun = result
	s.mu.Unlock()

	return result, nil
}

// Status reports the last snapshot taken by this process.
func (s *SnapshotService) Status() *SnapshotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &SnapshotStatus{
		R2Enabled: s.r2 != nil,
		LastRun:   s.lastRun,
	}
}

func (s *SnapshotService) uploadArchive(ctx context.Context, clients []*models.Client, activities []*models.Activity, notifications []*models.Notification, users []*models.User) (string, error) {
	archive := map[string]interface{}{
		store.CollectionClients:       clients,
		store.CollectionActivities:    activities,
		store.CollectionNotifications: notifications,
		store.CollectionUsers:         users,
		"taken_at":                    timeutil.Now(),
	}
	data, err := json.Marshal(archive)
	if err != nil {
		return "", fmt.Errorf("failed to encode archive: %w", err)
	}

	key := fmt.Sprintf("snapshots/gascrm_%s.json", timeutil.Now().Format("20060102_150405"))
	if err := s.r2.Upload(ctx, key, data, "application/json"); err != nil {
		return "", err
	}

	log.Printf("[Backup] Snapshot uploaded to R2: %s (%d bytes)", key, len(data))
	return key, nil
}
