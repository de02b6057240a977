package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gascrm-backend/internal/cache"
	"gascrm-backend/internal/metrics"
	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrInvalidActivityType = errors.New("invalid activity type")
)

const notificationMessageLimit = 120

type ActivityService struct {
	db               *pgxpool.Pool
	clientRepo       *repositories.ClientRepository
	activityRepo     *repositories.ActivityRepository
	notificationRepo *repositories.NotificationRepository
}

func NewActivityService(db *pgxpool.Pool, clientRepo *repositories.ClientRepository, activityRepo *repositories.ActivityRepository, notificationRepo *repositories.NotificationRepository) *ActivityService {
	return &ActivityService{
		db:               db,
		clientRepo:       clientRepo,
		activityRepo:     activityRepo,
		notificationRepo: notificationRepo,
	}
}

// NewActivityFromRequest builds the entry to append. The id is assigned
// here; date defaults to now when the caller omits it.
func NewActivityFromRequest(clientID string, req *models.AppendActivityRequest, createdBy string) *models.Activity {
	a := &models.Activity{
		ID:               uuid.NewString(),
		ClientID:         clientID,
		Type:             req.Type,
		Date:             req.Date,
		Notes:            strings.TrimSpace(req.Notes),
		CreatedBy:        createdBy,
		NextFollowUpDate: req.NextFollowUpDate,
	}
	if a.Date.IsZero() {
		a.Date = timeutil.Now()
	}
	return a
}

// DeriveFollowUpNotification returns the reminder an activity gives rise to,
// or nil when the entry carries no next follow-up date. At most one
// notification derives from one entry.
func DeriveFollowUpNotification(client *models.Client, a *models.Activity) *models.Notification {
	if a.NextFollowUpDate == nil || a.NextFollowUpDate.IsZero() {
		return nil
	}
	return &models.Notification{
		ID:            uuid.NewString(),
		ClientID:      client.ID,
		ClientName:    client.Name,
		Type:          models.NotificationTypeFollowUp,
		Message:       followUpMessage(client.Name, a.Notes),
		ScheduledDate: *a.NextFollowUpDate,
		IsRead:        false,
	}
}

func followUpMessage(clientName, notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return fmt.Sprintf("Seguimiento pendiente: %s", clientName)
	}
	// Truncate on rune boundaries so accented notes stay valid UTF-8
	if runes := []rune(notes); len(runes) > notificationMessageLimit {
		notes = string(runes[:notificationMessageLimit]) + "..."
	}
	return fmt.Sprintf("Seguimiento pendiente: %s - %s", clientName, notes)
}

// Append records one activity against a client. The activity insert, the
// client's last_visit advance and the conditional notification commit or
// roll back together.
func (s *ActivityService) Append(ctx context.Context, clientID string, req *models.AppendActivityRequest, createdBy string) (*models.Activity, *models.Notification, error) {
	if !models.ValidActivityType(req.Type) {
		return nil, nil, ErrInvalidActivityType
	}

	client, err := s.clientRepo.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrClientNotFound
		}
		return nil, nil, fmt.Errorf("failed to load client: %w", err)
	}

	activity := NewActivityFromRequest(clientID, req, createdBy)
	notification := DeriveFollowUpNotification(client, activity)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.activityRepo.CreateTx(ctx, tx, activity); err != nil {
		return nil, nil, fmt.Errorf("failed to record activity: %w", err)
	}

	// Every entry type advances last_visit, notes and follow-ups included
	if err := s.clientRepo.TouchLastVisitTx(ctx, tx, clientID, activity.Date); err != nil {
		return nil, nil, fmt.Errorf("failed to update last visit: %w", err)
	}

	if notification != nil {
		if err := s.notificationRepo.CreateTx(ctx, tx, notification); err != nil {
			return nil, nil, fmt.Errorf("failed to create notification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit activity: %w", err)
	}

	metrics.ActivitiesAppended.WithLabelValues(activity.Type).Inc()
	if notification != nil {
		metrics.NotificationsCreated.Inc()
		cache.InvalidateNotificationCaches(ctx)
	}
	cache.InvalidateClientCaches(ctx)

	return activity, notification, nil
}

// History returns a client's activity entries, newest first.
func (s *ActivityService) History(ctx context.Context, clientID string) ([]*models.Activity, error) {
	if _, err := s.clientRepo.Get(ctx, clientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	return s.activityRepo.ListByClient(ctx, clientID)
}
