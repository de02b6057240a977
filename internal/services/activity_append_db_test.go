package services

import (
	"context"
	"os"
	"testing"
	"time"

	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a migrated database; set TEST_DATABASE_URL to run them.
func appendTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func appendTestService(pool *pgxpool.Pool) (*ActivityService, *repositories.ClientRepository) {
	clientRepo := repositories.NewClientRepository(pool)
	activityRepo := repositories.NewActivityRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	return NewActivityService(pool, clientRepo, activityRepo, notificationRepo), clientRepo
}

func TestAppendCommitsEntryLastVisitAndNotification(t *testing.T) {
	pool := appendTestPool(t)
	ctx := context.Background()
	svc, clientRepo := appendTestService(pool)

	client := &models.Client{
		ID:      uuid.NewString(),
		Name:    "Tacos El Patrón",
		Type:    models.ClientTypeFoodTruck,
		Status:  models.ClientStatusInProgress,
		Address: "Av. Vallarta 1200",
		Phone:   "3312345678",
	}
	require.NoError(t, clientRepo.Create(ctx, client))
	t.Cleanup(func() { clientRepo.Delete(ctx, client.ID) })

	before, err := svc.History(ctx, client.ID)
	require.NoError(t, err)

	visitDate := timeutil.Now().Add(-time.Hour)
	followUp := timeutil.Now().AddDate(0, 0, 7)
	a, n, err := svc.Append(ctx, client.ID, &models.AppendActivityRequest{
		Type:             models.ActivityTypeVisit,
		Date:             visitDate,
		Notes:            "Entregó cotización",
		NextFollowUpDate: &followUp,
	}, "Juan Pérez")
	require.NoError(t, err)
	require.NotNil(t, a)
	require.NotNil(t, n)

	after, err := svc.History(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, a.ID, after[0].ID)
	assert.Equal(t, "Entregó cotización", after[0].Notes)

	reloaded, err := clientRepo.Get(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastVisit)
	assert.WithinDuration(t, visitDate, *reloaded.LastVisit, time.Second)

	assert.Equal(t, models.NotificationTypeFollowUp, n.Type)
	assert.WithinDuration(t, followUp, n.ScheduledDate, time.Second)
}

func TestAppendNoteStillAdvancesLastVisit(t *testing.T) {
	pool := appendTestPool(t)
	ctx := context.Background()
	svc, clientRepo := appendTestService(pool)

	client := &models.Client{
		ID:      uuid.NewString(),
		Name:    "Casa Robles",
		Type:    models.ClientTypeResidential,
		Status:  models.ClientStatusNew,
		Address: "Calle Hidalgo 45",
		Phone:   "3387654321",
	}
	require.NoError(t, clientRepo.Create(ctx, client))
	t.Cleanup(func() { clientRepo.Delete(ctx, client.ID) })

	noteDate := timeutil.Now()
	_, n, err := svc.Append(ctx, client.ID, &models.AppendActivityRequest{
		Type:  models.ActivityTypeNote,
		Date:  noteDate,
		Notes: "Pidió llamar el lunes",
	}, "Juan Pérez")
	require.NoError(t, err)
	assert.Nil(t, n)

	reloaded, err := clientRepo.Get(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastVisit)
	assert.WithinDuration(t, noteDate, *reloaded.LastVisit, time.Second)
}

func TestAppendUnknownClientWritesNothing(t *testing.T) {
	pool := appendTestPool(t)
	ctx := context.Background()
	svc, _ := appendTestService(pool)

	missing := uuid.NewString()
	_, _, err := svc.Append(ctx, missing, &models.AppendActivityRequest{
		Type:  models.ActivityTypeVisit,
		Notes: "no debería guardarse",
	}, "Juan Pérez")
	require.ErrorIs(t, err, ErrClientNotFound)

	history, err := svc.History(ctx, missing)
	require.NoError(t, err)
	assert.Empty(t, history)
}
