package services

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"gascrm-backend/internal/models"
	"gascrm-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivityFromRequest(t *testing.T) {
	date := time.Date(2024, time.March, 15, 10, 0, 0, 0, timeutil.CST)
	req := &models.AppendActivityRequest{
		Type:  models.ActivityTypeVisit,
		Date:  date,
		Notes: "  Entregó cotización  ",
	}

	a := NewActivityFromRequest("c1", req, "Juan Pérez")

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "c1", a.ClientID)
	assert.Equal(t, models.ActivityTypeVisit, a.Type)
	assert.Equal(t, date, a.Date)
	assert.Equal(t, "Entregó cotización", a.Notes)
	assert.Equal(t, "Juan Pérez", a.CreatedBy)
	assert.Nil(t, a.NextFollowUpDate)

	// Ids are unique per entry
	b := NewActivityFromRequest("c1", req, "Juan Pérez")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewActivityFromRequestDefaultsDate(t *testing.T) {
	req := &models.AppendActivityRequest{Type: models.ActivityTypeNote, Notes: "llamada"}

	a := NewActivityFromRequest("c1", req, "Juan Pérez")
	assert.False(t, a.Date.IsZero())
}

func TestDeriveFollowUpNotification(t *testing.T) {
	client := &models.Client{ID: "c1", Name: "Tacos El Patrón"}
	visit := time.Date(2024, time.March, 15, 10, 0, 0, 0, timeutil.CST)
	followUp := time.Date(2024, time.March, 22, 10, 0, 0, 0, timeutil.CST)

	a := &models.Activity{
		ID:               "a1",
		ClientID:         "c1",
		Type:             models.ActivityTypeVisit,
		Date:             visit,
		Notes:            "Pidió segunda visita",
		NextFollowUpDate: &followUp,
	}

	n := DeriveFollowUpNotification(client, a)
	require.NotNil(t, n)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "c1", n.ClientID)
	assert.Equal(t, "Tacos El Patrón", n.ClientName)
	assert.Equal(t, models.NotificationTypeFollowUp, n.Type)
	assert.Equal(t, followUp, n.ScheduledDate)
	assert.False(t, n.IsRead)
	assert.Contains(t, n.Message, "Tacos El Patrón")
	assert.Contains(t, n.Message, "Pidió segunda visita")
}

func TestDeriveFollowUpNotificationAbsentWithoutDate(t *testing.T) {
	client := &models.Client{ID: "c1", Name: "Tacos El Patrón"}
	a := &models.Activity{
		ID:       "a1",
		ClientID: "c1",
		Type:     models.ActivityTypeVisit,
		Date:     timeutil.Now(),
		Notes:    "sin seguimiento",
	}

	assert.Nil(t, DeriveFollowUpNotification(client, a))

	zero := time.Time{}
	a.NextFollowUpDate = &zero
	assert.Nil(t, DeriveFollowUpNotification(client, a))
}

func TestFollowUpMessageTruncatesLongNotes(t *testing.T) {
	long := strings.Repeat("x", 400)
	msg := followUpMessage("Tacos El Patrón", long)

	assert.Contains(t, msg, "...")
	assert.Less(t, len(msg), 200)
}

func TestFollowUpMessageTruncatesOnRuneBoundary(t *testing.T) {
	accented := strings.Repeat("é", 200)
	msg := followUpMessage("Tacos El Patrón", accented)

	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, "é..."))
	assert.Equal(t, notificationMessageLimit, strings.Count(msg, "é"))
}

func TestFollowUpMessageEmptyNotes(t *testing.T) {
	msg := followUpMessage("Tacos El Patrón", "   ")
	assert.Equal(t, "Seguimiento pendiente: Tacos El Patrón", msg)
}
