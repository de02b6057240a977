package services

import (
	"testing"
	"time"

	"gascrm-backend/internal/models"
	"gascrm-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, timeutil.CST)
}

func visitAt(t time.Time) *models.Activity {
	return &models.Activity{Type: models.ActivityTypeVisit, Date: t, Notes: "visita"}
}

func kpiFixture() ([]*models.Client, time.Time) {
	now := day(2024, time.March, 20, 12)

	clients := []*models.Client{
		{
			ID: "c1", Name: "Tacos El Patrón", Status: models.ClientStatusInProgress,
			CreatedAt: day(2024, time.March, 5, 10),
			ActivityHistory: []*models.Activity{
				visitAt(day(2024, time.March, 18, 9)),
				visitAt(day(2024, time.March, 10, 9)),
				visitAt(day(2024, time.February, 20, 9)),
				{Type: models.ActivityTypeNote, Date: day(2024, time.March, 19, 9), Notes: "nota"},
			},
		},
		{
			ID: "c2", Name: "Fonda Doña Mary", Status: models.ClientStatusClosed,
			CreatedAt: day(2024, time.January, 15, 10),
			ActivityHistory: []*models.Activity{
				visitAt(day(2024, time.March, 2, 9)),
				visitAt(day(2024, time.February, 10, 9)),
				visitAt(day(2024, time.February, 3, 9)),
			},
		},
		{
			ID: "c3", Name: "Hotel Malecón", Status: models.ClientStatusInProgress,
			CreatedAt: day(2024, time.March, 12, 10),
			ActivityHistory: []*models.Activity{
				visitAt(day(2024, time.March, 15, 9)),
				visitAt(day(2024, time.March, 15, 14)),
				visitAt(day(2024, time.February, 28, 9)),
				visitAt(day(2024, time.January, 10, 9)),
			},
		},
		{
			ID: "c4", Name: "Casa Robles", Status: models.ClientStatusNew,
			CreatedAt: day(2023, time.December, 1, 10),
		},
	}

	return clients, now
}

func TestComputeKPIsCounts(t *testing.T) {
	clients, now := kpiFixture()
	kpis := ComputeKPIs(clients, now)

	assert.Equal(t, 4, kpis.TotalClients)
	assert.Equal(t, 2, kpis.ClientsInProgress)
	assert.Equal(t, 1, kpis.ClosedClients)
	assert.Equal(t, 2, kpis.NewClientsThisMonth)

	// March visits: c1 x2, c2 x1, c3 x2
	assert.Equal(t, 5, kpis.VisitsThisMonth)
	// February visits: c1 x1, c2 x2, c3 x1
	assert.Equal(t, 4, kpis.VisitsLastMonth)
	// 5 vs 4
	assert.InDelta(t, 25.0, kpis.MonthlyChangePct, 0.001)
}

func TestComputeKPIsIsIdempotent(t *testing.T) {
	clients, now := kpiFixture()

	first := ComputeKPIs(clients, now)
	second := ComputeKPIs(clients, now)
	assert.Equal(t, first, second)
}

func TestComputeKPIsChangePctZeroGuard(t *testing.T) {
	now := day(2024, time.March, 20, 12)
	clients := []*models.Client{
		{
			ID: "c1", Name: "Tacos El Patrón", Status: models.ClientStatusNew,
			CreatedAt: day(2024, time.March, 5, 10),
			ActivityHistory: []*models.Activity{
				visitAt(day(2024, time.March, 10, 9)),
			},
		},
	}

	kpis := ComputeKPIs(clients, now)
	assert.Equal(t, 1, kpis.VisitsThisMonth)
	assert.Equal(t, 0, kpis.VisitsLastMonth)
	assert.Equal(t, 0.0, kpis.MonthlyChangePct)
}

func TestComputeKPIsDailyBuckets(t *testing.T) {
	clients, now := kpiFixture()
	kpis := ComputeKPIs(clients, now)

	require.Len(t, kpis.DailyVisits, 30)

	// Oldest first, ending today
	assert.Equal(t, "2024-02-20", kpis.DailyVisits[0].Date)
	assert.Equal(t, "2024-03-20", kpis.DailyVisits[29].Date)

	counts := make(map[string]int)
	total := 0
	for i, b := range kpis.DailyVisits {
		counts[b.Date] = b.Count
		total += b.Count
		if i > 0 {
			assert.Greater(t, b.Date, kpis.DailyVisits[i-1].Date)
		}
	}

	// Two visits fell on March 15
	assert.Equal(t, 2, counts["2024-03-15"])
	assert.Equal(t, 1, counts["2024-03-18"])
	assert.Equal(t, 0, counts["2024-03-19"]) // note entry is not a visit
	// Window holds every visit from Feb 20 onward: 5 in March + Feb 20 + Feb 28
	assert.Equal(t, 7, total)
}

func TestComputeKPIsRecentVisits(t *testing.T) {
	clients, now := kpiFixture()
	kpis := ComputeKPIs(clients, now)

	require.Len(t, kpis.RecentVisits, 5)

	// Newest first
	assert.Equal(t, "c1", kpis.RecentVisits[0].ClientID)
	assert.Equal(t, day(2024, time.March, 18, 9), kpis.RecentVisits[0].Date)
	for i := 1; i < len(kpis.RecentVisits); i++ {
		assert.False(t, kpis.RecentVisits[i].Date.After(kpis.RecentVisits[i-1].Date))
	}
}

func TestComputeKPIsEmptyInput(t *testing.T) {
	now := day(2024, time.March, 20, 12)
	kpis := ComputeKPIs(nil, now)

	assert.Equal(t, 0, kpis.TotalClients)
	assert.Equal(t, 0.0, kpis.MonthlyChangePct)
	require.Len(t, kpis.DailyVisits, 30)
	for _, b := range kpis.DailyVisits {
		assert.Zero(t, b.Count)
	}
	assert.Empty(t, kpis.RecentVisits)
}
