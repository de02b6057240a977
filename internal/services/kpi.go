package services

import (
	"sort"
	"time"

	"gascrm-backend/internal/models"
	"gascrm-backend/internal/timeutil"
)

const dailyVisitDays = 30
const recentVisitLimit = 5

// ComputeKPIs reduces the visible client set and its embedded activity
// histories into the dashboard aggregates. Pure function: the same clients
// and the same now always yield the same result.
func ComputeKPIs(clients []*models.Client, now time.Time) *models.DashboardKPIs {
	now = timeutil.ToCST(now)
	monthStart := timeutil.StartOfMonth(now)
	priorMonthStart := timeutil.StartOfPriorMonth(now)

	kpis := &models.DashboardKPIs{
		TotalClients: len(clients),
	}

	for _, c := range clients {
		switch c.Status {
		case models.ClientStatusInProgress:
			kpis.ClientsInProgress++
		case models.ClientStatusClosed:
			kpis.ClosedClients++
		}
		createdAt := timeutil.ToCST(c.CreatedAt)
		if !createdAt.Before(monthStart) && !createdAt.After(now) {
			kpis.NewClientsThisMonth++
		}
	}

	visits := extractVisits(clients)

	for _, v := range visits {
		d := timeutil.ToCST(v.Date)
		switch {
		case !d.Before(monthStart) && !d.After(now):
			kpis.VisitsThisMonth++
		case !d.Before(priorMonthStart) && d.Before(monthStart):
			kpis.VisitsLastMonth++
		}
	}

	// Month-over-month change; defined as 0 when last month had no visits
	if kpis.VisitsLastMonth > 0 {
		kpis.MonthlyChangePct = float64(kpis.VisitsThisMonth-kpis.VisitsLastMonth) / float64(kpis.VisitsLastMonth) * 100
	}

	kpis.DailyVisits = bucketDailyVisits(visits, now)

	if len(visits) > recentVisitLimit {
		kpis.RecentVisits = visits[:recentVisitLimit]
	} else {
		kpis.RecentVisits = visits
	}

	return kpis
}

// extractVisits flattens every client's history down to its visit-typed
// entries, newest first
func extractVisits(clients []*models.Client) []models.VisitRecord {
	var visits []models.VisitRecord
	for _, c := range clients {
		for _, a := range c.ActivityHistory {
			if a.Type != models.ActivityTypeVisit {
				continue
			}
			visits = append(visits, models.VisitRecord{
				ClientID:   c.ID,
				ClientName: c.Name,
				Date:       a.Date,
				Notes:      a.Notes,
				CreatedBy:  a.CreatedBy,
			})
		}
	}
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].Date.After(visits[j].Date)
	})
	return visits
}

// bucketDailyVisits builds the 30-day histogram: one bucket per local
// calendar day from today-29 through today, oldest first, zero-filled
func bucketDailyVisits(visits []models.VisitRecord, now time.Time) []models.DailyVisitBucket {
	counts := make(map[string]int)
	for _, v := range visits {
		day := timeutil.ToCST(v.Date).Format(timeutil.DateLayout)
		counts[day]++
	}

	today := timeutil.StartOfDay(now)
	buckets := make([]models.DailyVisitBucket, 0, dailyVisitDays)
	for i := dailyVisitDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(timeutil.DateLayout)
		buckets = append(buckets, models.DailyVisitBucket{
			Date:  day,
			Count: counts[day],
		})
	}
	return buckets
}
