package services

import (
	"testing"

	"gascrm-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateClientFields(t *testing.T) {
	cases := []struct {
		name       string
		clientName string
		clientType string
		status     string
		address    string
		phone      string
		wantErr    string
	}{
		{
			name:       "valid",
			clientName: "Tacos El Patrón",
			clientType: models.ClientTypeFoodTruck,
			status:     models.ClientStatusInProgress,
			address:    "Av. Vallarta 1200",
			phone:      "3312345678",
		},
		{
			name:       "valid with empty status",
			clientName: "Casa Robles",
			clientType: models.ClientTypeResidential,
			address:    "Calle Hidalgo 45",
			phone:      "3387654321",
		},
		{
			name:       "missing name",
			clientName: "   ",
			clientType: models.ClientTypeResidential,
			address:    "Calle Hidalgo 45",
			phone:      "3387654321",
			wantErr:    "name is required",
		},
		{
			name:       "missing address",
			clientName: "Casa Robles",
			clientType: models.ClientTypeResidential,
			phone:      "3387654321",
			wantErr:    "address is required",
		},
		{
			name:       "missing phone",
			clientName: "Casa Robles",
			clientType: models.ClientTypeResidential,
			address:    "Calle Hidalgo 45",
			wantErr:    "phone is required",
		},
		{
			name:       "unknown type",
			clientName: "Casa Robles",
			clientType: "spaceship",
			address:    "Calle Hidalgo 45",
			phone:      "3387654321",
			wantErr:    "invalid client type",
		},
		{
			name:       "unknown status",
			clientName: "Casa Robles",
			clientType: models.ClientTypeResidential,
			status:     "frozen",
			address:    "Calle Hidalgo 45",
			phone:      "3387654321",
			wantErr:    "invalid client status",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateClientFields(tc.clientName, tc.clientType, tc.status, tc.address, tc.phone)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestFilterClients(t *testing.T) {
	clients := []*models.Client{
		{ID: "c1", Type: models.ClientTypeRestaurant, Status: models.ClientStatusNew, Area: "Zapopan"},
		{ID: "c2", Type: models.ClientTypeRestaurant, Status: models.ClientStatusClosed, Area: "Zapopan"},
		{ID: "c3", Type: models.ClientTypeForklift, Status: models.ClientStatusNew, Area: "Tonalá"},
	}

	got := filterClients(clients, "", "", "")
	assert.Len(t, got, 3)

	got = filterClients(clients, models.ClientStatusNew, "", "")
	assert.Len(t, got, 2)

	got = filterClients(clients, "", models.ClientTypeRestaurant, "")
	assert.Len(t, got, 2)

	got = filterClients(clients, models.ClientStatusNew, models.ClientTypeRestaurant, "Zapopan")
	assert.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}
