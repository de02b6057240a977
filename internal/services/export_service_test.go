package services

import (
	"bytes"
	"testing"
	"time"

	"gascrm-backend/internal/models"
	"gascrm-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildClientWorkbook(t *testing.T) {
	lastVisit := time.Date(2024, time.March, 15, 10, 0, 0, 0, timeutil.CST)
	days := 15
	clients := []*models.Client{
		{
			ID: "c1", Name: "Tacos El Patrón", Type: models.ClientTypeFoodTruck,
			Status: models.ClientStatusInProgress, Address: "Av. Vallarta 1200",
			Phone: "3312345678", Email: "patron@example.com",
			AssignedTo: "Juan Pérez", Area: "Zapopan",
			HasCredit: true, CreditDays: &days,
			LastVisit: &lastVisit,
			CreatedAt: time.Date(2024, time.February, 1, 9, 0, 0, 0, timeutil.CST),
		},
		{
			ID: "c2", Name: "Casa Robles", Type: models.ClientTypeResidential,
			Status: models.ClientStatusNew, Address: "Calle Hidalgo 45",
			Phone: "3387654321", Area: "Tlaquepaque",
			CreatedAt: time.Date(2024, time.March, 10, 9, 0, 0, 0, timeutil.CST),
		},
	}

	data, err := buildClientWorkbook(clients, exportMeta{
		ExportedAt: time.Date(2024, time.March, 20, 12, 0, 0, 0, timeutil.CST),
		ExportedBy: "Admin General",
		Filters:    "zona=Zapopan",
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Clientes")
	require.NoError(t, err)

	// Header plus one row per client
	require.Len(t, rows, 3)
	assert.Equal(t, "Nombre", rows[0][0])

	assert.Equal(t, "Tacos El Patrón", rows[1][0])
	assert.Equal(t, "Juan Pérez", rows[1][6])
	assert.Equal(t, "15", rows[1][8])
	assert.Equal(t, "2024-03-15", rows[1][10])

	assert.Equal(t, "Casa Robles", rows[2][0])
	assert.Equal(t, "Tlaquepaque", rows[2][7])

	infoRows, err := f.GetRows("Información")
	require.NoError(t, err)
	require.Len(t, infoRows, 4)
	assert.Equal(t, "Admin General", infoRows[1][1])
	assert.Equal(t, "zona=Zapopan", infoRows[2][1])
	assert.Equal(t, "2", infoRows[3][1])
}

func TestDescribeFilters(t *testing.T) {
	assert.Equal(t, "ninguno", describeFilters(&models.CreateExportRequest{}))
	assert.Equal(t, "estatus=new, zona=Zapopan",
		describeFilters(&models.CreateExportRequest{Status: "new", Area: "Zapopan"}))
}

func TestBuildClientWorkbookEmpty(t *testing.T) {
	data, err := buildClientWorkbook(nil, exportMeta{ExportedBy: "Admin General", Filters: "ninguno"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Clientes")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
