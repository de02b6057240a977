package services

import (
	"testing"

	"gascrm-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visibilityFixture() ([]*models.Client, []*models.User) {
	users := []*models.User{
		{ID: "u-admin", Name: "Gerente", Role: models.RoleAdmin, IsActive: true},
		{ID: "u-juan", Name: "Juan Pérez", Role: models.RoleSales, IsActive: true},
		{ID: "u-maria", Name: "María López", Role: models.RoleSales, IsActive: true},
		{ID: "u-gone", Name: "Ex Vendedor", Role: models.RoleSales, IsActive: false},
	}
	clients := []*models.Client{
		{ID: "c1", Name: "Tacos El Patrón", AssignedToID: "u-juan", AssignedTo: "Juan Pérez"},
		{ID: "c2", Name: "Fonda Doña Mary", AssignedToID: "u-juan", AssignedTo: "Juan Pérez"},
		{ID: "c3", Name: "Hotel Malecón", AssignedToID: "u-juan", AssignedTo: "Juan Pérez"},
		{ID: "c4", Name: "Montacargas GDL", AssignedToID: "u-maria", AssignedTo: "María López"},
		{ID: "c5", Name: "Casa Robles", AssignedToID: "u-maria", AssignedTo: "María López"},
		{ID: "c6", Name: "Sin Asignar SA"},
	}
	return clients, users
}

func TestSalesRepSeesOnlyOwnClients(t *testing.T) {
	clients, users := visibilityFixture()
	juan := users[1]
	maria := users[2]

	juanView := ResolveVisibleClients(clients, juan, "", users)
	require.Len(t, juanView, 3)
	for _, c := range juanView {
		assert.Equal(t, "u-juan", c.AssignedToID)
	}

	mariaView := ResolveVisibleClients(clients, maria, "", users)
	assert.Len(t, mariaView, 2)
}

func TestSalesVisibilityMatchesOnStableID(t *testing.T) {
	clients, users := visibilityFixture()
	juan := users[1]

	// Stale display name on the client must not affect visibility
	clients[0].AssignedTo = "J. Perez (old name)"

	view := ResolveVisibleClients(clients, juan, "", users)
	require.Len(t, view, 3)
	assert.Equal(t, "c1", view[0].ID)
}

func TestAdminSeesEverything(t *testing.T) {
	clients, users := visibilityFixture()
	admin := users[0]

	view := ResolveVisibleClients(clients, admin, "", users)
	assert.Len(t, view, len(clients))
}

func TestAdminViewingAsMatchesRepView(t *testing.T) {
	clients, users := visibilityFixture()
	admin := users[0]
	juan := users[1]

	adminView := ResolveVisibleClients(clients, admin, "u-juan", users)
	repView := ResolveVisibleClients(clients, juan, "", users)
	assert.Equal(t, repView, adminView)
}

func TestAdminInvalidViewingAsIgnored(t *testing.T) {
	clients, users := visibilityFixture()
	admin := users[0]

	// Unknown id
	view := ResolveVisibleClients(clients, admin, "u-nobody", users)
	assert.Len(t, view, len(clients))

	// Inactive rep
	view = ResolveVisibleClients(clients, admin, "u-gone", users)
	assert.Len(t, view, len(clients))

	// Another admin is not a sales rep
	view = ResolveVisibleClients(clients, admin, "u-admin", users)
	assert.Len(t, view, len(clients))
}

func TestViewingAsIgnoredForSalesRole(t *testing.T) {
	clients, users := visibilityFixture()
	juan := users[1]

	// A rep cannot widen their own scope through the override
	view := ResolveVisibleClients(clients, juan, "u-maria", users)
	require.Len(t, view, 3)
	for _, c := range view {
		assert.Equal(t, "u-juan", c.AssignedToID)
	}
}

func TestNilUserSeesNothing(t *testing.T) {
	clients, users := visibilityFixture()
	assert.Nil(t, ResolveVisibleClients(clients, nil, "", users))
}

func TestVisibilityScope(t *testing.T) {
	_, users := visibilityFixture()
	admin := users[0]
	juan := users[1]

	assert.Equal(t, "u-juan", VisibilityScope(juan, "", users))
	assert.Equal(t, "all", VisibilityScope(admin, "", users))
	assert.Equal(t, "u-maria", VisibilityScope(admin, "u-maria", users))
	assert.Equal(t, "all", VisibilityScope(admin, "u-nobody", users))
	assert.Equal(t, "all", VisibilityScope(admin, "u-gone", users))
}
