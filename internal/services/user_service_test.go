package services

import (
	"testing"

	"gascrm-backend/internal/auth"
	"gascrm-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUserFields(t *testing.T) {
	cases := []struct {
		name     string
		userName string
		email    string
		role     string
		wantErr  string
	}{
		{name: "admin role", userName: "Admin General", email: "admin@gascrm.mx", role: models.RoleAdmin},
		{name: "sales role", userName: "Juan Pérez", email: "juan@gascrm.mx", role: models.RoleSales},
		{name: "empty role allowed", userName: "Juan Pérez", email: "juan@gascrm.mx"},
		{name: "unknown role", userName: "Juan Pérez", email: "juan@gascrm.mx", role: "superuser", wantErr: "invalid role"},
		{name: "missing name", email: "juan@gascrm.mx", role: models.RoleSales, wantErr: "name is required"},
		{name: "missing email", userName: "Juan Pérez", role: models.RoleSales, wantErr: "email is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateUserFields(tc.userName, tc.email, tc.role)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestMergeUserUpdatePreservesRoleWhenOmitted(t *testing.T) {
	u := &models.User{Name: "Juan Pérez", Email: "juan@gascrm.mx", Role: models.RoleSales}

	err := mergeUserUpdate(u, &models.UpdateUserRequest{
		Name:  "Juan P. Hernández",
		Email: "juan@gascrm.mx",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSales, u.Role)
	assert.Equal(t, "Juan P. Hernández", u.Name)
}

func TestMergeUserUpdateChangesRoleWhenGiven(t *testing.T) {
	u := &models.User{Name: "Juan Pérez", Email: "juan@gascrm.mx", Role: models.RoleSales}

	err := mergeUserUpdate(u, &models.UpdateUserRequest{
		Name:  "Juan Pérez",
		Email: "juan@gascrm.mx",
		Role:  models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestMergeUserUpdatePassword(t *testing.T) {
	u := &models.User{Name: "Juan Pérez", Email: "juan@gascrm.mx", Role: models.RoleSales}

	// Empty password leaves the stored hash untouched
	err := mergeUserUpdate(u, &models.UpdateUserRequest{Name: "Juan Pérez", Email: "juan@gascrm.mx"})
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)

	err = mergeUserUpdate(u, &models.UpdateUserRequest{Name: "Juan Pérez", Email: "juan@gascrm.mx", Password: "corto"})
	assert.ErrorContains(t, err, "at least 6 characters")

	err = mergeUserUpdate(u, &models.UpdateUserRequest{Name: "Juan Pérez", Email: "juan@gascrm.mx", Password: "secreto123"})
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword(u.PasswordHash, "secreto123"))
}

func TestMergeUserUpdateNormalizesEmail(t *testing.T) {
	u := &models.User{Name: "Juan Pérez", Email: "juan@gascrm.mx", Role: models.RoleSales}

	err := mergeUserUpdate(u, &models.UpdateUserRequest{Name: "Juan Pérez", Email: "  Juan@GasCRM.mx "})
	require.NoError(t, err)
	assert.Equal(t, "juan@gascrm.mx", u.Email)
}
