package auth

import (
	"testing"

	"gascrm-backend/internal/config"
	"gascrm-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "gascrm-backend"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig("test-secret"))

	user := &models.User{
		ID:       "u-1",
		Email:    "juan@gascrm.mx",
		Role:     models.RoleSales,
		IsActive: true,
	}

	token, err := manager.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "juan@gascrm.mx", claims.Email)
	assert.Equal(t, models.RoleSales, claims.Role)
	assert.True(t, claims.IsActive)
	assert.Equal(t, "gascrm-backend", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testJWTConfig("test-secret"))
	other := NewJWTManager(testJWTConfig("another-secret"))

	token, err := manager.GenerateToken(&models.User{ID: "u-1", Email: "juan@gascrm.mx", Role: models.RoleSales})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(testJWTConfig("test-secret"))

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}
