package auth

import (
	"testing"
	"time"

	"cosmiccraft/config"
	"cosmiccraft/internal/domain/entity"
	"cosmiccraft/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTL = 24 * time.Hour

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	user := &entity.User{ID: 42, Email: "ann@example.com", Role: entity.RoleUser}

	accessToken, refreshToken, err := svc.GenerateTokens(user)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	claims, err := svc.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTService_RejectsRefreshTokenAsAccess(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	_, refreshToken, err := svc.GenerateTokens(&entity.User{ID: 1, Role: entity.RoleUser})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	issued := time.Now().Add(-time.Hour)
	svc.(*jwtService).now = func() time.Time { return issued }
	accessToken, _, err := svc.GenerateTokens(&entity.User{ID: 1, Role: entity.RoleUser})
	require.NoError(t, err)

	svc.(*jwtService).now = time.Now
	claims, err := svc.ValidateAccessToken(accessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MissingSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, svc.GetRefreshTokenDuration())
}
