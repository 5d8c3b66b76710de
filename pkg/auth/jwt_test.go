package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateToken(userID, "admin-user", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin-user", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTManager_WrongSecretRejected(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := manager.GenerateToken(uuid.New(), "admin-user", "admin")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_ExpiredTokenRejected(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(uuid.New(), "admin-user", "admin")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("Basic abc123")
	assert.Error(t, err)
}
