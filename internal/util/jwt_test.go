package util

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests-only"

func testUser() *model.User {
	u := &model.User{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  model.Student,
	}
	u.ID = 42
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}
