package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	userID := primitive.NewObjectID()

	token, err := m.Issue(userID)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), m.Remaining(claims).Seconds(), 5)

	other, err := m.Issue(userID)
	require.NoError(t, err)
	otherClaims, err := m.Parse(other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID)

	_, err = NewTokenManager("another-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenManagerRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Token has expired", err.Error())
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := parseID(" "+id.Hex()+" ", "recipe")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = parseID("xyz", "recipe")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Equal(t, "Invalid recipe ID", err.Error())
}
