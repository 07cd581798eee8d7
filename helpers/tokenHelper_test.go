package helpers

import (
	"errors"
	"testing"
	"time"

	"food-marketplace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTripCarriesPrincipal(t *testing.T) {
	h := NewTokenHelper("secret", TokenTTL)
	want := models.Principal{ID: "64b7f0c2a1b2c3d4e5f60718", Email: "a@b.io", Verified: true, Role: models.RoleVendor}

	signed, err := h.GenerateToken(want)
	require.NoError(t, err)

	claims, err := h.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, want, claims.Principal())
	assert.WithinDuration(t, time.Now().Add(TokenTTL), time.Unix(claims.ExpiresAt, 0), 5*time.Second)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokenHelper("one", TokenTTL).GenerateToken(models.Principal{ID: "x", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = NewTokenHelper("two", TokenTTL).ValidateToken(signed)
	assert.True(t, errors.Is(err, models.ErrUnauthorized))
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	h := NewTokenHelper("secret", -time.Minute)
	signed, err := h.GenerateToken(models.Principal{ID: "x", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = h.ValidateToken(signed)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenHelper("secret", TokenTTL).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
