package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-marketplace/logger"
	"food-marketplace/models"
	"food-marketplace/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type denyAfterFirst struct{ used bool }

func (d *denyAfterFirst) Allow(context.Context, string, time.Duration) (bool, error) {
	if d.used {
		return false, nil
	}
	d.used = true
	return true, nil
}

func signup(t *testing.T, f *fixture) *models.Customer {
	t.Helper()
	result, err := f.customers.Signup(f.ctx, services.CustomerSignup{
		Email:    "Jane@Example.com",
		Password: "hunter22",
		Phone:    "5551234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Signature)
	return result.Data.(*models.Customer)
}

func TestSignupLoginVerify(t *testing.T) {
	f := newFixture(t)
	customer := signup(t, f)
	assert.Equal(t, "jane@example.com", customer.Email)
	assert.False(t, customer.Verified)

	otp := f.sms.sent["5551234"]
	require.NotZero(t, otp)

	_, err := f.customers.Signup(f.ctx, services.CustomerSignup{Email: "jane@example.com", Password: "other12", Phone: "5551234"})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = f.customers.Login(f.ctx, services.Credentials{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	login, err := f.customers.Login(f.ctx, services.Credentials{Email: "JANE@example.com", Password: "hunter22"})
	require.NoError(t, err)
	claims, err := f.tokens.ValidateToken(login.Signature)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.False(t, claims.Verified)

	_, err = f.customers.Verify(f.ctx, customer.ID.Hex(), otp+1)
	assert.ErrorIs(t, err, models.ErrValidation)

	verified, err := f.customers.Verify(f.ctx, customer.ID.Hex(), otp)
	require.NoError(t, err)
	claims, err = f.tokens.ValidateToken(verified.Signature)
	require.NoError(t, err)
	assert.True(t, claims.Verified)

	_, err = f.customers.Verify(f.ctx, customer.ID.Hex(), otp)
	assert.ErrorIs(t, err, models.ErrValidation, "an otp is single use")

	stored, err := f.customers.Profile(f.ctx, customer.ID.Hex())
	require.NoError(t, err)
	assert.True(t, stored.Verified)
}

func TestVerifyRejectsExpiredOtp(t *testing.T) {
	f := newFixture(t)
	customer := signup(t, f)
	otp := f.sms.sent["5551234"]

	stored, err := f.stores.Customers.FindByID(f.ctx, customer.ID)
	require.NoError(t, err)
	f.customers.SetClock(func() time.Time { return stored.Otp_expiry.Add(time.Millisecond) })

	_, err = f.customers.Verify(f.ctx, customer.ID.Hex(), otp)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSignupSurvivesSmsFailure(t *testing.T) {
	f := newFixture(t)
	f.sms.err = errors.New("gateway down")
	customer := signup(t, f)
	assert.NotEmpty(t, customer.ID.Hex())
}

func TestRequestOtpIsThrottled(t *testing.T) {
	f := newFixture(t)
	customer := signup(t, f)

	svc := services.NewCustomerService(f.stores.Customers, f.tokens, f.sms, &denyAfterFirst{}, time.Minute, logger.Nop())
	require.NoError(t, svc.RequestOtp(f.ctx, customer.ID.Hex()))
	reissued := f.sms.sent["5551234"]

	err := svc.RequestOtp(f.ctx, customer.ID.Hex())
	assert.ErrorIs(t, err, models.ErrRateLimited)

	_, err = svc.Verify(f.ctx, customer.ID.Hex(), reissued)
	assert.NoError(t, err)
}

func TestEditProfileKeepsBlankFields(t *testing.T) {
	f := newFixture(t)
	customer := signup(t, f)

	_, err := f.customers.EditProfile(f.ctx, customer.ID.Hex(), models.ProfileUpdate{First_name: "Jane", Address: "1 Main St"})
	require.NoError(t, err)
	updated, err := f.customers.EditProfile(f.ctx, customer.ID.Hex(), models.ProfileUpdate{Last_name: "Doe"})
	require.NoError(t, err)

	assert.Equal(t, "Jane", updated.First_name)
	assert.Equal(t, "Doe", updated.Last_name)
	assert.Equal(t, "1 Main St", updated.Address)

	assert.False(t, updated.Verified)
}
