package courier_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, code string) kernel.Zone {
	t.Helper()
	zone, err := kernel.NewZone(code)
	require.NoError(t, err)
	return zone
}

func TestNewCourier(t *testing.T) {
	t.Run("valid courier starts unverified and active", func(t *testing.T) {
		now := time.Now()
		c, err := courier.NewCourier(kernel.NewUUID(), "Ravi Kumar", mustZone(t, "110001"), now)

		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", c.FullName())
		assert.Equal(t, courier.Unverified, c.VerificationStatus())
		assert.Equal(t, courier.Active, c.AccountStatus())
		assert.False(t, c.IsVerified())
		assert.Equal(t, now, c.CreatedAt())
		assert.Equal(t, now, c.UpdatedAt())
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "", mustZone(t, "110001"), time.Now())
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid zone is rejected", func(t *testing.T) {
		var zone kernel.Zone
		_, err := courier.NewCourier(kernel.NewUUID(), "Ravi Kumar", zone, time.Now())
		require.Error(t, err)
	})

	t.Run("invalid id is rejected", func(t *testing.T) {
		var id kernel.UUID
		_, err := courier.NewCourier(id, "Ravi Kumar", mustZone(t, "110001"), time.Now())
		require.Error(t, err)
	})
}

func TestCourier_Verification(t *testing.T) {
	newCourier := func(t *testing.T) *courier.Courier {
		t.Helper()
		c, err := courier.NewCourier(kernel.NewUUID(), "Ravi Kumar", mustZone(t, "110001"), time.Now())
		require.NoError(t, err)
		return c
	}

	t.Run("verify", func(t *testing.T) {
		c := newCourier(t)
		later := c.CreatedAt().Add(time.Hour)

		c.Verify(later)

		assert.True(t, c.IsVerified())
		assert.Equal(t, later, c.UpdatedAt())
	})

	t.Run("reject", func(t *testing.T) {
		c := newCourier(t)

		c.Reject(time.Now())

		assert.Equal(t, courier.Rejected, c.VerificationStatus())
		assert.False(t, c.IsVerified())
	})
}

func TestRestoreCourier(t *testing.T) {
	t.Run("restores persisted state", func(t *testing.T) {
		createdAt := time.Now().Add(-24 * time.Hour)
		updatedAt := time.Now()

		c, err := courier.RestoreCourier(
			kernel.NewUUID(),
			"Meera Nair",
			mustZone(t, "560034"),
			courier.Verified,
			courier.Suspended,
			createdAt,
			updatedAt,
		)

		require.NoError(t, err)
		assert.True(t, c.IsVerified())
		assert.Equal(t, courier.Suspended, c.AccountStatus())
		assert.Equal(t, createdAt, c.CreatedAt())
		assert.Equal(t, updatedAt, c.UpdatedAt())
	})

	t.Run("unknown verification status is rejected", func(t *testing.T) {
		_, err := courier.RestoreCourier(
			kernel.NewUUID(),
			"Meera Nair",
			mustZone(t, "560034"),
			courier.VerificationStatus(42),
			courier.Active,
			time.Now(),
			time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestVerificationStatusFromString(t *testing.T) {
	for str, want := range map[string]courier.VerificationStatus{
		"UNVERIFIED": courier.Unverified,
		"VERIFIED":   courier.Verified,
		"REJECTED":   courier.Rejected,
	} {
		got, err := courier.VerificationStatusFromString(str)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := courier.VerificationStatusFromString("verified")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCourier_Validate(t *testing.T) {
	t.Run("nil courier is invalid", func(t *testing.T) {
		var c *courier.Courier
		assert.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var c courier.Courier
		assert.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}
