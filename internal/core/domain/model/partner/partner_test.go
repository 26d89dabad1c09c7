package partner_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivePartner(t *testing.T) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner(
		kernel.NewUUID(), "Ravi Kumar", "ravi@dispatch.example", "9800000002",
		[]string{"Andheri", "Bandra"}, mustShift(t, "09:00", "18:00"))
	require.NoError(t, err)
	return p
}

func TestNewPartner(t *testing.T) {
	t.Run("should create active partner with zero load", func(t *testing.T) {
		p := newActivePartner(t)

		assert.Equal(t, partner.Active, p.Status())
		assert.True(t, p.IsActive())
		assert.Equal(t, 0, p.CurrentLoad())
		assert.Equal(t, partner.Metrics{}, p.PartnerMetrics())
		require.NoError(t, p.Validate())
	})

	t.Run("should report every missing required field", func(t *testing.T) {
		_, err := partner.NewPartner(kernel.NewUUID(), "", "", "", nil, partner.Shift{})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"name", "email", "phone", "areas"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("should reject empty area entries", func(t *testing.T) {
		_, err := partner.NewPartner(
			kernel.NewUUID(), "Ravi", "r@d.example", "98", []string{"Andheri", ""},
			mustShift(t, "09:00", "18:00"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "areas[1]")
	})
}

func TestRestorePartner(t *testing.T) {
	t.Run("should restore persisted state", func(t *testing.T) {
		p, err := partner.RestorePartner(
			kernel.NewUUID(), "Meena", "meena@dispatch.example", "9800000003",
			partner.Inactive, 2, []string{"Colaba"}, mustShift(t, "22:00", "06:00"),
			partner.Metrics{Rating: 4.5, CompletedOrders: 10, CancelledOrders: 2})

		require.NoError(t, err)
		assert.Equal(t, partner.Inactive, p.Status())
		assert.Equal(t, 2, p.CurrentLoad())
		assert.Equal(t, 10, p.PartnerMetrics().CompletedOrders)
	})

	t.Run("should reject load outside bounds", func(t *testing.T) {
		for _, load := range []int{-1, partner.DefaultMaxLoad + 1} {
			_, err := partner.RestorePartner(
				kernel.NewUUID(), "Meena", "m@d.example", "98",
				partner.Active, load, []string{"Colaba"}, mustShift(t, "09:00", "18:00"),
				partner.Metrics{})

			require.Error(t, err, load)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, load)
		}
	})
}

func TestPartner_ServesArea(t *testing.T) {
	p := newActivePartner(t)

	assert.True(t, p.ServesArea("Andheri"))
	assert.True(t, p.ServesArea("Bandra"))
	assert.False(t, p.ServesArea("Colaba"))
	assert.False(t, p.ServesArea("andheri"), "matching is exact, not case-insensitive")
}

func TestPartner_TakeOrder(t *testing.T) {
	t.Run("should increment load up to the ceiling", func(t *testing.T) {
		p := newActivePartner(t)

		for i := 1; i <= partner.DefaultMaxLoad; i++ {
			require.NoError(t, p.TakeOrder(partner.DefaultMaxLoad))
			assert.Equal(t, i, p.CurrentLoad())
		}
	})

	t.Run("should reject orders at capacity", func(t *testing.T) {
		p := newActivePartner(t)
		for i := 0; i < partner.DefaultMaxLoad; i++ {
			require.NoError(t, p.TakeOrder(partner.DefaultMaxLoad))
		}

		err := p.TakeOrder(partner.DefaultMaxLoad)

		require.ErrorIs(t, err, partner.ErrPartnerAtCapacity)
		assert.Equal(t, partner.DefaultMaxLoad, p.CurrentLoad())
	})

	t.Run("should honor a custom ceiling", func(t *testing.T) {
		p := newActivePartner(t)

		require.NoError(t, p.TakeOrder(1))
		require.ErrorIs(t, p.TakeOrder(1), partner.ErrPartnerAtCapacity)
	})
}

func TestPartner_ReleaseOrder(t *testing.T) {
	t.Run("delivery decrements load and bumps completed", func(t *testing.T) {
		p := newActivePartner(t)
		require.NoError(t, p.TakeOrder(partner.DefaultMaxLoad))

		p.ReleaseOrder(true)

		assert.Equal(t, 0, p.CurrentLoad())
		assert.Equal(t, 1, p.PartnerMetrics().CompletedOrders)
		assert.Equal(t, 0, p.PartnerMetrics().CancelledOrders)
	})

	t.Run("cancellation decrements load and bumps cancelled", func(t *testing.T) {
		p := newActivePartner(t)
		require.NoError(t, p.TakeOrder(partner.DefaultMaxLoad))

		p.ReleaseOrder(false)

		assert.Equal(t, 0, p.CurrentLoad())
		assert.Equal(t, 1, p.PartnerMetrics().CancelledOrders)
	})

	t.Run("load floors at zero", func(t *testing.T) {
		p := newActivePartner(t)

		p.ReleaseOrder(true)

		assert.Equal(t, 0, p.CurrentLoad())
	})
}

func TestPartner_CompletionRate(t *testing.T) {
	t.Run("no terminal orders yields zero", func(t *testing.T) {
		p := newActivePartner(t)

		assert.InDelta(t, 0, p.CompletionRate(), 0.001)
	})

	t.Run("rate is completed over terminal", func(t *testing.T) {
		p, err := partner.RestorePartner(
			kernel.NewUUID(), "Meena", "m@d.example", "98",
			partner.Active, 0, []string{"Colaba"}, mustShift(t, "09:00", "18:00"),
			partner.Metrics{CompletedOrders: 3, CancelledOrders: 1})
		require.NoError(t, err)

		assert.InDelta(t, 75, p.CompletionRate(), 0.001)
	})
}

func TestPartner_Updates(t *testing.T) {
	t.Run("status can be flipped", func(t *testing.T) {
		p := newActivePartner(t)

		require.NoError(t, p.SetStatus(partner.Inactive))
		assert.False(t, p.IsActive())
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		p := newActivePartner(t)

		require.Error(t, p.SetStatus(partner.StatusUnknown))
	})

	t.Run("contact details are replaced together", func(t *testing.T) {
		p := newActivePartner(t)

		require.NoError(t, p.SetContact("New Name", "new@dispatch.example", "9811111111"))
		assert.Equal(t, "New Name", p.Name())

		require.Error(t, p.SetContact("", "x@d.example", "98"))
	})
}

func TestPartner_Validate(t *testing.T) {
	var nilPartner *partner.Partner
	assert.Equal(t, partner.ErrPartnerIsNotConstructed, nilPartner.Validate())

	var zero partner.Partner
	assert.Equal(t, partner.ErrPartnerIsNotConstructed, zero.Validate())
}
