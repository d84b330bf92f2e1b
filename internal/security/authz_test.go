package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"prestige-rentals-backend/internal/domain"
)

func TestGuardCanBookFor(t *testing.T) {
	guard := NewGuard()
	customer := domain.Principal{ID: 7, Role: domain.RoleCustomer}
	employee := domain.Principal{ID: 1, Role: domain.RoleEmployee}

	t.Run("Customer books for self", func(t *testing.T) {
		assert.NoError(t, guard.CanBookFor(customer, 7))
	})

	t.Run("Customer cannot book for another customer", func(t *testing.T) {
		err := guard.CanBookFor(customer, 8)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Employee books for anyone", func(t *testing.T) {
		assert.NoError(t, guard.CanBookFor(employee, 7))
		assert.NoError(t, guard.CanBookFor(employee, 8))
	})
}

func TestGuardRentalOwnership(t *testing.T) {
	guard := NewGuard()
	rental := &domain.Rental{ID: 42, CustomerID: 7}
	owner := domain.Principal{ID: 7, Role: domain.RoleCustomer}
	stranger := domain.Principal{ID: 8, Role: domain.RoleCustomer}
	employee := domain.Principal{ID: 1, Role: domain.RoleEmployee}

	t.Run("Return", func(t *testing.T) {
		assert.NoError(t, guard.CanReturnRental(owner, rental))
		assert.ErrorIs(t, guard.CanReturnRental(stranger, rental), domain.ErrUnauthorized)
		assert.NoError(t, guard.CanReturnRental(employee, rental))
	})

	t.Run("Delete", func(t *testing.T) {
		assert.NoError(t, guard.CanDeleteRental(owner, rental))
		assert.ErrorIs(t, guard.CanDeleteRental(stranger, rental), domain.ErrUnauthorized)
		assert.NoError(t, guard.CanDeleteRental(employee, rental))
	})

	t.Run("View", func(t *testing.T) {
		assert.NoError(t, guard.CanViewRental(owner, rental))
		assert.ErrorIs(t, guard.CanViewRental(stranger, rental), domain.ErrUnauthorized)
		assert.NoError(t, guard.CanViewRental(employee, rental))
	})
}

func TestGuardCanManageFleet(t *testing.T) {
	guard := NewGuard()

	assert.NoError(t, guard.CanManageFleet(domain.Principal{ID: 1, Role: domain.RoleEmployee}))
	assert.ErrorIs(t, guard.CanManageFleet(domain.Principal{ID: 7, Role: domain.RoleCustomer}), domain.ErrUnauthorized)
}
