package security

import (
	"fmt"

	"prestige-rentals-backend/internal/domain"
)

// Guard decides whether a principal may perform a mutation. Every check runs
// before the transaction coordinator is invoked, so a rejected request never
// touches any state. Employees hold administrative override on all rental,
// car and maintenance mutations; customers act only on their own records.
type Guard struct{}

func NewGuard() Guard {
	return Guard{}
}

// CanBookFor allows a customer to book only for their own customer id.
func (Guard) CanBookFor(p domain.Principal, customerID int32) error {
	if p.IsEmployee() {
		return nil
	}
	if p.Role == domain.RoleCustomer && p.ID == customerID {
		return nil
	}
	return fmt.Errorf("book rental for customer %d: %w", customerID, domain.ErrUnauthorized)
}

// CanReturnRental allows the recorded customer or any employee.
func (Guard) CanReturnRental(p domain.Principal, rental *domain.Rental) error {
	if p.IsEmployee() {
		return nil
	}
	if p.Role == domain.RoleCustomer && p.ID == rental.CustomerID {
		return nil
	}
	return fmt.Errorf("return rental %d: %w", rental.ID, domain.ErrUnauthorized)
}

// CanDeleteRental allows the recorded customer or any employee. Whether the
// rental is deletable at all (returned, not active) is the state machine's
// call, not the guard's.
func (Guard) CanDeleteRental(p domain.Principal, rental *domain.Rental) error {
	if p.IsEmployee() {
		return nil
	}
	if p.Role == domain.RoleCustomer && p.ID == rental.CustomerID {
		return nil
	}
	return fmt.Errorf("delete rental %d: %w", rental.ID, domain.ErrUnauthorized)
}

// CanViewRental mirrors the ownership rule for reads.
func (Guard) CanViewRental(p domain.Principal, rental *domain.Rental) error {
	if p.IsEmployee() {
		return nil
	}
	if p.Role == domain.RoleCustomer && p.ID == rental.CustomerID {
		return nil
	}
	return fmt.Errorf("view rental %d: %w", rental.ID, domain.ErrUnauthorized)
}

// CanManageFleet covers car creation and maintenance scheduling/completion.
func (Guard) CanManageFleet(p domain.Principal) error {
	if p.IsEmployee() {
		return nil
	}
	return fmt.Errorf("manage fleet: %w", domain.ErrUnauthorized)
}
