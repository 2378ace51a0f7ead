// Package deposit implements the fixed-deposit booking and interest accrual core.
// The HTTP layer and the persistence engine are collaborators consumed through
// the Store and UserDirectory interfaces; everything in this package is
// synchronous request/response computation with no shared mutable state.
package deposit

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

// DepositID is an opaque, store-assigned identifier. Immutable once assigned.
type DepositID string

// UserID identifies the owning user.
type UserID string

// =============================================================================
// LIFECYCLE STATUS
// =============================================================================

// Status is the lifecycle state of a fixed deposit.
type Status string

const (
	// StatusActive means the deposit is earning interest up to today.
	StatusActive Status = "ACTIVE"

	// StatusMatured means the deposit reached its maturity date; accrual
	// stops at the maturity date.
	StatusMatured Status = "MATURED"

	// StatusBroken means the deposit was withdrawn early; accrual stops at
	// the broken date.
	StatusBroken Status = "BROKEN"
)

// =============================================================================
// FIXED DEPOSIT - the sole domain entity
// =============================================================================

// FixedDeposit tracks a single deposit's terms and lifecycle.
//
// AccruedInterest is an advisory last-computed value: it is recomputed from
// first principles on every read and overwritten before the entity leaves the
// core, so the persisted figure is never trusted as a source of truth.
type FixedDeposit struct {
	ID           DepositID
	UserID       UserID
	Amount       decimal.Decimal
	Scheme       string
	InterestRate decimal.Decimal // annual percentage, fixed at booking time
	TenureMonths int
	StartDate    Date
	MaturityDate Date // StartDate + TenureMonths months, computed once
	Status       Status
	BrokenDate   *Date // set if and only if Status == StatusBroken

	AccruedInterest decimal.Decimal

	CreatedAt time.Time
}

// =============================================================================
// USER - external collaborator's entity, carried for lookups only
// =============================================================================

// User is the owning account. The account subsystem proper (auth, profiles)
// lives outside this core; only identity and display fields are needed here.
type User struct {
	ID        UserID
	Name      string
	Email     string
	CreatedAt time.Time
}
