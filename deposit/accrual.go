/*
accrual.go - Simple daily interest accrual

PURPOSE:
  Computes the interest accrued on a fixed deposit between its start date and
  a status-dependent cutoff date. Interest is recomputed from first principles
  on every read instead of being incrementally persisted: there is no
  background accrual job, the reported figure is always consistent with "now"
  no matter how long the deposit sat dormant, and the stored AccruedInterest
  column stays purely advisory.

ALGORITHM (simple daily interest, no compounding):
  1. cutoff  = AccrualCutoff(fd, today)      status-dependent, see below
  2. days    = cutoff - start, whole days    negative short-circuits to zero
  3. accrued = amount * rate/100 * days/365  exact decimal arithmetic
  4. round half-up to 2 places at the final division only
  5. clamp to >= 0

CUTOFF RULES:
  ACTIVE   -> today
  BROKEN   -> broken date, or today if the broken date is missing
  MATURED  -> maturity date, or today if the maturity date is missing
  unknown  -> today

  The fallbacks deliberately mask data anomalies (a BROKEN deposit without a
  broken date) instead of raising errors. Tightening this masks-vs-fails
  policy is a product decision, not a cleanup.

NUMERIC SEMANTICS:
  This is money. Amounts, rates, and every intermediate product use
  decimal.Decimal; binary floating-point never enters the computation.
  decimal's default division precision (16 digits) covers the guard precision
  needed before the final DivRound, which rounds half away from zero - for
  the non-negative values produced here that is exactly round-half-up.
*/
package deposit

import "github.com/shopspring/decimal"

var (
	oneHundred  = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(365)
)

// AccrualCutoff returns the date on which interest stops accruing for the
// deposit, given the current calendar date.
func AccrualCutoff(fd *FixedDeposit, today Date) Date {
	switch fd.Status {
	case StatusActive:
		return today
	case StatusBroken:
		if fd.BrokenDate != nil {
			return *fd.BrokenDate
		}
		return today
	case StatusMatured:
		if !fd.MaturityDate.IsZero() {
			return fd.MaturityDate
		}
		return today
	default:
		return today
	}
}

// AccruedInterest computes the interest accrued on fd as of today, rounded
// half-up to 2 decimal places. Never negative.
func AccruedInterest(fd *FixedDeposit, today Date) decimal.Decimal {
	if fd == nil {
		return decimal.Zero
	}

	start := fd.StartDate
	if start.IsZero() {
		start = today
	}

	cutoff := AccrualCutoff(fd, today)
	if cutoff.Before(start) {
		return decimal.Zero
	}

	days := decimal.NewFromInt(int64(DaysBetween(start, cutoff)))
	annualRate := fd.InterestRate.Div(oneHundred)

	accrued := fd.Amount.
		Mul(annualRate).
		Mul(days).
		DivRound(daysPerYear, 2)

	if accrued.IsNegative() {
		return decimal.Zero
	}
	return accrued
}
