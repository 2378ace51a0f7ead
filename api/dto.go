/*
dto.go - Data transfer objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupled from the
  domain model. Every response travels in a {success, message, data}
  envelope. Monetary values encode as fixed 2-decimal strings and dates as
  ISO days so clients never see binary floating-point artifacts.

VALIDATION:
  Boundary validation (minimum amount, minimum tenure) happens in handlers
  before the core is invoked. DTOs are pure data carriers.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/deposit-engine/deposit"
)

// =============================================================================
// RESPONSE ENVELOPE
// =============================================================================

// Envelope is the standard response wrapper.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// BookDepositRequest is the request to book a fixed deposit.
//
// InterestRate, StartDate, and MaturityDate are accepted for wire
// compatibility but the server is authoritative for financial terms: the
// rate always comes from the scheme table and the dates from today.
type BookDepositRequest struct {
	UserID       string          `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	Scheme       string          `json:"scheme"`
	TenureMonths int             `json:"tenure_months"`

	InterestRate decimal.Decimal `json:"interest_rate,omitempty"`
	StartDate    string          `json:"start_date,omitempty"`
	MaturityDate string          `json:"maturity_date,omitempty"`
}

// DepositDTO represents a fixed deposit in API responses.
type DepositDTO struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Amount          string `json:"amount"`
	Scheme          string `json:"scheme"`
	InterestRate    string `json:"interest_rate"`
	TenureMonths    int    `json:"tenure_months"`
	StartDate       string `json:"start_date"`
	MaturityDate    string `json:"maturity_date"`
	Status          string `json:"status"`
	BrokenDate      string `json:"broken_date,omitempty"`
	AccruedInterest string `json:"accrued_interest"`
	CreatedAt       string `json:"created_at"`
}

// InterestDTO reports the fresh accrued figure for a single deposit.
type InterestDTO struct {
	DepositID       string `json:"deposit_id"`
	Status          string `json:"status"`
	AccruedInterest string `json:"accrued_interest"`
	AsOf            string `json:"as_of"`
}

// CreateUserRequest is the request to create a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toDepositDTO(fd deposit.FixedDeposit) DepositDTO {
	dto := DepositDTO{
		ID:              string(fd.ID),
		UserID:          string(fd.UserID),
		Amount:          fd.Amount.StringFixed(2),
		Scheme:          fd.Scheme,
		InterestRate:    fd.InterestRate.String(),
		TenureMonths:    fd.TenureMonths,
		StartDate:       fd.StartDate.String(),
		MaturityDate:    fd.MaturityDate.String(),
		Status:          string(fd.Status),
		AccruedInterest: fd.AccruedInterest.StringFixed(2),
		CreatedAt:       fd.CreatedAt.Format(time.RFC3339),
	}
	if fd.BrokenDate != nil {
		dto.BrokenDate = fd.BrokenDate.String()
	}
	return dto
}

func toDepositDTOs(fds []deposit.FixedDeposit) []DepositDTO {
	dtos := make([]DepositDTO, len(fds))
	for i, fd := range fds {
		dtos[i] = toDepositDTO(fd)
	}
	return dtos
}

func toUserDTO(u deposit.User) UserDTO {
	return UserDTO{
		ID:        string(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
