/*
handlers.go - HTTP handlers for the deposit service

ENDPOINTS:
  POST /api/fd/book             Book a fixed deposit
  GET  /api/fd/user/{userId}    List a user's deposits (interest recomputed)
  GET  /api/fd/{id}/interest    Fresh accrued interest for one deposit
  POST /api/fd/{id}/break       Break an active deposit early
  POST /api/fd/{id}/mature      Mark a deposit matured
  POST /api/users               Create a user
  GET  /api/users/{id}          Get a user

ERROR HANDLING:
  Errors are returned in the standard envelope with the appropriate status:
  - 400: Validation failures (amount below minimum, bad tenure, bad body)
  - 404: Unknown user or deposit
  - 409: Impossible lifecycle transition
  - 500: Storage and other internal failures
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/deposit-engine/deposit"
)

// UserStore is the user persistence surface the API needs beyond the
// directory lookups the core consumes.
type UserStore interface {
	deposit.UserDirectory
	SaveUser(ctx context.Context, u deposit.User) (*deposit.User, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Deposits *deposit.Service
	Users    UserStore

	log zerolog.Logger
}

// NewHandler creates a new handler.
func NewHandler(deposits *deposit.Service, users UserStore, log zerolog.Logger) *Handler {
	return &Handler{Deposits: deposits, Users: users, log: log}
}

// =============================================================================
// DEPOSIT HANDLERS
// =============================================================================

// BookDeposit books a new fixed deposit.
// POST /api/fd/book
func (h *Handler) BookDeposit(w http.ResponseWriter, r *http.Request) {
	var req BookDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Friendly boundary messages; the core enforces the same floors with
	// sentinel errors for non-HTTP callers.
	if req.Amount.LessThan(deposit.MinBookAmount) {
		writeError(w, http.StatusBadRequest, "Invalid deposit amount. Minimum amount should be 1000.")
		return
	}
	if req.TenureMonths < 1 {
		writeError(w, http.StatusBadRequest, "Invalid tenure. Minimum tenure is 1 month.")
		return
	}

	fd, err := h.Deposits.Book(r.Context(), deposit.BookRequest{
		UserID:       deposit.UserID(req.UserID),
		Amount:       req.Amount,
		Scheme:       req.Scheme,
		TenureMonths: req.TenureMonths,
	})
	if err != nil {
		h.respondServiceError(w, "book deposit", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Fixed deposit booked successfully.", toDepositDTO(*fd))
}

// ListUserDeposits returns all deposits for a user with accrued interest
// recomputed at call time. A user with no deposits gets an empty list.
// GET /api/fd/user/{userId}
func (h *Handler) ListUserDeposits(w http.ResponseWriter, r *http.Request) {
	userID := deposit.UserID(chi.URLParam(r, "userId"))

	fds, err := h.Deposits.ListByUser(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "list deposits", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Fixed deposits retrieved successfully.", toDepositDTOs(fds))
}

// GetDepositInterest returns the fresh accrued figure for a single deposit.
// GET /api/fd/{id}/interest
func (h *Handler) GetDepositInterest(w http.ResponseWriter, r *http.Request) {
	id := deposit.DepositID(chi.URLParam(r, "id"))

	fd, err := h.Deposits.Interest(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "get deposit interest", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Accrued interest calculated successfully.", InterestDTO{
		DepositID:       string(fd.ID),
		Status:          string(fd.Status),
		AccruedInterest: fd.AccruedInterest.StringFixed(2),
		AsOf:            deposit.Today().String(),
	})
}

// BreakDeposit withdraws an active deposit early.
// POST /api/fd/{id}/break
func (h *Handler) BreakDeposit(w http.ResponseWriter, r *http.Request) {
	id := deposit.DepositID(chi.URLParam(r, "id"))

	fd, err := h.Deposits.Break(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "break deposit", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Fixed deposit broken successfully.", toDepositDTO(*fd))
}

// MatureDeposit marks a deposit matured once its maturity date has passed.
// POST /api/fd/{id}/mature
func (h *Handler) MatureDeposit(w http.ResponseWriter, r *http.Request) {
	id := deposit.DepositID(chi.URLParam(r, "id"))

	fd, err := h.Deposits.Mature(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "mature deposit", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Fixed deposit matured successfully.", toDepositDTO(*fd))
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// CreateUser creates a new user.
// POST /api/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	u, err := h.Users.SaveUser(r.Context(), deposit.User{Name: req.Name, Email: req.Email})
	if err != nil {
		h.log.Error().Err(err).Msg("create user failed")
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeSuccess(w, http.StatusCreated, "User created successfully.", toUserDTO(*u))
}

// GetUser returns a single user.
// GET /api/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := deposit.UserID(chi.URLParam(r, "id"))

	u, err := h.Users.GetUser(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("get user failed")
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "Resource not found: user")
		return
	}

	writeSuccess(w, http.StatusOK, "User retrieved successfully.", toUserDTO(*u))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// respondServiceError maps core errors onto HTTP statuses: missing
// references are 404, impossible transitions 409, bad input 400, and
// anything else is an internal failure.
func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case deposit.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Resource not found: "+err.Error())
	case errors.Is(err, deposit.ErrDepositNotActive) || errors.Is(err, deposit.ErrNotYetMatured):
		writeError(w, http.StatusConflict, "Invalid state: "+err.Error())
	case deposit.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
	default:
		h.log.Error().Err(err).Str("op", op).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
