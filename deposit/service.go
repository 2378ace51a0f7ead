package deposit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// Store persists deposits. Implementations return (nil, nil) for lookups
// that find nothing; the service translates that into not-found errors.
type Store interface {
	// SaveDeposit persists a new deposit and returns it with its
	// store-assigned identifier.
	SaveDeposit(ctx context.Context, fd FixedDeposit) (*FixedDeposit, error)

	// GetDeposit returns a deposit by id, or (nil, nil) if absent.
	GetDeposit(ctx context.Context, id DepositID) (*FixedDeposit, error)

	// ListDepositsByUser returns all deposits owned by the user, in no
	// particular order. Empty result is not an error.
	ListDepositsByUser(ctx context.Context, userID UserID) ([]FixedDeposit, error)

	// UpdateDeposit replaces the stored deposit with the given state.
	UpdateDeposit(ctx context.Context, fd FixedDeposit) error
}

// UserDirectory resolves deposit owners. The account subsystem behind it is
// external to this core.
type UserDirectory interface {
	// GetUser returns a user by id, or (nil, nil) if absent.
	GetUser(ctx context.Context, id UserID) (*User, error)
}

// =============================================================================
// BOOKING REQUEST
// =============================================================================

// BookRequest carries the client's booking parameters. InterestRate,
// StartDate, and MaturityDate are accepted into the DTO but never honored:
// the service is authoritative for financial terms and always computes its
// own rate from the scheme and its own dates from today.
type BookRequest struct {
	UserID       UserID
	Amount       decimal.Decimal
	Scheme       string
	TenureMonths int

	InterestRate decimal.Decimal
	StartDate    Date
	MaturityDate Date
}

// =============================================================================
// SERVICE
// =============================================================================

// MinBookAmount is the smallest amount a deposit can be booked with.
var MinBookAmount = decimal.NewFromInt(1000)

// Service orchestrates booking, retrieval, and lifecycle transitions.
type Service struct {
	store Store
	users UserDirectory
}

// NewService creates a deposit service on top of the given collaborators.
func NewService(store Store, users UserDirectory) *Service {
	return &Service{store: store, users: users}
}

// Book creates a new ACTIVE deposit for the requested user. The amount must
// meet MinBookAmount and the tenure must be at least one month; the owning
// user must exist; the interest rate is resolved from the scheme, the start date
// is today, and the maturity date is start + tenure months. Returns the
// persisted deposit including its store-assigned id.
func (s *Service) Book(ctx context.Context, req BookRequest) (*FixedDeposit, error) {
	if req.Amount.LessThan(MinBookAmount) {
		return nil, fmt.Errorf("%w: %s is below the %s minimum", ErrInvalidAmount, req.Amount, MinBookAmount)
	}
	if req.TenureMonths < 1 {
		return nil, fmt.Errorf("%w: %d months", ErrInvalidTenure, req.TenureMonths)
	}

	user, err := s.users.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("look up user %s: %w", req.UserID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	start := Today()
	fd := FixedDeposit{
		UserID:       user.ID,
		Amount:       req.Amount,
		Scheme:       req.Scheme,
		InterestRate: RateForScheme(req.Scheme),
		TenureMonths: req.TenureMonths,
		StartDate:    start,
		MaturityDate: start.AddMonths(req.TenureMonths),
		Status:       StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
	// Necessarily ~0 since start == today; computed anyway so the persisted
	// advisory value starts consistent.
	fd.AccruedInterest = AccruedInterest(&fd, start)

	saved, err := s.store.SaveDeposit(ctx, fd)
	if err != nil {
		return nil, fmt.Errorf("save deposit: %w", err)
	}
	return saved, nil
}

// ListByUser returns all deposits owned by the user with accrued interest
// recomputed as of today. A user with no deposits (including a nonexistent
// user) yields an empty slice, not an error.
func (s *Service) ListByUser(ctx context.Context, userID UserID) ([]FixedDeposit, error) {
	fds, err := s.store.ListDepositsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list deposits for user %s: %w", userID, err)
	}

	today := Today()
	for i := range fds {
		fds[i].AccruedInterest = AccruedInterest(&fds[i], today)
	}
	if fds == nil {
		fds = []FixedDeposit{}
	}
	return fds, nil
}

// Interest returns a single deposit with its accrued interest recomputed as
// of today.
func (s *Service) Interest(ctx context.Context, id DepositID) (*FixedDeposit, error) {
	fd, err := s.getDeposit(ctx, id)
	if err != nil {
		return nil, err
	}
	fd.AccruedInterest = AccruedInterest(fd, Today())
	return fd, nil
}

// Break withdraws an ACTIVE deposit early. The broken date is stamped with
// today, which freezes accrual at that date for all subsequent reads.
func (s *Service) Break(ctx context.Context, id DepositID) (*FixedDeposit, error) {
	fd, err := s.getDeposit(ctx, id)
	if err != nil {
		return nil, err
	}
	if fd.Status != StatusActive {
		return nil, ErrDepositNotActive
	}

	today := Today()
	fd.Status = StatusBroken
	fd.BrokenDate = &today
	fd.AccruedInterest = AccruedInterest(fd, today)

	if err := s.store.UpdateDeposit(ctx, *fd); err != nil {
		return nil, fmt.Errorf("update deposit %s: %w", id, err)
	}
	return fd, nil
}

// Mature marks an ACTIVE deposit as MATURED once its maturity date has
// passed. Accrual is cut off at the maturity date.
func (s *Service) Mature(ctx context.Context, id DepositID) (*FixedDeposit, error) {
	fd, err := s.getDeposit(ctx, id)
	if err != nil {
		return nil, err
	}
	if fd.Status != StatusActive {
		return nil, ErrDepositNotActive
	}

	today := Today()
	if today.Before(fd.MaturityDate) {
		return nil, ErrNotYetMatured
	}

	fd.Status = StatusMatured
	fd.AccruedInterest = AccruedInterest(fd, today)

	if err := s.store.UpdateDeposit(ctx, *fd); err != nil {
		return nil, fmt.Errorf("update deposit %s: %w", id, err)
	}
	return fd, nil
}

func (s *Service) getDeposit(ctx context.Context, id DepositID) (*FixedDeposit, error) {
	fd, err := s.store.GetDeposit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get deposit %s: %w", id, err)
	}
	if fd == nil {
		return nil, ErrDepositNotFound
	}
	return fd, nil
}
