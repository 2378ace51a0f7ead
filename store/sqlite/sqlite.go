/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

INTERFACES IMPLEMENTED:
  deposit.Store:         Fixed deposit persistence
  deposit.UserDirectory: User lookups

KEY TABLES:
  users:           Owning accounts (id, name, email)
  fixed_deposits:  One row per deposit; amount, rate, and accrued interest
                   are stored as exact decimal TEXT, dates as ISO text

IDENTIFIERS:
  Ids are assigned by the store on save (UUIDs) and are opaque to callers.

NUMERIC FIDELITY:
  Decimal columns round-trip through TEXT so no binary floating-point
  representation ever touches a monetary value. The accrued_interest column
  is advisory only - the service recomputes it on every read.

CONCURRENCY:
  sync.RWMutex around the handle; SQLite runs in WAL mode so readers do not
  block each other. With a server-grade database the engine's own isolation
  replaces the mutex.

USAGE:
  store, err := sqlite.New("./data/deposits.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/deposit-engine/deposit"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface checks.
var (
	_ deposit.Store         = (*Store)(nil)
	_ deposit.UserDirectory = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fixed_deposits (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		amount TEXT NOT NULL,
		scheme TEXT NOT NULL,
		interest_rate TEXT NOT NULL,
		tenure_months INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		maturity_date TEXT NOT NULL,
		status TEXT NOT NULL,
		broken_date TEXT,
		accrued_interest TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_fixed_deposits_user
		ON fixed_deposits(user_id);
	CREATE INDEX IF NOT EXISTS idx_fixed_deposits_status
		ON fixed_deposits(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DEPOSIT STORE (deposit.Store interface)
// =============================================================================

// SaveDeposit inserts a new deposit, assigning an id if none is set.
func (s *Store) SaveDeposit(ctx context.Context, fd deposit.FixedDeposit) (*deposit.FixedDeposit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fd.ID == "" {
		fd.ID = deposit.DepositID(uuid.NewString())
	}

	query := `
		INSERT INTO fixed_deposits
		(id, user_id, amount, scheme, interest_rate, tenure_months,
		 start_date, maturity_date, status, broken_date, accrued_interest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		fd.ID,
		fd.UserID,
		fd.Amount.String(),
		fd.Scheme,
		fd.InterestRate.String(),
		fd.TenureMonths,
		fd.StartDate.String(),
		fd.MaturityDate.String(),
		fd.Status,
		nullDate(fd.BrokenDate),
		fd.AccruedInterest.String(),
		fd.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert deposit: %w", err)
	}

	return &fd, nil
}

// GetDeposit returns a deposit by id, or (nil, nil) if absent.
func (s *Store) GetDeposit(ctx context.Context, id deposit.DepositID) (*deposit.FixedDeposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.queryDeposits(ctx, depositColumns+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListDepositsByUser returns all deposits owned by the user.
func (s *Store) ListDepositsByUser(ctx context.Context, userID deposit.UserID) ([]deposit.FixedDeposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryDeposits(ctx, depositColumns+" WHERE user_id = ? ORDER BY created_at ASC", userID)
}

// UpdateDeposit replaces the mutable columns of the stored row. Terms
// (amount, rate, dates, tenure) are immutable post-creation and never
// touched by updates.
func (s *Store) UpdateDeposit(ctx context.Context, fd deposit.FixedDeposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE fixed_deposits
		SET status = ?, broken_date = ?, accrued_interest = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		fd.Status,
		nullDate(fd.BrokenDate),
		fd.AccruedInterest.String(),
		fd.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update deposit: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update deposit: %w", err)
	}
	if affected == 0 {
		return deposit.ErrDepositNotFound
	}
	return nil
}

const depositColumns = `
	SELECT id, user_id, amount, scheme, interest_rate, tenure_months,
	       start_date, maturity_date, status, broken_date, accrued_interest, created_at
	FROM fixed_deposits`

func (s *Store) queryDeposits(ctx context.Context, query string, args ...any) ([]deposit.FixedDeposit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer rows.Close()

	var deposits []deposit.FixedDeposit
	for rows.Next() {
		fd, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, fd)
	}

	return deposits, rows.Err()
}

func scanDeposit(rows *sql.Rows) (deposit.FixedDeposit, error) {
	var (
		fd           deposit.FixedDeposit
		amount       string
		interestRate string
		startDate    string
		maturityDate string
		brokenDate   sql.NullString
		accrued      sql.NullString
		createdAt    string
	)

	err := rows.Scan(
		&fd.ID, &fd.UserID, &amount, &fd.Scheme, &interestRate, &fd.TenureMonths,
		&startDate, &maturityDate, &fd.Status, &brokenDate, &accrued, &createdAt,
	)
	if err != nil {
		return fd, fmt.Errorf("failed to scan deposit: %w", err)
	}

	fd.Amount = parseDecimal(amount)
	fd.InterestRate = parseDecimal(interestRate)
	fd.StartDate, _ = deposit.ParseDate(startDate)
	fd.MaturityDate, _ = deposit.ParseDate(maturityDate)
	if brokenDate.Valid && brokenDate.String != "" {
		if d, err := deposit.ParseDate(brokenDate.String); err == nil {
			fd.BrokenDate = &d
		}
	}
	if accrued.Valid {
		fd.AccruedInterest = parseDecimal(accrued.String)
	}
	fd.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return fd, nil
}

// =============================================================================
// USER DIRECTORY (deposit.UserDirectory interface)
// =============================================================================

// SaveUser inserts a new user, assigning an id if none is set.
func (s *Store) SaveUser(ctx context.Context, u deposit.User) (*deposit.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = deposit.UserID(uuid.NewString())
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)",
		u.ID, u.Name, u.Email, u.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &u, nil
}

// GetUser returns a user by id, or (nil, nil) if absent.
func (s *Store) GetUser(ctx context.Context, id deposit.UserID) (*deposit.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		u         deposit.User
		email     sql.NullString
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Name, &email, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Email = email.String
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullDate(d *deposit.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
