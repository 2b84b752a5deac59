package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mwhitlock/wanderguide/internal/model"
)

// EntitlementStore owns the per-user usage record. It is the only writer of
// entitlement rows; the quota evaluator and pass ledger compute new states
// and callers persist them here.
type EntitlementStore struct {
	db *sql.DB
}

func NewEntitlementStore(db *sql.DB) *EntitlementStore {
	return &EntitlementStore{db: db}
}

func scanEntitlement(scanner interface{ Scan(...any) error }) (*model.Entitlement, error) {
	var e model.Entitlement
	var passExpires sql.NullTime
	err := scanner.Scan(
		&e.UserID, &e.QueriesToday, &e.LastQueryDate, &e.TotalQueries,
		&e.HasActivePass, &passExpires, &e.IsPremium, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if passExpires.Valid {
		t := passExpires.Time
		e.PassExpiresAt = &t
	}
	return &e, nil
}

const entitlementCols = `user_id, queries_today, last_query_date, total_queries, has_active_pass, pass_expires_at, is_premium, created_at, updated_at`

// GetOrCreate returns the user's entitlement, inserting a zeroed row on
// first use.
func (s *EntitlementStore) GetOrCreate(userID int64) (*model.Entitlement, error) {
	_, err := s.db.Exec(
		`INSERT INTO entitlements (user_id) VALUES (?) ON CONFLICT(user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure entitlement row: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+entitlementCols+` FROM entitlements WHERE user_id = ?`, userID)
	e, err := scanEntitlement(row)
	if err != nil {
		return nil, fmt.Errorf("get entitlement: %w", err)
	}
	return e, nil
}

// Get returns the user's entitlement, or nil if no row exists yet.
func (s *EntitlementStore) Get(userID int64) (*model.Entitlement, error) {
	row := s.db.QueryRow(`SELECT `+entitlementCols+` FROM entitlements WHERE user_id = ?`, userID)
	e, err := scanEntitlement(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entitlement: %w", err)
	}
	return e, nil
}

// UpdateUsage persists the counter state computed by the quota evaluator.
// The update is conditional on the counter and date the evaluation was based
// on, so two concurrent requests cannot both claim the same free slot: the
// loser sees ok=false and must re-read and re-evaluate.
func (s *EntitlementStore) UpdateUsage(userID int64, updated model.Entitlement, expectedQueries int, expectedDate string) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE entitlements
		 SET queries_today = ?, last_query_date = ?, total_queries = ?, updated_at = ?
		 WHERE user_id = ? AND queries_today = ? AND last_query_date = ?`,
		updated.QueriesToday, updated.LastQueryDate, updated.TotalQueries, time.Now().UTC(),
		userID, expectedQueries, expectedDate,
	)
	if err != nil {
		return false, fmt.Errorf("update usage: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// ApplyPass grants a pass by overwriting the expiry. The row is created if
// the user has never queried before buying.
func (s *EntitlementStore) ApplyPass(userID int64, expiresAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO entitlements (user_id, has_active_pass, pass_expires_at) VALUES (?, 1, ?)
		 ON CONFLICT(user_id) DO UPDATE SET has_active_pass = 1, pass_expires_at = excluded.pass_expires_at, updated_at = datetime('now')`,
		userID, expiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("apply pass: %w", err)
	}
	return nil
}

// SetPremium flips the permanent premium override. Set out-of-band by an
// operator, never by request handling.
func (s *EntitlementStore) SetPremium(userID int64, premium bool) error {
	_, err := s.db.Exec(
		`INSERT INTO entitlements (user_id, is_premium) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET is_premium = excluded.is_premium, updated_at = datetime('now')`,
		userID, premium,
	)
	if err != nil {
		return fmt.Errorf("set premium: %w", err)
	}
	return nil
}
