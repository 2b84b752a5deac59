package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mwhitlock/wanderguide/internal/model"
)

type PurchaseStore struct {
	db *sql.DB
}

func NewPurchaseStore(db *sql.DB) *PurchaseStore {
	return &PurchaseStore{db: db}
}

func scanPurchase(scanner interface{ Scan(...any) error }) (*model.Purchase, error) {
	var p model.Purchase
	err := scanner.Scan(&p.ID, &p.UserID, &p.PassType, &p.AmountPence, &p.StripeSessionID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const purchaseCols = `id, user_id, pass_type, amount_pence, stripe_session_id, created_at`

// Record inserts the audit row for a completed checkout. The Stripe session
// id is the idempotency key: a redelivered webhook returns (nil, false, nil)
// and the caller must not re-apply the pass.
func (s *PurchaseStore) Record(userID int64, passType string, amountPence int64, stripeSessionID string) (*model.Purchase, bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO purchases (user_id, pass_type, amount_pence, stripe_session_id) VALUES (?, ?, ?, ?)`,
		userID, passType, amountPence, stripeSessionID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("insert purchase: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+purchaseCols+` FROM purchases WHERE id = ?`, id)
	p, err := scanPurchase(row)
	if err != nil {
		return nil, false, fmt.Errorf("get purchase: %w", err)
	}
	return p, true, nil
}

// GetBySessionID returns the purchase recorded for a Stripe checkout
// session, or nil.
func (s *PurchaseStore) GetBySessionID(sessionID string) (*model.Purchase, error) {
	row := s.db.QueryRow(`SELECT `+purchaseCols+` FROM purchases WHERE stripe_session_id = ?`, sessionID)
	p, err := scanPurchase(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get purchase by session: %w", err)
	}
	return p, nil
}

// ListByUser returns a user's purchase history, newest first.
func (s *PurchaseStore) ListByUser(userID int64) ([]*model.Purchase, error) {
	rows, err := s.db.Query(
		`SELECT `+purchaseCols+` FROM purchases WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*model.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
