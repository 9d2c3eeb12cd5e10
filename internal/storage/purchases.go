package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ebalci/cardpick/internal/common"
	"github.com/ebalci/cardpick/internal/model"
	"github.com/ebalci/cardpick/internal/service"
)

// ErrInsufficientLimit is returned when a purchase would push the card's
// available limit below zero.
var ErrInsufficientLimit = errors.New("insufficient available limit")

// SavePurchase records a purchase against a card and decrements the card's
// available limit in the same transaction.
func (s *SQLiteStorage) SavePurchase(ctx context.Context, cardID int64, purchase model.Purchase) (*model.PurchaseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(cardID, "cardID"); err != nil {
		return nil, err
	}
	if err := validatePurchase(&purchase); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var availableLimit float64
	err = tx.QueryRowContext(ctx,
		`SELECT available_limit FROM cards WHERE id = ?`, cardID).Scan(&availableLimit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %d: %w", cardID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query card limit: %w", err)
	}

	if purchase.Amount > availableLimit {
		return nil, fmt.Errorf("%w: %.2f available, %.2f requested",
			ErrInsufficientLimit, availableLimit, purchase.Amount)
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO purchases (card_id, date, category, channel, merchant,
			amount, pos_fee_percent, installment_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cardID, purchase.Date, purchase.Category, purchase.Channel,
		purchase.Merchant, purchase.Amount, purchase.POSFeePercent,
		purchase.InstallmentCount, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert purchase: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE cards
		SET available_limit = available_limit - ?, updated_at = ?
		WHERE id = ?`,
		purchase.Amount, now, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement card limit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	slog.Debug("saved purchase",
		"id", id,
		"card_id", cardID,
		"amount", purchase.Amount)

	return &model.PurchaseRecord{
		Purchase:  purchase,
		ID:        id,
		CardID:    cardID,
		CreatedAt: now,
	}, nil
}

// GetPurchases returns purchase history matching the filter, most recent
// first.
func (s *SQLiteStorage) GetPurchases(ctx context.Context, filter service.PurchaseFilter) ([]model.PurchaseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if filter.CardID != nil {
		conditions = append(conditions, "card_id = ?")
		args = append(args, *filter.CardID)
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}

	query := `
		SELECT id, card_id, date, category, channel, merchant, amount,
			pos_fee_percent, installment_count, created_at
		FROM purchases`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var records []model.PurchaseRecord
	for rows.Next() {
		var rec model.PurchaseRecord
		if err := rows.Scan(
			&rec.ID, &rec.CardID, &rec.Date, &rec.Category, &rec.Channel,
			&rec.Merchant, &rec.Amount, &rec.POSFeePercent,
			&rec.InstallmentCount, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	return records, nil
}
