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
)

const cardColumns = `id, name, total_limit, available_limit, cashback_percent,
	point_rate, point_value, statement_day, due_day, max_installments,
	created_at, updated_at`

// SaveCard inserts a new card or updates an existing one when the ID is set.
func (s *SQLiteStorage) SaveCard(ctx context.Context, card *model.Card) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCard(card); err != nil {
		return err
	}

	now := time.Now()

	if card.ID > 0 {
		query := `
			UPDATE cards
			SET name = ?, total_limit = ?, available_limit = ?,
				cashback_percent = ?, point_rate = ?, point_value = ?,
				statement_day = ?, due_day = ?, max_installments = ?,
				updated_at = ?
			WHERE id = ?`

		result, err := s.db.ExecContext(ctx, query,
			card.Name, card.TotalLimit, card.AvailableLimit,
			card.CashbackPercent, card.PointRate, card.PointValue,
			card.StatementDay, card.DueDay, card.Installments.EncodeDB(),
			now, card.ID)
		if err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check update result: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("card %d: %w", card.ID, common.ErrNotFound)
		}

		card.UpdatedAt = now
		return nil
	}

	query := `
		INSERT INTO cards (name, total_limit, available_limit,
			cashback_percent, point_rate, point_value,
			statement_day, due_day, max_installments, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		card.Name, card.TotalLimit, card.AvailableLimit,
		card.CashbackPercent, card.PointRate, card.PointValue,
		card.StatementDay, card.DueDay, card.Installments.EncodeDB(),
		now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("card %q: %w", card.Name, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to insert card: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get card id: %w", err)
	}

	card.ID = id
	card.CreatedAt = now
	card.UpdatedAt = now

	slog.Debug("saved card", "id", card.ID, "name", card.Name)
	return nil
}

// GetCard returns a card by its ID.
func (s *SQLiteStorage) GetCard(ctx context.Context, id int64) (*model.Card, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM cards WHERE id = ?`, cardColumns)
	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query card: %w", err)
	}
	return card, nil
}

// GetCardByName returns a card by its unique name.
func (s *SQLiteStorage) GetCardByName(ctx context.Context, name string) (*model.Card, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM cards WHERE name = ?`, cardColumns)
	card, err := scanCard(s.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query card: %w", err)
	}
	return card, nil
}

// GetCards returns all cards ordered by name.
func (s *SQLiteStorage) GetCards(ctx context.Context) ([]model.Card, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM cards ORDER BY name`, cardColumns)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []model.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	slog.Debug("retrieved cards", "count", len(cards))
	return cards, nil
}

// UpdateCardLimit sets a card's available limit directly.
func (s *SQLiteStorage) UpdateCardLimit(ctx context.Context, id int64, availableLimit float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if availableLimit < 0 {
		return fmt.Errorf("%w: available limit cannot be negative", ErrInvalidCard)
	}

	query := `UPDATE cards SET available_limit = ?, updated_at = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, availableLimit, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update card limit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("card %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// DeleteCard removes a card and, through the foreign key cascade, its
// card-specific campaigns.
func (s *SQLiteStorage) DeleteCard(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("card %d: %w", id, common.ErrNotFound)
	}

	slog.Debug("deleted card", "id", id)
	return nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (*model.Card, error) {
	var card model.Card
	var maxInstallments int
	err := row.Scan(
		&card.ID, &card.Name, &card.TotalLimit, &card.AvailableLimit,
		&card.CashbackPercent, &card.PointRate, &card.PointValue,
		&card.StatementDay, &card.DueDay, &maxInstallments,
		&card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	card.Installments = model.DecodeInstallmentSupport(maxInstallments)
	return &card, nil
}
