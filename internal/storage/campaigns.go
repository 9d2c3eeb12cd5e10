package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ebalci/cardpick/internal/common"
	"github.com/ebalci/cardpick/internal/model"
)

const campaignColumns = `id, name, card_id, types, category, channel, brand,
	min_amount, start_date, end_date, extra_cashback_percent, extra_point_rate,
	flat_discount, cap_amount, monthly_cap, max_installments,
	interest_free_months, requires_enrollment, enrolled, requires_code,
	code_provided, active`

// SaveCampaign inserts a new campaign or updates an existing one when the ID
// is set.
func (s *SQLiteStorage) SaveCampaign(ctx context.Context, campaign *model.Campaign) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCampaign(campaign); err != nil {
		return err
	}

	types, err := campaign.EncodeTypes()
	if err != nil {
		return err
	}

	if campaign.ID > 0 {
		query := `
			UPDATE campaigns
			SET name = ?, card_id = ?, types = ?, category = ?, channel = ?,
				brand = ?, min_amount = ?, start_date = ?, end_date = ?,
				extra_cashback_percent = ?, extra_point_rate = ?,
				flat_discount = ?, cap_amount = ?, monthly_cap = ?,
				max_installments = ?, interest_free_months = ?,
				requires_enrollment = ?, enrolled = ?, requires_code = ?,
				code_provided = ?, active = ?
			WHERE id = ?`

		result, execErr := s.db.ExecContext(ctx, query,
			campaign.Name, nullableID(campaign.CardID), types,
			campaign.Category, campaign.Channel, campaign.Brand,
			campaign.MinAmount, nullableTime(campaign.StartDate), nullableTime(campaign.EndDate),
			campaign.ExtraCashbackPercent, campaign.ExtraPointRate,
			campaign.FlatDiscount, campaign.CapAmount, campaign.MonthlyCap,
			campaign.MaxInstallments, campaign.InterestFreeMonths,
			campaign.RequiresEnrollment, campaign.Enrolled, campaign.RequiresCode,
			campaign.CodeProvided, campaign.Active,
			campaign.ID)
		if execErr != nil {
			return fmt.Errorf("failed to update campaign: %w", execErr)
		}

		affected, raErr := result.RowsAffected()
		if raErr != nil {
			return fmt.Errorf("failed to check update result: %w", raErr)
		}
		if affected == 0 {
			return fmt.Errorf("campaign %d: %w", campaign.ID, common.ErrNotFound)
		}
		return nil
	}

	query := `
		INSERT INTO campaigns (name, card_id, types, category, channel, brand,
			min_amount, start_date, end_date, extra_cashback_percent,
			extra_point_rate, flat_discount, cap_amount, monthly_cap,
			max_installments, interest_free_months, requires_enrollment,
			enrolled, requires_code, code_provided, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		campaign.Name, nullableID(campaign.CardID), types,
		campaign.Category, campaign.Channel, campaign.Brand,
		campaign.MinAmount, nullableTime(campaign.StartDate), nullableTime(campaign.EndDate),
		campaign.ExtraCashbackPercent, campaign.ExtraPointRate,
		campaign.FlatDiscount, campaign.CapAmount, campaign.MonthlyCap,
		campaign.MaxInstallments, campaign.InterestFreeMonths,
		campaign.RequiresEnrollment, campaign.Enrolled, campaign.RequiresCode,
		campaign.CodeProvided, campaign.Active)
	if err != nil {
		return fmt.Errorf("failed to insert campaign: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get campaign id: %w", err)
	}
	campaign.ID = id

	slog.Debug("saved campaign", "id", campaign.ID, "name", campaign.Name)
	return nil
}

// GetCampaign returns a campaign by its ID.
func (s *SQLiteStorage) GetCampaign(ctx context.Context, id int64) (*model.Campaign, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM campaigns WHERE id = ?`, campaignColumns)
	campaign, err := scanCampaign(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("campaign %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign: %w", err)
	}
	return campaign, nil
}

// GetActiveCampaigns returns all campaigns flagged active, regardless of card.
func (s *SQLiteStorage) GetActiveCampaigns(ctx context.Context) ([]model.Campaign, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM campaigns WHERE active = 1 ORDER BY name`, campaignColumns)
	return s.queryCampaigns(ctx, query)
}

// GetCampaignsForCard returns the active campaigns visible to one card: its
// own plus the ones with no card binding.
func (s *SQLiteStorage) GetCampaignsForCard(ctx context.Context, cardID int64) ([]model.Campaign, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(cardID, "cardID"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM campaigns
		WHERE active = 1 AND (card_id IS NULL OR card_id = ?)
		ORDER BY name`, campaignColumns)
	return s.queryCampaigns(ctx, query, cardID)
}

// DeleteCampaign removes a campaign.
func (s *SQLiteStorage) DeleteCampaign(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("campaign %d: %w", id, common.ErrNotFound)
	}

	slog.Debug("deleted campaign", "id", id)
	return nil
}

func (s *SQLiteStorage) queryCampaigns(ctx context.Context, query string, args ...any) ([]model.Campaign, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		campaign, scanErr := scanCampaign(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", scanErr)
		}
		campaigns = append(campaigns, *campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}

	slog.Debug("retrieved campaigns", "count", len(campaigns))
	return campaigns, nil
}

func scanCampaign(row scanner) (*model.Campaign, error) {
	var campaign model.Campaign
	var cardID sql.NullInt64
	var startDate, endDate sql.NullTime
	var types string

	err := row.Scan(
		&campaign.ID, &campaign.Name, &cardID, &types,
		&campaign.Category, &campaign.Channel, &campaign.Brand,
		&campaign.MinAmount, &startDate, &endDate,
		&campaign.ExtraCashbackPercent, &campaign.ExtraPointRate,
		&campaign.FlatDiscount, &campaign.CapAmount, &campaign.MonthlyCap,
		&campaign.MaxInstallments, &campaign.InterestFreeMonths,
		&campaign.RequiresEnrollment, &campaign.Enrolled, &campaign.RequiresCode,
		&campaign.CodeProvided, &campaign.Active,
	)
	if err != nil {
		return nil, err
	}

	if cardID.Valid {
		campaign.CardID = &cardID.Int64
	}
	if startDate.Valid {
		t := startDate.Time
		campaign.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		campaign.EndDate = &t
	}
	if err := campaign.DecodeTypes(types); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
