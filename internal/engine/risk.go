package engine

import (
	"fmt"

	"github.com/ebalci/cardpick/internal/datecycle"
	"github.com/ebalci/cardpick/internal/model"
	"github.com/ebalci/cardpick/internal/money"
)

// Risk penalty contributions. Conditions are independent and additive; the
// sum is clamped to [0,1] at the end, never per term.
const (
	penaltyInsufficientLimit   = 0.6
	penaltyUtilizationHigh     = 0.15 // utilization above 80%
	penaltyUtilizationElevated = 0.10 // above 50%
	penaltyUtilizationModerate = 0.05 // above 30%
	penaltyDueDateClose        = 0.1
	penaltyInstallmentMismatch = 0.2
	penaltyEnrollmentUnmet     = 0.15
	penaltyCodeUnmet           = 0.15

	dueDateProximityDays = 3
)

// RiskResult is the aggregated risk penalty for putting a purchase on one
// card.
type RiskResult struct {
	Notes   []string
	Penalty float64 // [0,1]
}

// RiskPenalty sums independent risk signals for a card: limit insufficiency,
// utilization tier, due-date proximity, installment mismatch, and unmet
// campaign requirements. A failed due-date computation is swallowed with a
// note rather than penalized.
func RiskPenalty(p model.Purchase, card model.Card, compat CompatibilityResult, match CampaignMatchResult) RiskResult {
	var sum float64
	var notes []string

	if card.AvailableLimit < p.Amount {
		sum += penaltyInsufficientLimit
		notes = append(notes, "insufficient limit penalty applied")
	}

	// Utilization tiers are mutually exclusive.
	switch util := postPurchaseUtilization(card, p.Amount); {
	case util > 0.8:
		sum += penaltyUtilizationHigh
		notes = append(notes, fmt.Sprintf("utilization penalty: %.0f%% exceeds 80%%", util*100))
	case util > 0.5:
		sum += penaltyUtilizationElevated
	case util > 0.3:
		sum += penaltyUtilizationModerate
	}

	due := datecycle.NextDueDate(p.Date, card.StatementDay, card.DueDay)
	if due.IsZero() {
		notes = append(notes, "could not compute due date; proximity check skipped")
	} else if datecycle.DaysBetween(p.Date, due) <= dueDateProximityDays {
		sum += penaltyDueDateClose
		notes = append(notes, fmt.Sprintf("due date within %d days of purchase", dueDateProximityDays))
	}

	if compat.AdjustedInstallments < p.InstallmentCount {
		sum += penaltyInstallmentMismatch
		notes = append(notes, fmt.Sprintf("installment penalty: %d requested, %d available",
			p.InstallmentCount, compat.AdjustedInstallments))
	}

	if !match.EnrollmentOK {
		sum += penaltyEnrollmentUnmet
		notes = append(notes, "penalty for unmet campaign enrollment requirement")
	}
	if !match.CodeOK {
		sum += penaltyCodeUnmet
		notes = append(notes, "penalty for unmet campaign code requirement")
	}

	if sum > 1 {
		notes = append(notes, fmt.Sprintf("combined risk penalty %.2f clamped to 1.00", sum))
	}

	return RiskResult{
		Penalty: money.Clamp(sum, 0, 1),
		Notes:   notes,
	}
}
