package engine

import (
	"fmt"
	"math"

	"github.com/ebalci/cardpick/internal/model"
)

// Usability thresholds and penalties.
const (
	highUtilizationThreshold     = 0.9
	highUtilizationUsability     = 0.6
	installmentAdjustedUsability = 0.4
)

// CompatibilityResult is the hard-filter and usability outcome for one card.
// An incompatible card is excluded from ranking entirely.
type CompatibilityResult struct {
	Notes                []string
	AdjustedInstallments int
	UsabilityScore       float64
	Compatible           bool
}

// postPurchaseUtilization returns the card's utilization after charging the
// purchase amount. Callers guarantee TotalLimit > 0.
func postPurchaseUtilization(card model.Card, amount float64) float64 {
	return (card.TotalLimit - (card.AvailableLimit - amount)) / card.TotalLimit
}

// CheckCompatibility hard-filters a card on credit limit and soft-adjusts the
// requested installment count to what the card and campaigns allow. The
// installment ceiling is raised by the largest MaxInstallments across all
// supplied campaigns without re-checking their eligibility; matching is
// deliberately lenient here.
func CheckCompatibility(p model.Purchase, card model.Card, campaigns []model.Campaign) CompatibilityResult {
	if card.AvailableLimit < p.Amount {
		return CompatibilityResult{
			Compatible:     false,
			UsabilityScore: 0,
			Notes: []string{fmt.Sprintf("available limit %.2f TRY is below purchase amount %.2f TRY",
				card.AvailableLimit, p.Amount)},
		}
	}

	res := CompatibilityResult{
		Compatible:           true,
		UsabilityScore:       1.0,
		AdjustedInstallments: p.InstallmentCount,
	}

	ceiling := card.Installments.Cap()
	for i := range campaigns {
		if campaigns[i].MaxInstallments > ceiling {
			ceiling = campaigns[i].MaxInstallments
		}
	}

	if p.InstallmentCount > ceiling {
		adjusted := ceiling
		if adjusted < 1 {
			adjusted = 1
		}
		res.AdjustedInstallments = adjusted
		res.UsabilityScore = installmentAdjustedUsability
		if ceiling == 0 {
			res.Notes = append(res.Notes,
				"card does not support installments; falling back to a single payment")
		} else {
			res.Notes = append(res.Notes, fmt.Sprintf(
				"requested %d installments exceeds the %d cap; adjusted to %d",
				p.InstallmentCount, ceiling, adjusted))
		}
	}

	if util := postPurchaseUtilization(card, p.Amount); util > highUtilizationThreshold {
		res.UsabilityScore = math.Min(res.UsabilityScore, highUtilizationUsability)
		res.Notes = append(res.Notes, fmt.Sprintf(
			"post-purchase utilization %.0f%% exceeds %.0f%%",
			util*100, highUtilizationThreshold*100))
	}

	return res
}
