package engine

import (
	"fmt"
	"strings"

	"github.com/ebalci/cardpick/internal/model"
)

// Explanation parameters. The average-deferral estimate is a deliberately
// rough linear function of the installment count rather than a figure taken
// from the actual plan.
const (
	estimateBaseDays       = 30
	estimateDaysPerInstall = 15

	significantUtilizationDelta = 0.1
	maxImportantNotes           = 2
)

// importantNoteKeywords mark notes worth surfacing in the explanation text.
var importantNoteKeywords = []string{"campaign", "cashback", "discount", "penalty"}

// buildExplanation renders a one-line human-readable summary of a
// recommendation: net value, rough payment deferral, a significant
// utilization change, the installment arrangement, campaign presence, and up
// to two important notes.
func buildExplanation(p model.Purchase, sc model.ScoredCard, match CampaignMatchResult) string {
	parts := []string{fmt.Sprintf("Net value %.2f TRY.", sc.Breakdown.NetValueTL)}

	estDays := estimateBaseDays + estimateDaysPerInstall*(sc.AdjustedInstallments-1)
	parts = append(parts, fmt.Sprintf("Payment deferred roughly %d days on average.", estDays))

	current := sc.Card.CurrentUtilization()
	if sc.ResultingUtilization-current >= significantUtilizationDelta {
		parts = append(parts, fmt.Sprintf("Utilization rises from %.0f%% to %.0f%%.",
			current*100, sc.ResultingUtilization*100))
	}

	switch {
	case sc.AdjustedInstallments <= 1 && p.InstallmentCount > 1:
		parts = append(parts, fmt.Sprintf("Single payment (requested %d installments).", p.InstallmentCount))
	case sc.AdjustedInstallments <= 1:
		parts = append(parts, "Single payment.")
	case sc.AdjustedInstallments < p.InstallmentCount:
		parts = append(parts, fmt.Sprintf("%d installments (reduced from %d).",
			sc.AdjustedInstallments, p.InstallmentCount))
	default:
		parts = append(parts, fmt.Sprintf("%d installments.", sc.AdjustedInstallments))
	}

	if match.Applicable > 0 {
		parts = append(parts, fmt.Sprintf("%d campaign(s) apply.", match.Applicable))
	}

	for _, note := range importantNotes(sc.Breakdown.Notes) {
		parts = append(parts, capitalize(note)+".")
	}

	return strings.Join(parts, " ")
}

// importantNotes filters notes down to the ones matching a keyword, keeping
// at most maxImportantNotes in their original order.
func importantNotes(notes []string) []string {
	var picked []string
	for _, note := range notes {
		lower := strings.ToLower(note)
		for _, kw := range importantNoteKeywords {
			if strings.Contains(lower, kw) {
				picked = append(picked, note)
				break
			}
		}
		if len(picked) == maxImportantNotes {
			break
		}
	}
	return picked
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
