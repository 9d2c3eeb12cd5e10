// Package engine implements the card scoring engine: given a purchase, a set
// of candidate cards, and per-card campaigns, it produces a ranked list of
// scored, explained recommendations. The engine is pure: it never mutates its
// inputs, keeps no state between calls, and represents business outcomes
// (incompatibility, no candidates, no campaigns) as ordinary data rather than
// errors.
package engine

import (
	"log/slog"

	"github.com/ebalci/cardpick/internal/model"
	"github.com/ebalci/cardpick/internal/money"
)

// Engine scores candidate cards for a purchase using a weighted blend of
// value, cashflow, risk, usability, and campaign fit.
type Engine struct {
	weights model.Weights
}

// New creates an engine with the default weights.
func New() *Engine {
	return NewWithWeights(model.DefaultWeights())
}

// NewWithWeights creates an engine with custom weights. Weights should sum to
// 1 for composite scores to stay naturally in range; the engine clamps either
// way.
func NewWithWeights(w model.Weights) *Engine {
	return &Engine{weights: w}
}

// Weights returns the blend the engine scores with.
func (e *Engine) Weights() model.Weights {
	return e.weights
}

// cardMetrics holds the raw per-card results collected before normalization.
type cardMetrics struct {
	card     model.Card
	compat   CompatibilityResult
	match    CampaignMatchResult
	value    ValueResult
	risk     RiskResult
	cashflow float64
	util     float64
}

// ScoreCards runs the full pipeline for each candidate card and returns
// recommendations sorted best-first. Cards failing the compatibility filter
// are excluded entirely; an empty result is a legitimate outcome, not an
// error. campaignsByCard maps card ID to that card's applicable campaigns and
// may be empty.
func (e *Engine) ScoreCards(p model.Purchase, cards []model.Card, campaignsByCard map[int64][]model.Campaign) model.ScoredCards {
	metrics := make([]cardMetrics, 0, len(cards))

	for _, card := range cards {
		campaigns := campaignsByCard[card.ID]

		compat := CheckCompatibility(p, card, campaigns)
		if !compat.Compatible {
			slog.Debug("card excluded by compatibility filter",
				"card", card.Name,
				"available_limit", card.AvailableLimit,
				"amount", p.Amount)
			continue
		}

		match := MatchCampaigns(p, campaigns)
		value := CalculateValue(p, card, campaigns)
		plan := BuildInstallmentPlan(p.Date, compat.AdjustedInstallments, card.StatementDay, card.DueDay)
		risk := RiskPenalty(p, card, compat, match)

		metrics = append(metrics, cardMetrics{
			card:     card,
			compat:   compat,
			match:    match,
			value:    value,
			risk:     risk,
			cashflow: CashflowScore(plan),
			util:     postPurchaseUtilization(card, p.Amount),
		})
	}

	if len(metrics) == 0 {
		return nil
	}

	minNet, maxNet := metrics[0].value.NetValueTL, metrics[0].value.NetValueTL
	for _, m := range metrics[1:] {
		if m.value.NetValueTL < minNet {
			minNet = m.value.NetValueTL
		}
		if m.value.NetValueTL > maxNet {
			maxNet = m.value.NetValueTL
		}
	}

	w := e.weights
	scored := make(model.ScoredCards, 0, len(metrics))
	for _, m := range metrics {
		valueScore := money.Normalize(m.value.NetValueTL, minNet, maxNet)

		composite := 100 * (w.Value*valueScore +
			w.Cashflow*m.cashflow +
			w.Risk*(1-m.risk.Penalty) +
			w.Usability*m.compat.UsabilityScore +
			w.Campaign*m.match.MatchScore)

		var notes []string
		notes = append(notes, m.compat.Notes...)
		notes = append(notes, m.value.Notes...)
		notes = append(notes, m.match.Notes...)
		notes = append(notes, m.risk.Notes...)

		sc := model.ScoredCard{
			Card:       m.card,
			TotalScore: money.Clamp(composite, 0, 100),
			Breakdown: model.ScoreBreakdown{
				NetValueTL:         m.value.NetValueTL,
				ValueScore:         valueScore,
				CashflowScore:      m.cashflow,
				RiskPenalty:        m.risk.Penalty,
				UsabilityScore:     m.compat.UsabilityScore,
				CampaignMatchScore: m.match.MatchScore,
				Notes:              notes,
			},
			ResultingUtilization: m.util,
			AdjustedInstallments: m.compat.AdjustedInstallments,
		}
		sc.Explanation = buildExplanation(p, sc, m.match)
		scored = append(scored, sc)
	}

	scored.Sort()
	return scored
}
