package engine

import (
	"fmt"

	"github.com/ebalci/cardpick/internal/model"
	"github.com/ebalci/cardpick/internal/money"
)

// ValueResult is the monetary outcome of putting a purchase on one card.
// All figures are TRY, rounded to two decimals.
type ValueResult struct {
	Notes      []string
	RewardTL   float64
	CostTL     float64
	NetValueTL float64
}

// CalculateValue computes reward (base cashback + point value + campaign
// benefits) minus cost (POS fees) for a purchase on one card. Campaign
// benefits only count for strictly applicable campaigns; when any applicable
// campaign carries a cap, the summed benefit is clipped to the smallest cap.
func CalculateValue(p model.Purchase, card model.Card, campaigns []model.Campaign) ValueResult {
	var notes []string

	baseCashback := p.Amount * card.CashbackPercent
	basePoints := p.Amount * card.PointRate * card.PointValue
	if baseCashback > 0 {
		notes = append(notes, fmt.Sprintf("base cashback %.2f TRY", money.Round2(baseCashback)))
	}
	if basePoints > 0 {
		notes = append(notes, fmt.Sprintf("points worth %.2f TRY", money.Round2(basePoints)))
	}

	var campaignBenefit float64
	var minCap float64
	hasCap := false
	for i := range campaigns {
		c := &campaigns[i]
		if !isApplicable(p, *c) {
			continue
		}

		benefit := c.ExtraCashbackPercent*p.Amount +
			c.ExtraPointRate*p.Amount*card.PointValue +
			c.FlatDiscount
		if benefit > 0 {
			campaignBenefit += benefit
			notes = append(notes, fmt.Sprintf("campaign %q adds %.2f TRY", c.Name, money.Round2(benefit)))
		}

		if c.CapAmount > 0 && (!hasCap || c.CapAmount < minCap) {
			minCap = c.CapAmount
			hasCap = true
		}
	}

	if hasCap && campaignBenefit > minCap {
		clipped := campaignBenefit - minCap
		campaignBenefit = minCap
		notes = append(notes, fmt.Sprintf("campaign benefit capped at %.2f TRY (%.2f TRY clipped)",
			money.Round2(minCap), money.Round2(clipped)))
	}

	reward := baseCashback + basePoints + campaignBenefit
	cost := p.Amount * p.POSFeePercent
	if cost > 0 {
		notes = append(notes, fmt.Sprintf("POS fee cost %.2f TRY", money.Round2(cost)))
	}

	return ValueResult{
		RewardTL:   money.Round2(reward),
		CostTL:     money.Round2(cost),
		NetValueTL: money.Round2(reward - cost),
		Notes:      notes,
	}
}
