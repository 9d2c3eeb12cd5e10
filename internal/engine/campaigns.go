package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ebalci/cardpick/internal/model"
)

// minPartialMatchScore is the floor for campaigns that match some but not all
// of their targeting criteria.
const minPartialMatchScore = 0.3

// CampaignBenefits aggregates the effective benefits across applicable
// campaigns whose requirements are satisfied. Percent benefits are summed;
// the flat discount is maxed rather than summed so two overlapping campaigns
// never double-discount the same purchase.
type CampaignBenefits struct {
	ExtraCashbackPercent float64
	ExtraPointRate       float64
	FlatDiscount         float64
	MaxInstallments      int
	InterestFreeMonths   int
}

// CampaignMatchResult describes how well the supplied campaigns fit a
// purchase.
type CampaignMatchResult struct {
	Notes        []string
	Benefits     CampaignBenefits
	MatchScore   float64 // average per-campaign score over applicable campaigns
	Applicable   int
	EnrollmentOK bool // false if any applicable campaign has an unmet enrollment gate
	CodeOK       bool // false if any applicable campaign has an unmet code gate
}

func isGeneral(s string) bool {
	return s == "" || strings.EqualFold(s, "general")
}

func isAnyChannel(s string) bool {
	return s == "" || strings.EqualFold(s, "any")
}

func inDateRange(date time.Time, start, end *time.Time) bool {
	if start != nil && date.Before(*start) {
		return false
	}
	if end != nil && date.After(*end) {
		return false
	}
	return true
}

// countCriteria evaluates every targeting criterion present on the campaign
// against the purchase and returns how many exist and how many matched.
// Wildcard fields ("general" category/brand, "any" channel) contribute no
// criterion at all.
func countCriteria(p model.Purchase, c model.Campaign) (present, matched int) {
	if c.StartDate != nil || c.EndDate != nil {
		present++
		if inDateRange(p.Date, c.StartDate, c.EndDate) {
			matched++
		}
	}
	if !isAnyChannel(c.Channel) {
		present++
		if strings.EqualFold(c.Channel, p.Channel) {
			matched++
		}
	}
	if !isGeneral(c.Category) {
		present++
		if strings.EqualFold(c.Category, p.Category) {
			matched++
		}
	}
	if !isGeneral(c.Brand) {
		present++
		if strings.EqualFold(c.Brand, p.Merchant) {
			matched++
		}
	}
	if c.MinAmount > 0 {
		present++
		if p.Amount >= c.MinAmount {
			matched++
		}
	}
	return present, matched
}

// matchScore grades one campaign against a purchase: 1.0 for a fully general
// campaign or a full match, a partial score floored at minPartialMatchScore
// when at least one criterion matches, and 0 when nothing matches.
func matchScore(p model.Purchase, c model.Campaign) float64 {
	present, matched := countCriteria(p, c)
	switch {
	case present == 0:
		return 1.0
	case matched == present:
		return 1.0
	case matched > 0:
		return math.Max(minPartialMatchScore, float64(matched)/float64(present))
	default:
		return 0
	}
}

// isApplicable is the strict boolean form of campaign applicability used by
// the value calculator: every present targeting criterion must hold and
// enrollment/code requirements must be satisfied.
func isApplicable(p model.Purchase, c model.Campaign) bool {
	present, matched := countCriteria(p, c)
	if matched != present {
		return false
	}
	return c.RequirementsMet()
}

// MatchCampaigns evaluates which campaigns apply to a purchase and aggregates
// their effective benefits. A campaign counts as applicable when its match
// score is positive; its benefits only accumulate when its enrollment and
// code requirements are met.
func MatchCampaigns(p model.Purchase, campaigns []model.Campaign) CampaignMatchResult {
	res := CampaignMatchResult{EnrollmentOK: true, CodeOK: true}

	var scoreSum float64
	for i := range campaigns {
		c := &campaigns[i]
		score := matchScore(p, *c)
		if score <= 0 {
			continue
		}

		res.Applicable++
		scoreSum += score

		enrollmentUnmet := c.RequiresEnrollment && !c.Enrolled
		codeUnmet := c.RequiresCode && !c.CodeProvided
		if enrollmentUnmet {
			res.EnrollmentOK = false
			res.Notes = append(res.Notes, fmt.Sprintf("campaign %q requires enrollment", c.Name))
		}
		if codeUnmet {
			res.CodeOK = false
			res.Notes = append(res.Notes, fmt.Sprintf("campaign %q requires a promo code", c.Name))
		}
		if enrollmentUnmet || codeUnmet {
			continue
		}

		res.Benefits.ExtraCashbackPercent += c.ExtraCashbackPercent
		res.Benefits.ExtraPointRate += c.ExtraPointRate
		if c.FlatDiscount > res.Benefits.FlatDiscount {
			res.Benefits.FlatDiscount = c.FlatDiscount
		}
		if c.MaxInstallments > res.Benefits.MaxInstallments {
			res.Benefits.MaxInstallments = c.MaxInstallments
		}
		if c.InterestFreeMonths > res.Benefits.InterestFreeMonths {
			res.Benefits.InterestFreeMonths = c.InterestFreeMonths
		}
	}

	if res.Applicable > 0 {
		res.MatchScore = scoreSum / float64(res.Applicable)
	}
	return res
}
