package model

import (
	"math"
	"sort"
)

// scoreEpsilon is the tolerance within which two total scores count as tied.
const scoreEpsilon = 1e-6

// ScoreBreakdown carries the per-component scores behind a recommendation so
// the presentation layer can render detail without recomputing.
type ScoreBreakdown struct {
	Notes              []string
	NetValueTL         float64
	ValueScore         float64 // min-max normalized net value, [0,1]
	CashflowScore      float64 // [0,1]
	RiskPenalty        float64 // [0,1]
	UsabilityScore     float64 // [0,1]
	CampaignMatchScore float64 // [0,1]
}

// ScoredCard is one ranked recommendation. It is recomputed on every scoring
// call and has no persistent identity.
type ScoredCard struct {
	Explanation          string
	Breakdown            ScoreBreakdown
	Card                 Card
	TotalScore           float64 // [0,100]
	ResultingUtilization float64
	AdjustedInstallments int
}

// ScoredCards is a ranked set of recommendations supporting deterministic
// sorting.
type ScoredCards []ScoredCard

// Len implements sort.Interface.
func (s ScoredCards) Len() int {
	return len(s)
}

// Less implements sort.Interface. Higher total scores come first; scores
// within scoreEpsilon of each other fall through a fixed tie-break chain:
// higher value score, higher cashflow score, lower risk penalty, lower
// resulting utilization, then card name ascending.
func (s ScoredCards) Less(i, j int) bool {
	a, b := s[i], s[j]
	if math.Abs(a.TotalScore-b.TotalScore) > scoreEpsilon {
		return a.TotalScore > b.TotalScore
	}
	if a.Breakdown.ValueScore != b.Breakdown.ValueScore {
		return a.Breakdown.ValueScore > b.Breakdown.ValueScore
	}
	if a.Breakdown.CashflowScore != b.Breakdown.CashflowScore {
		return a.Breakdown.CashflowScore > b.Breakdown.CashflowScore
	}
	if a.Breakdown.RiskPenalty != b.Breakdown.RiskPenalty {
		return a.Breakdown.RiskPenalty < b.Breakdown.RiskPenalty
	}
	if a.ResultingUtilization != b.ResultingUtilization {
		return a.ResultingUtilization < b.ResultingUtilization
	}
	return a.Card.Name < b.Card.Name
}

// Swap implements sort.Interface.
func (s ScoredCards) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// Sort orders the recommendations best-first.
func (s ScoredCards) Sort() {
	sort.Stable(s)
}

// Top returns the best recommendation, or nil if the set is empty.
func (s ScoredCards) Top() *ScoredCard {
	if len(s) == 0 {
		return nil
	}
	s.Sort()
	return &s[0]
}
