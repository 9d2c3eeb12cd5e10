package engine

import (
	"time"

	"github.com/ebalci/cardpick/internal/datecycle"
	"github.com/ebalci/cardpick/internal/money"
)

// cashflowSaturationDays is the average payment deferral at which the
// cashflow score saturates at 1.0.
const cashflowSaturationDays = 60.0

// Installment is one payment in a plan. Amount is the fraction of the
// purchase total due on DueDate.
type Installment struct {
	DueDate          time.Time
	Amount           float64
	DaysFromPurchase int
}

// InstallmentPlan is the full payment schedule for a purchase.
type InstallmentPlan []Installment

// BuildInstallmentPlan computes the payment schedule for a purchase. The
// first payment lands on the card's next due date; each subsequent
// installment follows one calendar month later. Per-installment fractions are
// rounded to two decimals with the final installment absorbing the rounding
// remainder, so the fractions always sum to 1.
func BuildInstallmentPlan(purchaseDate time.Time, installments, statementDay, dueDay int) InstallmentPlan {
	first := datecycle.NextDueDate(purchaseDate, statementDay, dueDay)

	daysTo := func(due time.Time) int {
		if due.IsZero() {
			return 0
		}
		days := datecycle.DaysBetween(purchaseDate, due)
		if days < 0 {
			return 0
		}
		return days
	}

	if installments <= 1 {
		return InstallmentPlan{{
			Amount:           1.0,
			DueDate:          first,
			DaysFromPurchase: daysTo(first),
		}}
	}

	per := money.Round2(1.0 / float64(installments))
	plan := make(InstallmentPlan, 0, installments)
	for i := 0; i < installments; i++ {
		amount := per
		if i == installments-1 {
			// Last installment absorbs the rounding remainder.
			amount = 1.0 - per*float64(installments-1)
		}
		due := datecycle.AddMonths(first, i)
		plan = append(plan, Installment{
			Amount:           amount,
			DueDate:          due,
			DaysFromPurchase: daysTo(due),
		})
	}
	return plan
}

// CashflowScore grades a plan by how long payment is deferred: the
// amount-weighted average of days from purchase, normalized so that an
// average of cashflowSaturationDays or more scores 1.0. Plans with no usable
// weights fall back to an equal-weight average.
func CashflowScore(plan InstallmentPlan) float64 {
	if len(plan) == 0 {
		return 0
	}

	var weighted, totalWeight float64
	for _, inst := range plan {
		weighted += float64(inst.DaysFromPurchase) * inst.Amount
		totalWeight += inst.Amount
	}

	var avgDays float64
	if totalWeight > 0 {
		avgDays = weighted / totalWeight
	} else {
		var sum int
		for _, inst := range plan {
			sum += inst.DaysFromPurchase
		}
		avgDays = float64(sum) / float64(len(plan))
	}

	return money.Clamp(avgDays/cashflowSaturationDays, 0, 1)
}
