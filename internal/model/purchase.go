// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"time"
)

// Purchase channels. The channel set is genuinely closed: a purchase happens
// either online or at a physical terminal.
const (
	ChannelOnline  = "online"
	ChannelOffline = "offline"
)

// Purchase represents a single proposed purchase to evaluate cards against.
// All amounts are TRY-denominated. A Purchase is ephemeral: it is constructed
// per recommendation request and never persisted by the scoring engine itself.
type Purchase struct {
	Date             time.Time
	Category         string
	Channel          string
	Merchant         string // optional
	Amount           float64
	POSFeePercent    float64 // optional, fraction in [0,1]
	InstallmentCount int
}

// Validate ensures the purchase is well-formed before it reaches the engine.
// The engine itself assumes valid input and does not re-check.
func (p *Purchase) Validate() error {
	if p.Amount <= 0 {
		return fmt.Errorf("purchase amount must be positive, got %.2f", p.Amount)
	}
	if p.InstallmentCount < 1 {
		return fmt.Errorf("installment count must be at least 1, got %d", p.InstallmentCount)
	}
	if p.Channel != ChannelOnline && p.Channel != ChannelOffline {
		return fmt.Errorf("channel must be %q or %q, got %q", ChannelOnline, ChannelOffline, p.Channel)
	}
	if p.POSFeePercent < 0 || p.POSFeePercent > 1 {
		return fmt.Errorf("POS fee percent must be between 0 and 1, got %.4f", p.POSFeePercent)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("purchase date is required")
	}
	return nil
}
