package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Benefit kind labels used in Campaign.Types. The list is advisory: the
// engine derives behavior from the benefit fields themselves, never from
// these labels.
const (
	BenefitCashback         = "cashback"
	BenefitPoints           = "points"
	BenefitFlatDiscount     = "flatDiscount"
	BenefitInstallmentBoost = "installmentBoost"
	BenefitInterestFree     = "interestFree"
)

// Campaign represents a promotional campaign. A campaign with no targeting
// fields set is "general" and matches every purchase. The engine treats
// campaigns as read-only input.
type Campaign struct {
	StartDate            *time.Time
	EndDate              *time.Time
	CardID               *int64 // nil means the campaign applies to every card
	Name                 string
	Category             string // "" or "general" matches any category
	Channel              string // "" or "any" matches any channel
	Brand                string // "" or "general" matches any merchant
	Types                []string
	ID                   int64
	MinAmount            float64
	ExtraCashbackPercent float64
	ExtraPointRate       float64
	FlatDiscount         float64
	CapAmount            float64 // 0 means no cap
	MaxInstallments      int
	InterestFreeMonths   int
	MonthlyCap           bool
	RequiresEnrollment   bool
	Enrolled             bool
	RequiresCode         bool
	CodeProvided         bool
	Active               bool
}

// Validate ensures the campaign record is storable.
func (c *Campaign) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("campaign name is required")
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return fmt.Errorf("campaign end date %s is before start date %s",
			c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"))
	}
	if c.MinAmount < 0 {
		return fmt.Errorf("minimum amount cannot be negative, got %.2f", c.MinAmount)
	}
	if c.ExtraCashbackPercent < 0 || c.ExtraCashbackPercent > 1 {
		return fmt.Errorf("extra cashback percent must be between 0 and 1, got %.4f", c.ExtraCashbackPercent)
	}
	if c.CapAmount < 0 {
		return fmt.Errorf("cap amount cannot be negative, got %.2f", c.CapAmount)
	}
	return nil
}

// HasRequirements reports whether the campaign gates its benefits behind
// enrollment or a promo code.
func (c *Campaign) HasRequirements() bool {
	return c.RequiresEnrollment || c.RequiresCode
}

// RequirementsMet reports whether every gate on the campaign is satisfied.
// Campaigns without requirements trivially satisfy them.
func (c *Campaign) RequirementsMet() bool {
	if c.RequiresEnrollment && !c.Enrolled {
		return false
	}
	if c.RequiresCode && !c.CodeProvided {
		return false
	}
	return true
}

// EncodeTypes serializes the benefit-kind list for flat storage.
func (c *Campaign) EncodeTypes() (string, error) {
	if len(c.Types) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(c.Types)
	if err != nil {
		return "", fmt.Errorf("failed to encode campaign types: %w", err)
	}
	return string(data), nil
}

// DecodeTypes restores the benefit-kind list from its stored form.
func (c *Campaign) DecodeTypes(raw string) error {
	if raw == "" {
		c.Types = nil
		return nil
	}
	var types []string
	if err := json.Unmarshal([]byte(raw), &types); err != nil {
		return fmt.Errorf("failed to decode campaign types: %w", err)
	}
	c.Types = types
	return nil
}
