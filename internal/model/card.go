package model

import (
	"fmt"
	"time"
)

// InstallmentMode distinguishes how a card supports installment purchases.
type InstallmentMode int

// Installment support modes.
const (
	// InstallmentsUnsupported means the card only takes single payments.
	InstallmentsUnsupported InstallmentMode = iota
	// InstallmentsUnlimited means the issuer advertises no cap; a default
	// ceiling of DefaultInstallmentCap applies.
	InstallmentsUnlimited
	// InstallmentsLimited means the card caps installments at Max.
	InstallmentsLimited
)

// DefaultInstallmentCap is the ceiling applied to cards with unlimited
// installment support.
const DefaultInstallmentCap = 24

// InstallmentSupport models a card's installment capability as a tagged
// variant: unsupported, unlimited (default cap), or capped at a fixed count.
type InstallmentSupport struct {
	Mode InstallmentMode
	Max  int // meaningful only when Mode is InstallmentsLimited
}

// NoInstallments returns support for single payments only.
func NoInstallments() InstallmentSupport {
	return InstallmentSupport{Mode: InstallmentsUnsupported}
}

// UnlimitedInstallments returns uncapped support, subject to the default cap.
func UnlimitedInstallments() InstallmentSupport {
	return InstallmentSupport{Mode: InstallmentsUnlimited}
}

// InstallmentsUpTo returns support capped at n. Non-positive n means
// unsupported.
func InstallmentsUpTo(n int) InstallmentSupport {
	if n <= 0 {
		return NoInstallments()
	}
	return InstallmentSupport{Mode: InstallmentsLimited, Max: n}
}

// Cap returns the maximum installment count this card allows on its own:
// 0 when unsupported, DefaultInstallmentCap when unlimited, Max otherwise.
func (s InstallmentSupport) Cap() int {
	switch s.Mode {
	case InstallmentsUnlimited:
		return DefaultInstallmentCap
	case InstallmentsLimited:
		return s.Max
	default:
		return 0
	}
}

// EncodeDB converts the variant to its column encoding: 0 unsupported,
// -1 unlimited, n for a fixed cap.
func (s InstallmentSupport) EncodeDB() int {
	switch s.Mode {
	case InstallmentsUnlimited:
		return -1
	case InstallmentsLimited:
		return s.Max
	default:
		return 0
	}
}

// DecodeInstallmentSupport is the inverse of EncodeDB.
func DecodeInstallmentSupport(v int) InstallmentSupport {
	switch {
	case v < 0:
		return UnlimitedInstallments()
	case v == 0:
		return NoInstallments()
	default:
		return InstallmentsUpTo(v)
	}
}

func (s InstallmentSupport) String() string {
	switch s.Mode {
	case InstallmentsUnlimited:
		return fmt.Sprintf("unlimited (default cap %d)", DefaultInstallmentCap)
	case InstallmentsLimited:
		return fmt.Sprintf("up to %d", s.Max)
	default:
		return "unsupported"
	}
}

// Card represents one credit card in the user's collection. The scoring
// engine never mutates a Card; only the purchase-saving storage path adjusts
// AvailableLimit.
type Card struct {
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Utilization     *float64 // optional precomputed utilization in [0,1]
	Name            string
	ID              int64
	TotalLimit      float64
	AvailableLimit  float64
	CashbackPercent float64 // fraction in [0,1]
	PointRate       float64 // points earned per TRY
	PointValue      float64 // TRY value per point
	StatementDay    int     // 1-28
	DueDay          int     // 1-28
	Installments    InstallmentSupport
}

// Validate enforces the shape the engine assumes. In particular TotalLimit
// must be strictly positive; utilization math divides by it.
func (c *Card) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("card name is required")
	}
	if c.TotalLimit <= 0 {
		return fmt.Errorf("total limit must be positive, got %.2f", c.TotalLimit)
	}
	if c.AvailableLimit < 0 || c.AvailableLimit > c.TotalLimit {
		return fmt.Errorf("available limit must be between 0 and total limit %.2f, got %.2f",
			c.TotalLimit, c.AvailableLimit)
	}
	if c.StatementDay < 1 || c.StatementDay > 28 {
		return fmt.Errorf("statement day must be between 1 and 28, got %d", c.StatementDay)
	}
	if c.DueDay < 1 || c.DueDay > 28 {
		return fmt.Errorf("due day must be between 1 and 28, got %d", c.DueDay)
	}
	if c.CashbackPercent < 0 || c.CashbackPercent > 1 {
		return fmt.Errorf("cashback percent must be between 0 and 1, got %.4f", c.CashbackPercent)
	}
	if c.PointRate < 0 {
		return fmt.Errorf("point rate cannot be negative, got %.4f", c.PointRate)
	}
	if c.PointValue < 0 {
		return fmt.Errorf("point value cannot be negative, got %.4f", c.PointValue)
	}
	return nil
}

// CurrentUtilization returns the precomputed utilization when present,
// otherwise derives it from the limits.
func (c *Card) CurrentUtilization() float64 {
	if c.Utilization != nil {
		return *c.Utilization
	}
	return (c.TotalLimit - c.AvailableLimit) / c.TotalLimit
}
