package model

import "time"

// PurchaseRecord is a purchase persisted against the card it was charged to.
// Saving one decrements the card's available limit; the scoring engine never
// sees this type.
type PurchaseRecord struct {
	Purchase
	CreatedAt time.Time
	ID        int64
	CardID    int64
}
