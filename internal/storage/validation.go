// Package storage provides the SQLite persistence layer for cards, campaigns
// and purchase history.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ebalci/cardpick/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidID       = errors.New("id must be positive")
	ErrInvalidCard     = errors.New("invalid card")
	ErrInvalidCampaign = errors.New("invalid campaign")
	ErrInvalidPurchase = errors.New("invalid purchase")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures an identifier is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateCard validates a card before it is written.
func validateCard(card *model.Card) error {
	if card == nil {
		return fmt.Errorf("%w: card", ErrNilParameter)
	}
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	return nil
}

// validateCampaign validates a campaign before it is written.
func validateCampaign(campaign *model.Campaign) error {
	if campaign == nil {
		return fmt.Errorf("%w: campaign", ErrNilParameter)
	}
	if err := campaign.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCampaign, err)
	}
	return nil
}

// validatePurchase validates a purchase before it is written.
func validatePurchase(purchase *model.Purchase) error {
	if purchase == nil {
		return fmt.Errorf("%w: purchase", ErrNilParameter)
	}
	if err := purchase.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPurchase, err)
	}
	return nil
}
