// Package service defines the interfaces between the CLI, the scoring
// engine, and the persistence layer.
package service

import (
	"context"
	"time"

	"github.com/ebalci/cardpick/internal/model"
)

// PurchaseFilter defines filtering options for purchase-history queries.
type PurchaseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	CardID    *int64
	Limit     int
	Offset    int
}

// Storage defines the contract for the persistence layer. The scoring engine
// never touches storage; the CLI sequences reads before scoring and persists
// afterwards.
type Storage interface {
	// Card operations
	SaveCard(ctx context.Context, card *model.Card) error
	GetCard(ctx context.Context, id int64) (*model.Card, error)
	GetCardByName(ctx context.Context, name string) (*model.Card, error)
	GetCards(ctx context.Context) ([]model.Card, error)
	UpdateCardLimit(ctx context.Context, id int64, availableLimit float64) error
	DeleteCard(ctx context.Context, id int64) error

	// Campaign operations
	SaveCampaign(ctx context.Context, campaign *model.Campaign) error
	GetCampaign(ctx context.Context, id int64) (*model.Campaign, error)
	GetActiveCampaigns(ctx context.Context) ([]model.Campaign, error)
	GetCampaignsForCard(ctx context.Context, cardID int64) ([]model.Campaign, error)
	DeleteCampaign(ctx context.Context, id int64) error

	// Purchase history. SavePurchase decrements the card's available limit
	// within the same database transaction.
	SavePurchase(ctx context.Context, cardID int64, purchase model.Purchase) (*model.PurchaseRecord, error)
	GetPurchases(ctx context.Context, filter PurchaseFilter) ([]model.PurchaseRecord, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
}
