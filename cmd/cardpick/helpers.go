package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ebalci/cardpick/internal/common"
	"github.com/ebalci/cardpick/internal/config"
	"github.com/ebalci/cardpick/internal/model"
	"github.com/ebalci/cardpick/internal/service"
	"github.com/ebalci/cardpick/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// closeStorage closes the store, logging a failure instead of masking the
// command's own error.
func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		common.LogError(err, "failed to close storage", common.Fields{
			"database": viper.GetString("database.path"),
		})
	}
}

// weightFlags registers the scoring-weight override flags on a command.
func weightFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("weight-value", 0, "override the net-value weight")
	cmd.Flags().Float64("weight-cashflow", 0, "override the cashflow weight")
	cmd.Flags().Float64("weight-risk", 0, "override the risk weight")
	cmd.Flags().Float64("weight-usability", 0, "override the usability weight")
	cmd.Flags().Float64("weight-campaign", 0, "override the campaign-match weight")
}

// resolveWeights layers config-file weights and flag overrides onto the
// defaults. Precedence: flags beat config, config beats defaults.
func resolveWeights(cmd *cobra.Command) model.Weights {
	var overrides model.WeightOverrides

	configKeys := map[string]**float64{
		"scoring.weights.value":     &overrides.Value,
		"scoring.weights.cashflow":  &overrides.Cashflow,
		"scoring.weights.risk":      &overrides.Risk,
		"scoring.weights.usability": &overrides.Usability,
		"scoring.weights.campaign":  &overrides.Campaign,
	}
	for key, target := range configKeys {
		if viper.IsSet(key) {
			v := viper.GetFloat64(key)
			*target = &v
		}
	}

	flagNames := map[string]**float64{
		"weight-value":     &overrides.Value,
		"weight-cashflow":  &overrides.Cashflow,
		"weight-risk":      &overrides.Risk,
		"weight-usability": &overrides.Usability,
		"weight-campaign":  &overrides.Campaign,
	}
	for name, target := range flagNames {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetFloat64(name)
			*target = &v
		}
	}

	weights := overrides.Resolve()
	if math.Abs(weights.Sum()-1) > 0.01 {
		slog.Warn("scoring weights do not sum to 1; composite scores will be skewed",
			"sum", weights.Sum())
	}
	return weights
}
