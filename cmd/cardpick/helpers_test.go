package main

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ebalci/cardpick/internal/common"
	"github.com/ebalci/cardpick/internal/model"
)

func TestResolveWeights_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cmd := recommendCmd()
	got := resolveWeights(cmd)
	if got != model.DefaultWeights() {
		t.Errorf("weights = %+v, want defaults", got)
	}
}

func TestResolveWeights_ConfigOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("scoring.weights.value", 0.6)
	viper.Set("scoring.weights.cashflow", 0.1)

	got := resolveWeights(recommendCmd())
	if got.Value != 0.6 {
		t.Errorf("Value = %v, want 0.6", got.Value)
	}
	if got.Cashflow != 0.1 {
		t.Errorf("Cashflow = %v, want 0.1", got.Cashflow)
	}
	// Untouched weights keep their defaults.
	if got.Risk != model.DefaultWeights().Risk {
		t.Errorf("Risk = %v, want default", got.Risk)
	}
}

func TestResolveWeights_FlagBeatsConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("scoring.weights.value", 0.6)

	cmd := recommendCmd()
	if err := cmd.Flags().Set("weight-value", "0.8"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	got := resolveWeights(cmd)
	if got.Value != 0.8 {
		t.Errorf("Value = %v, want flag override 0.8", got.Value)
	}
}

func TestSetupLogging_InvalidLevel(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("logging.level", "verbose")
	if err := setupLogging(); !errors.Is(err, common.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestPurchaseFromFlags(t *testing.T) {
	cmd := recommendCmd()
	flags := map[string]string{
		"amount":       "1500",
		"category":     "electronics",
		"channel":      "online",
		"installments": "3",
		"date":         "2024-08-10",
		"merchant":     "TechStore",
		"pos-fee":      "0.01",
	}
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("failed to set %s: %v", name, err)
		}
	}

	p, err := purchaseFromFlags(cmd)
	if err != nil {
		t.Fatalf("purchaseFromFlags failed: %v", err)
	}
	if p.Amount != 1500 {
		t.Errorf("Amount = %v, want 1500", p.Amount)
	}
	if p.Category != "electronics" || p.Merchant != "TechStore" {
		t.Errorf("category/merchant = %q/%q", p.Category, p.Merchant)
	}
	if p.InstallmentCount != 3 {
		t.Errorf("InstallmentCount = %d, want 3", p.InstallmentCount)
	}
	want := time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC)
	if !p.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", p.Date, want)
	}
}

func TestPurchaseFromFlags_DefaultsToToday(t *testing.T) {
	cmd := recommendCmd()
	if err := cmd.Flags().Set("amount", "100"); err != nil {
		t.Fatalf("failed to set amount: %v", err)
	}

	p, err := purchaseFromFlags(cmd)
	if err != nil {
		t.Fatalf("purchaseFromFlags failed: %v", err)
	}
	if time.Since(p.Date) > time.Minute {
		t.Errorf("Date = %v, expected roughly now", p.Date)
	}
}

func TestPurchaseFromFlags_Invalid(t *testing.T) {
	tests := []struct {
		flags map[string]string
		name  string
	}{
		{name: "bad date", flags: map[string]string{"amount": "100", "date": "10-08-2024"}},
		{name: "zero amount", flags: map[string]string{"amount": "0"}},
		{name: "bad channel", flags: map[string]string{"amount": "100", "channel": "phone"}},
		{name: "zero installments", flags: map[string]string{"amount": "100", "installments": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := recommendCmd()
			for name, value := range tt.flags {
				if err := cmd.Flags().Set(name, value); err != nil {
					t.Fatalf("failed to set %s: %v", name, err)
				}
			}
			if _, err := purchaseFromFlags(cmd); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
