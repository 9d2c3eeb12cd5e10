package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ebalci/cardpick/internal/cli"
	"github.com/ebalci/cardpick/internal/model"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo cards and campaigns",
		Long: `Load a set of example cards and campaigns to try the recommender
without entering your own data first. Existing data is left untouched;
cards whose names collide are skipped.`,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	cards := demoCards()
	campaigns := demoCampaigns()

	bar := progressbar.NewOptions(len(cards)+len(campaigns),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Seeding demo data...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	cardIDs := make(map[string]int64, len(cards))
	var skipped int
	for i := range cards {
		card := &cards[i]
		if existing, getErr := store.GetCardByName(ctx, card.Name); getErr == nil {
			cardIDs[card.Name] = existing.ID
			skipped++
			_ = bar.Add(1)
			continue
		}
		if saveErr := store.SaveCard(ctx, card); saveErr != nil {
			return fmt.Errorf("failed to seed card %q: %w", card.Name, saveErr)
		}
		cardIDs[card.Name] = card.ID
		_ = bar.Add(1)
	}

	for i := range campaigns {
		seedOne := campaigns[i]
		campaign := seedOne.campaign
		if seedOne.cardName != "" {
			id, ok := cardIDs[seedOne.cardName]
			if !ok {
				return fmt.Errorf("demo campaign %q references unknown card %q", campaign.Name, seedOne.cardName)
			}
			campaign.CardID = &id
		}
		if saveErr := store.SaveCampaign(ctx, &campaign); saveErr != nil {
			return fmt.Errorf("failed to seed campaign %q: %w", campaign.Name, saveErr)
		}
		_ = bar.Add(1)
	}

	_ = bar.Finish()
	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Seeded %d cards (%d already present) and %d campaigns", len(cards), skipped, len(campaigns))))
	fmt.Println(cli.SubtleStyle.Render("Try: cardpick recommend --amount 1500 --category electronics --installments 3"))
	return nil
}

func demoCards() []model.Card {
	return []model.Card{
		{
			Name:            "Platinum",
			TotalLimit:      50000,
			AvailableLimit:  45000,
			CashbackPercent: 0.025,
			PointRate:       1.0,
			PointValue:      0.01,
			StatementDay:    15,
			DueDay:          5,
			Installments:    model.InstallmentsUpTo(12),
		},
		{
			Name:            "Everyday",
			TotalLimit:      20000,
			AvailableLimit:  18000,
			CashbackPercent: 0.01,
			PointRate:       2.0,
			PointValue:      0.005,
			StatementDay:    1,
			DueDay:          11,
			Installments:    model.UnlimitedInstallments(),
		},
		{
			Name:            "Starter",
			TotalLimit:      8000,
			AvailableLimit:  6500,
			CashbackPercent: 0.005,
			StatementDay:    20,
			DueDay:          28,
			Installments:    model.NoInstallments(),
		},
	}
}

type seedCampaign struct {
	cardName string
	campaign model.Campaign
}

func demoCampaigns() []seedCampaign {
	start := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)

	return []seedCampaign{
		{
			cardName: "Platinum",
			campaign: model.Campaign{
				Name:                 "Electronics Cashback Boost",
				Types:                []string{model.BenefitCashback},
				Category:             "electronics",
				Channel:              model.ChannelOnline,
				MinAmount:            1000,
				StartDate:            &start,
				EndDate:              &end,
				ExtraCashbackPercent: 0.03,
				CapAmount:            500,
				RequiresEnrollment:   true,
				Enrolled:             true,
				Active:               true,
			},
		},
		{
			cardName: "Everyday",
			campaign: model.Campaign{
				Name:            "Grocery Installment Boost",
				Types:           []string{model.BenefitInstallmentBoost},
				Category:        "grocery",
				MaxInstallments: 6,
				Active:          true,
			},
		},
		{
			campaign: model.Campaign{
				Name:         "Welcome Discount",
				Types:        []string{model.BenefitFlatDiscount},
				MinAmount:    500,
				FlatDiscount: 50,
				EndDate:      &end,
				Active:       true,
			},
		},
	}
}
