package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ebalci/cardpick/internal/cli"
	"github.com/ebalci/cardpick/internal/common"
	"github.com/ebalci/cardpick/internal/engine"
	"github.com/ebalci/cardpick/internal/model"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend the best card for a purchase",
		Long: `Score every registered card against a proposed purchase and print a
ranked recommendation with a breakdown of each card's score.`,
		RunE: runRecommend,
	}

	cmd.Flags().Float64("amount", 0, "purchase amount in TRY (required)")
	cmd.Flags().String("category", "", "purchase category (e.g. electronics, grocery)")
	cmd.Flags().String("channel", model.ChannelOnline, "purchase channel (online, offline)")
	cmd.Flags().Int("installments", 1, "requested installment count")
	cmd.Flags().String("date", "", "purchase date as YYYY-MM-DD (default: today)")
	cmd.Flags().String("merchant", "", "merchant or brand name")
	cmd.Flags().Float64("pos-fee", 0, "POS fee as a fraction of the amount")
	cmd.Flags().Int("top", 0, "show only the top N cards (0 shows all)")
	weightFlags(cmd)

	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	purchase, err := purchaseFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	cards, err := store.GetCards(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cards: %w", err)
	}
	if len(cards) == 0 {
		return common.NewUserError("add a card first with 'cardpick cards add'", common.ErrNoCards)
	}

	campaignsByCard := make(map[int64][]model.Campaign, len(cards))
	for _, card := range cards {
		campaigns, campErr := store.GetCampaignsForCard(ctx, card.ID)
		if campErr != nil {
			return fmt.Errorf("failed to load campaigns for %q: %w", card.Name, campErr)
		}
		campaignsByCard[card.ID] = campaigns
	}

	eng := engine.NewWithWeights(resolveWeights(cmd))
	slog.Debug("scoring purchase",
		"amount", purchase.Amount,
		"cards", len(cards),
		"weights", eng.Weights())

	scored := eng.ScoreCards(*purchase, cards, campaignsByCard)
	if len(scored) == 0 {
		fmt.Println(cli.FormatWarning("no card can cover this purchase; every available limit is too low"))
		return nil
	}

	if top, _ := cmd.Flags().GetInt("top"); top > 0 && top < len(scored) {
		scored = scored[:top]
	}

	renderRecommendations(purchase, scored)
	return nil
}

func purchaseFromFlags(cmd *cobra.Command) (*model.Purchase, error) {
	amount, _ := cmd.Flags().GetFloat64("amount")
	category, _ := cmd.Flags().GetString("category")
	channel, _ := cmd.Flags().GetString("channel")
	installments, _ := cmd.Flags().GetInt("installments")
	merchant, _ := cmd.Flags().GetString("merchant")
	posFee, _ := cmd.Flags().GetFloat64("pos-fee")
	dateStr, _ := cmd.Flags().GetString("date")

	date := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, common.NewUserError(
				fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", dateStr), err)
		}
		date = parsed
	}

	purchase := &model.Purchase{
		Date:             date,
		Category:         category,
		Channel:          channel,
		Merchant:         merchant,
		Amount:           amount,
		POSFeePercent:    posFee,
		InstallmentCount: installments,
	}
	if err := purchase.Validate(); err != nil {
		return nil, common.NewUserError("invalid purchase", err)
	}
	return purchase, nil
}

func renderRecommendations(purchase *model.Purchase, scored model.ScoredCards) {
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Best card for %.2f TRY (%s)", purchase.Amount, describePurchase(purchase))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("#"),
		cli.TableHeaderStyle.Render("Card"),
		cli.TableHeaderStyle.Render("Score"),
		cli.TableHeaderStyle.Render("Net Value"),
		cli.TableHeaderStyle.Render("Installments"),
		cli.TableHeaderStyle.Render("Utilization"))

	for i, sc := range scored {
		name := sc.Card.Name
		if i == 0 {
			name = cli.RankStyle.Render(cli.TrophyIcon + " " + name)
		}
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%.2f TRY\t%d\t%.0f%%\n",
			i+1, name, sc.TotalScore, sc.Breakdown.NetValueTL,
			sc.AdjustedInstallments, sc.ResultingUtilization*100)
	}
	_ = w.Flush()

	fmt.Println()
	fmt.Println(cli.BoldStyle.Render("Why " + scored[0].Card.Name + ":"))
	fmt.Println(cli.SubtleStyle.Render(scored[0].Explanation))

	if notes := scored[0].Breakdown.Notes; len(notes) > 0 {
		fmt.Println()
		fmt.Println(cli.SubtleStyle.Render("Details: " + strings.Join(notes, "; ")))
	}
}

func describePurchase(p *model.Purchase) string {
	parts := []string{p.Channel}
	if p.Category != "" {
		parts = append(parts, p.Category)
	}
	if p.Merchant != "" {
		parts = append(parts, p.Merchant)
	}
	if p.InstallmentCount > 1 {
		parts = append(parts, fmt.Sprintf("%d installments", p.InstallmentCount))
	}
	return strings.Join(parts, ", ")
}
