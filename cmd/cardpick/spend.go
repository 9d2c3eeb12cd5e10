package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ebalci/cardpick/internal/cli"
	"github.com/ebalci/cardpick/internal/common"
	"github.com/ebalci/cardpick/internal/service"
)

func spendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spend <card>",
		Short: "Record a purchase against a card",
		Long: `Record that you went through with a purchase. The card's available
limit drops by the amount so future recommendations stay accurate.`,
		Args: cobra.ExactArgs(1),
		RunE: runSpend,
	}

	cmd.Flags().Float64("amount", 0, "purchase amount in TRY (required)")
	cmd.Flags().String("category", "", "purchase category")
	cmd.Flags().String("channel", "online", "purchase channel (online, offline)")
	cmd.Flags().Int("installments", 1, "installment count")
	cmd.Flags().String("date", "", "purchase date as YYYY-MM-DD (default: today)")
	cmd.Flags().String("merchant", "", "merchant or brand name")
	cmd.Flags().Float64("pos-fee", 0, "POS fee as a fraction of the amount")

	_ = cmd.MarkFlagRequired("amount")

	cmd.AddCommand(spendHistoryCmd())

	return cmd
}

func runSpend(cmd *cobra.Command, args []string) error {
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

	card, err := store.GetCardByName(ctx, args[0])
	if err != nil {
		return common.NewUserError(fmt.Sprintf("card %q", args[0]), err)
	}

	rec, err := store.SavePurchase(ctx, card.ID, *purchase)
	if err != nil {
		return common.NewUserError("failed to record purchase", err)
	}

	remaining := card.AvailableLimit - purchase.Amount
	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Recorded %.2f TRY on %q (purchase %d, %.2f TRY left)",
		purchase.Amount, card.Name, rec.ID, remaining)))
	return nil
}

func spendHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent purchases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			records, err := store.GetPurchases(ctx, service.PurchaseFilter{Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to get purchases: %w", err)
			}
			if len(records) == 0 {
				fmt.Println(cli.InfoStyle.Render("No purchases recorded yet."))
				return nil
			}

			cards, err := store.GetCards(ctx)
			if err != nil {
				return fmt.Errorf("failed to get cards: %w", err)
			}
			cardNames := make(map[int64]string, len(cards))
			for _, c := range cards {
				cardNames[c.ID] = c.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Card"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Merchant"),
				cli.TableHeaderStyle.Render("Installments"))

			for _, rec := range records {
				name := cardNames[rec.CardID]
				if name == "" {
					name = fmt.Sprintf("card %d", rec.CardID)
				}
				category := rec.Category
				if category == "" {
					category = "-"
				}
				merchant := rec.Merchant
				if merchant == "" {
					merchant = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%.2f TRY\t%s\t%s\t%d\n",
					rec.Date.Format("2006-01-02"), name, rec.Amount,
					category, merchant, rec.InstallmentCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum purchases to show")

	return cmd
}
