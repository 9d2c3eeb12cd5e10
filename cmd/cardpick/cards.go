package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ebalci/cardpick/internal/cli"
	"github.com/ebalci/cardpick/internal/common"
	"github.com/ebalci/cardpick/internal/model"
)

func cardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage your credit cards",
		Long:  `List, add, update and remove the credit cards the recommender chooses from.`,
	}

	cmd.AddCommand(listCardsCmd())
	cmd.AddCommand(addCardCmd())
	cmd.AddCommand(removeCardCmd())
	cmd.AddCommand(setLimitCmd())

	return cmd
}

func listCardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			cards, err := store.GetCards(ctx)
			if err != nil {
				return fmt.Errorf("failed to get cards: %w", err)
			}
			if len(cards) == 0 {
				fmt.Println(cli.InfoStyle.Render("No cards found. Use 'cardpick cards add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Limit"),
				cli.TableHeaderStyle.Render("Available"),
				cli.TableHeaderStyle.Render("Cashback"),
				cli.TableHeaderStyle.Render("Installments"),
				cli.TableHeaderStyle.Render("Stmt/Due"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4), strings.Repeat("-", 16),
				strings.Repeat("-", 10), strings.Repeat("-", 10),
				strings.Repeat("-", 8), strings.Repeat("-", 12),
				strings.Repeat("-", 8))

			for _, card := range cards {
				fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.1f%%\t%s\t%d/%d\n",
					card.ID, card.Name, card.TotalLimit, card.AvailableLimit,
					card.CashbackPercent*100, card.Installments.String(),
					card.StatementDay, card.DueDay)
			}
			return nil
		},
	}
}

func addCardCmd() *cobra.Command {
	var (
		totalLimit      float64
		availableLimit  float64
		cashbackPercent float64
		pointRate       float64
		pointValue      float64
		statementDay    int
		dueDay          int
		maxInstallments int
		noInstallments  bool
		unlimited       bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			support := model.InstallmentsUpTo(maxInstallments)
			if noInstallments {
				support = model.NoInstallments()
			} else if unlimited {
				support = model.UnlimitedInstallments()
			}

			if !cmd.Flags().Changed("available") {
				availableLimit = totalLimit
			}

			card := &model.Card{
				Name:            args[0],
				TotalLimit:      totalLimit,
				AvailableLimit:  availableLimit,
				CashbackPercent: cashbackPercent,
				PointRate:       pointRate,
				PointValue:      pointValue,
				StatementDay:    statementDay,
				DueDay:          dueDay,
				Installments:    support,
			}
			if err := store.SaveCard(ctx, card); err != nil {
				return common.NewUserError(fmt.Sprintf("failed to add card %q", args[0]), err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added card %q (id %d)", card.Name, card.ID)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&totalLimit, "limit", 0, "total credit limit in TRY (required)")
	cmd.Flags().Float64Var(&availableLimit, "available", 0, "available limit in TRY (default: total limit)")
	cmd.Flags().Float64Var(&cashbackPercent, "cashback", 0, "base cashback as a fraction (0.02 = 2%)")
	cmd.Flags().Float64Var(&pointRate, "point-rate", 0, "points earned per TRY")
	cmd.Flags().Float64Var(&pointValue, "point-value", 0, "TRY value of one point")
	cmd.Flags().IntVar(&statementDay, "statement-day", 1, "statement day of month (1-28)")
	cmd.Flags().IntVar(&dueDay, "due-day", 10, "payment due day of month (1-28)")
	cmd.Flags().IntVar(&maxInstallments, "max-installments", 0, "maximum installment count")
	cmd.Flags().BoolVar(&noInstallments, "no-installments", false, "card does not support installments")
	cmd.Flags().BoolVar(&unlimited, "unlimited-installments", false, "card advertises no installment cap")

	_ = cmd.MarkFlagRequired("limit")

	return cmd
}

func removeCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a card and its campaigns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if err := store.DeleteCard(ctx, card.ID); err != nil {
				return fmt.Errorf("failed to remove card: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed card %q", args[0])))
			return nil
		},
	}
}

func setLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-limit <name> <available>",
		Short: "Set a card's available limit",
		Long:  `Correct the available limit after payments or spending outside this tool.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var available float64
			if _, err := fmt.Sscanf(args[1], "%f", &available); err != nil {
				return common.NewUserError(fmt.Sprintf("invalid amount %q", args[1]), err)
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
			if err := store.UpdateCardLimit(ctx, card.ID, available); err != nil {
				return fmt.Errorf("failed to update limit: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Set %q available limit to %.2f TRY", args[0], available)))
			return nil
		},
	}
}
