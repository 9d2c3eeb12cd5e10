package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ebalci/cardpick/internal/cli"
	"github.com/ebalci/cardpick/internal/common"
	"github.com/ebalci/cardpick/internal/model"
)

func campaignsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Manage promotional campaigns",
		Long: `List, add and remove the campaigns the recommender matches purchases
against. A campaign without a card applies to every card.`,
	}

	cmd.AddCommand(listCampaignsCmd())
	cmd.AddCommand(addCampaignCmd())
	cmd.AddCommand(removeCampaignCmd())

	return cmd
}

func listCampaignsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all active campaigns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			campaigns, err := store.GetActiveCampaigns(ctx)
			if err != nil {
				return fmt.Errorf("failed to get campaigns: %w", err)
			}
			if len(campaigns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No active campaigns. Use 'cardpick campaigns add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Card"),
				cli.TableHeaderStyle.Render("Targets"),
				cli.TableHeaderStyle.Render("Benefits"),
				cli.TableHeaderStyle.Render("Window"),
				cli.TableHeaderStyle.Render("Gates"))

			for i := range campaigns {
				c := &campaigns[i]
				cardLabel := "all cards"
				if c.CardID != nil {
					cardLabel = fmt.Sprintf("card %d", *c.CardID)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, cardLabel,
					describeTargets(c), describeBenefits(c),
					describeWindow(c), describeGates(c))
			}
			return nil
		},
	}
}

func describeTargets(c *model.Campaign) string {
	var parts []string
	if c.Category != "" && c.Category != "general" {
		parts = append(parts, c.Category)
	}
	if c.Channel != "" && c.Channel != "any" {
		parts = append(parts, c.Channel)
	}
	if c.Brand != "" && c.Brand != "general" {
		parts = append(parts, c.Brand)
	}
	if c.MinAmount > 0 {
		parts = append(parts, fmt.Sprintf("min %.0f TRY", c.MinAmount))
	}
	if len(parts) == 0 {
		return "general"
	}
	return strings.Join(parts, ", ")
}

func describeBenefits(c *model.Campaign) string {
	var parts []string
	if c.ExtraCashbackPercent > 0 {
		parts = append(parts, fmt.Sprintf("+%.1f%% cashback", c.ExtraCashbackPercent*100))
	}
	if c.ExtraPointRate > 0 {
		parts = append(parts, fmt.Sprintf("+%.1f pts/TRY", c.ExtraPointRate))
	}
	if c.FlatDiscount > 0 {
		parts = append(parts, fmt.Sprintf("%.0f TRY off", c.FlatDiscount))
	}
	if c.MaxInstallments > 0 {
		parts = append(parts, fmt.Sprintf("%d installments", c.MaxInstallments))
	}
	if c.InterestFreeMonths > 0 {
		parts = append(parts, fmt.Sprintf("%d mo interest-free", c.InterestFreeMonths))
	}
	if c.CapAmount > 0 {
		parts = append(parts, fmt.Sprintf("cap %.0f TRY", c.CapAmount))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func describeWindow(c *model.Campaign) string {
	switch {
	case c.StartDate != nil && c.EndDate != nil:
		return c.StartDate.Format("2006-01-02") + " to " + c.EndDate.Format("2006-01-02")
	case c.EndDate != nil:
		return "until " + c.EndDate.Format("2006-01-02")
	case c.StartDate != nil:
		return "from " + c.StartDate.Format("2006-01-02")
	default:
		return "always"
	}
}

func describeGates(c *model.Campaign) string {
	var parts []string
	if c.RequiresEnrollment {
		if c.Enrolled {
			parts = append(parts, "enrolled")
		} else {
			parts = append(parts, "needs enrollment")
		}
	}
	if c.RequiresCode {
		if c.CodeProvided {
			parts = append(parts, "code ok")
		} else {
			parts = append(parts, "needs code")
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func addCampaignCmd() *cobra.Command {
	var (
		cardName           string
		types              []string
		category           string
		channel            string
		brand              string
		minAmount          float64
		startStr           string
		endStr             string
		extraCashback      float64
		extraPointRate     float64
		flatDiscount       float64
		capAmount          float64
		monthlyCap         bool
		maxInstallments    int
		interestFreeMonths int
		requiresEnrollment bool
		enrolled           bool
		requiresCode       bool
		codeProvided       bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			campaign := &model.Campaign{
				Name:                 args[0],
				Types:                types,
				Category:             category,
				Channel:              channel,
				Brand:                brand,
				MinAmount:            minAmount,
				ExtraCashbackPercent: extraCashback,
				ExtraPointRate:       extraPointRate,
				FlatDiscount:         flatDiscount,
				CapAmount:            capAmount,
				MonthlyCap:           monthlyCap,
				MaxInstallments:      maxInstallments,
				InterestFreeMonths:   interestFreeMonths,
				RequiresEnrollment:   requiresEnrollment,
				Enrolled:             enrolled,
				RequiresCode:         requiresCode,
				CodeProvided:         codeProvided,
				Active:               true,
			}

			if cardName != "" {
				card, cardErr := store.GetCardByName(ctx, cardName)
				if cardErr != nil {
					return common.NewUserError(fmt.Sprintf("card %q", cardName), cardErr)
				}
				campaign.CardID = &card.ID
			}

			if startStr != "" {
				start, parseErr := time.Parse("2006-01-02", startStr)
				if parseErr != nil {
					return common.NewUserError(fmt.Sprintf("invalid start date %q", startStr), parseErr)
				}
				campaign.StartDate = &start
			}
			if endStr != "" {
				end, parseErr := time.Parse("2006-01-02", endStr)
				if parseErr != nil {
					return common.NewUserError(fmt.Sprintf("invalid end date %q", endStr), parseErr)
				}
				campaign.EndDate = &end
			}

			if err := store.SaveCampaign(ctx, campaign); err != nil {
				return common.NewUserError(fmt.Sprintf("failed to add campaign %q", args[0]), err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added campaign %q (id %d)", campaign.Name, campaign.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&cardName, "card", "", "bind the campaign to one card (default: all cards)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "benefit kinds (cashback, points, flatDiscount, installmentBoost, interestFree)")
	cmd.Flags().StringVar(&category, "category", "", "target category (empty or 'general' matches any)")
	cmd.Flags().StringVar(&channel, "channel", "", "target channel (empty or 'any' matches any)")
	cmd.Flags().StringVar(&brand, "brand", "", "target merchant brand")
	cmd.Flags().Float64Var(&minAmount, "min-amount", 0, "minimum purchase amount in TRY")
	cmd.Flags().StringVar(&startStr, "start", "", "start date as YYYY-MM-DD")
	cmd.Flags().StringVar(&endStr, "end", "", "end date as YYYY-MM-DD")
	cmd.Flags().Float64Var(&extraCashback, "extra-cashback", 0, "extra cashback as a fraction")
	cmd.Flags().Float64Var(&extraPointRate, "extra-point-rate", 0, "extra points per TRY")
	cmd.Flags().Float64Var(&flatDiscount, "flat-discount", 0, "flat discount in TRY")
	cmd.Flags().Float64Var(&capAmount, "cap", 0, "benefit cap in TRY (0 = uncapped)")
	cmd.Flags().BoolVar(&monthlyCap, "monthly-cap", false, "the cap resets monthly")
	cmd.Flags().IntVar(&maxInstallments, "max-installments", 0, "installment ceiling granted by the campaign")
	cmd.Flags().IntVar(&interestFreeMonths, "interest-free", 0, "interest-free months")
	cmd.Flags().BoolVar(&requiresEnrollment, "requires-enrollment", false, "benefits require enrollment")
	cmd.Flags().BoolVar(&enrolled, "enrolled", false, "you are enrolled")
	cmd.Flags().BoolVar(&requiresCode, "requires-code", false, "benefits require a promo code")
	cmd.Flags().BoolVar(&codeProvided, "code-provided", false, "you have the promo code")

	return cmd
}

func removeCampaignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a campaign by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return common.NewUserError(fmt.Sprintf("invalid campaign id %q", args[0]), err)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if err := store.DeleteCampaign(ctx, id); err != nil {
				return common.NewUserError(fmt.Sprintf("failed to remove campaign %d", id), err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed campaign %d", id)))
			return nil
		},
	}
}
