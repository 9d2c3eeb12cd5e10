package engine

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/ebalci/cardpick/internal/model"
)

func testPurchase() model.Purchase {
	return model.Purchase{
		Amount:           1500,
		Category:         "electronics",
		Channel:          model.ChannelOnline,
		InstallmentCount: 3,
		Date:             time.Date(2024, time.August, 10, 0, 0, 0, 0, time.UTC),
	}
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestMatchScore(t *testing.T) {
	p := testPurchase()

	tests := []struct {
		name     string
		campaign model.Campaign
		want     float64
	}{
		{
			name:     "fully general campaign scores one",
			campaign: model.Campaign{Name: "General"},
			want:     1.0,
		},
		{
			name: "wildcard values contribute no criteria",
			campaign: model.Campaign{
				Name:     "Wildcards",
				Category: "general",
				Channel:  "any",
				Brand:    "GENERAL",
			},
			want: 1.0,
		},
		{
			name: "all criteria match",
			campaign: model.Campaign{
				Name:      "Full",
				Category:  "electronics",
				Channel:   model.ChannelOnline,
				MinAmount: 1000,
				StartDate: datePtr(2024, time.August, 1),
				EndDate:   datePtr(2024, time.August, 31),
			},
			want: 1.0,
		},
		{
			name: "partial match uses matched over present",
			campaign: model.Campaign{
				Name:      "Partial",
				Category:  "electronics",
				Channel:   model.ChannelOffline,
				MinAmount: 1000,
			},
			want: 2.0 / 3.0,
		},
		{
			name: "partial match floors at 0.3",
			campaign: model.Campaign{
				Name:      "Floored",
				Category:  "groceries",
				Channel:   model.ChannelOffline,
				Brand:     "SomeBrand",
				MinAmount: 10000,
				StartDate: datePtr(2024, time.August, 1),
			},
			want: 0.3, // only the date range matches, 1/5 floors to 0.3
		},
		{
			name: "nothing matches scores zero",
			campaign: model.Campaign{
				Name:     "Miss",
				Category: "groceries",
				Channel:  model.ChannelOffline,
			},
			want: 0,
		},
		{
			name: "expired date range fails that criterion",
			campaign: model.Campaign{
				Name:    "Expired",
				EndDate: datePtr(2024, time.July, 31),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchScore(p, tt.campaign)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("matchScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchCampaigns_Aggregation(t *testing.T) {
	p := testPurchase()
	campaigns := []model.Campaign{
		{Name: "Cashback A", ExtraCashbackPercent: 0.02, FlatDiscount: 50},
		{Name: "Cashback B", ExtraCashbackPercent: 0.03, FlatDiscount: 80, ExtraPointRate: 0.5},
		{Name: "Installments", MaxInstallments: 9, InterestFreeMonths: 3},
	}

	res := MatchCampaigns(p, campaigns)

	if res.Applicable != 3 {
		t.Fatalf("Applicable = %d, want 3", res.Applicable)
	}
	if math.Abs(res.Benefits.ExtraCashbackPercent-0.05) > 1e-9 {
		t.Errorf("extra cashback summed to %v, want 0.05", res.Benefits.ExtraCashbackPercent)
	}
	if math.Abs(res.Benefits.ExtraPointRate-0.5) > 1e-9 {
		t.Errorf("extra point rate = %v, want 0.5", res.Benefits.ExtraPointRate)
	}
	// Flat discount is maxed, not summed.
	if res.Benefits.FlatDiscount != 80 {
		t.Errorf("flat discount = %v, want 80", res.Benefits.FlatDiscount)
	}
	if res.Benefits.MaxInstallments != 9 {
		t.Errorf("max installments = %d, want 9", res.Benefits.MaxInstallments)
	}
	if res.Benefits.InterestFreeMonths != 3 {
		t.Errorf("interest-free months = %d, want 3", res.Benefits.InterestFreeMonths)
	}
	if res.MatchScore != 1.0 {
		t.Errorf("match score = %v, want 1.0", res.MatchScore)
	}
	if !res.EnrollmentOK || !res.CodeOK {
		t.Errorf("requirement flags should be trivially true with no requirements")
	}
}

func TestMatchCampaigns_UnmetRequirements(t *testing.T) {
	p := testPurchase()
	campaigns := []model.Campaign{
		{Name: "Needs enrollment", ExtraCashbackPercent: 0.05, RequiresEnrollment: true},
		{Name: "Needs code", FlatDiscount: 100, RequiresCode: true},
		{Name: "Enrolled", ExtraCashbackPercent: 0.01, RequiresEnrollment: true, Enrolled: true},
	}

	res := MatchCampaigns(p, campaigns)

	if res.EnrollmentOK {
		t.Error("EnrollmentOK should be false with an unmet enrollment gate")
	}
	if res.CodeOK {
		t.Error("CodeOK should be false with an unmet code gate")
	}
	// Gated campaigns stay applicable but contribute no benefits.
	if res.Applicable != 3 {
		t.Errorf("Applicable = %d, want 3", res.Applicable)
	}
	if math.Abs(res.Benefits.ExtraCashbackPercent-0.01) > 1e-9 {
		t.Errorf("only the satisfied campaign should contribute, got %v", res.Benefits.ExtraCashbackPercent)
	}
	if res.Benefits.FlatDiscount != 0 {
		t.Errorf("gated flat discount leaked through: %v", res.Benefits.FlatDiscount)
	}
}

func TestMatchCampaigns_NoneApplicable(t *testing.T) {
	p := testPurchase()
	campaigns := []model.Campaign{
		{Name: "Miss", Category: "groceries", Channel: model.ChannelOffline},
	}

	res := MatchCampaigns(p, campaigns)
	if res.Applicable != 0 {
		t.Errorf("Applicable = %d, want 0", res.Applicable)
	}
	if res.MatchScore != 0 {
		t.Errorf("MatchScore = %v, want 0", res.MatchScore)
	}
	if !res.EnrollmentOK || !res.CodeOK {
		t.Error("requirement flags are trivially true when nothing applies")
	}
}

func TestMatchCampaigns_DoesNotMutateInput(t *testing.T) {
	p := testPurchase()
	campaigns := []model.Campaign{
		{Name: "A", ExtraCashbackPercent: 0.02},
	}
	before := campaigns[0]

	MatchCampaigns(p, campaigns)

	if !reflect.DeepEqual(campaigns[0], before) {
		t.Error("MatchCampaigns mutated its campaign input")
	}
}
