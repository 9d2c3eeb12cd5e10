package model

import (
	"testing"
)

func validCard() Card {
	return Card{
		ID:              1,
		Name:            "Platinum",
		TotalLimit:      50000,
		AvailableLimit:  45000,
		StatementDay:    15,
		DueDay:          5,
		CashbackPercent: 0.025,
		PointRate:       1.0,
		PointValue:      0.01,
		Installments:    InstallmentsUpTo(12),
	}
}

func TestInstallmentSupport_Cap(t *testing.T) {
	tests := []struct {
		name    string
		support InstallmentSupport
		want    int
	}{
		{name: "unsupported", support: NoInstallments(), want: 0},
		{name: "unlimited uses default cap", support: UnlimitedInstallments(), want: 24},
		{name: "limited", support: InstallmentsUpTo(6), want: 6},
		{name: "non-positive limit degrades to unsupported", support: InstallmentsUpTo(0), want: 0},
		{name: "negative limit degrades to unsupported", support: InstallmentsUpTo(-3), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.support.Cap(); got != tt.want {
				t.Errorf("Cap() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInstallmentSupport_DBRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		support InstallmentSupport
		encoded int
	}{
		{name: "unsupported encodes to zero", support: NoInstallments(), encoded: 0},
		{name: "unlimited encodes to minus one", support: UnlimitedInstallments(), encoded: -1},
		{name: "limited encodes to its cap", support: InstallmentsUpTo(9), encoded: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.support.EncodeDB(); got != tt.encoded {
				t.Errorf("EncodeDB() = %d, want %d", got, tt.encoded)
			}
			if got := DecodeInstallmentSupport(tt.encoded); got != tt.support {
				t.Errorf("DecodeInstallmentSupport(%d) = %+v, want %+v", tt.encoded, got, tt.support)
			}
		})
	}
}

func TestCard_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(*Card)
		name    string
		wantErr bool
	}{
		{name: "valid card", mutate: func(*Card) {}, wantErr: false},
		{name: "missing name", mutate: func(c *Card) { c.Name = "" }, wantErr: true},
		{name: "zero total limit", mutate: func(c *Card) { c.TotalLimit = 0 }, wantErr: true},
		{name: "negative total limit", mutate: func(c *Card) { c.TotalLimit = -100 }, wantErr: true},
		{name: "available above total", mutate: func(c *Card) { c.AvailableLimit = 60000 }, wantErr: true},
		{name: "negative available", mutate: func(c *Card) { c.AvailableLimit = -1 }, wantErr: true},
		{name: "statement day too low", mutate: func(c *Card) { c.StatementDay = 0 }, wantErr: true},
		{name: "statement day too high", mutate: func(c *Card) { c.StatementDay = 29 }, wantErr: true},
		{name: "due day out of range", mutate: func(c *Card) { c.DueDay = 31 }, wantErr: true},
		{name: "cashback above one", mutate: func(c *Card) { c.CashbackPercent = 1.5 }, wantErr: true},
		{name: "negative point rate", mutate: func(c *Card) { c.PointRate = -0.1 }, wantErr: true},
		{name: "negative point value", mutate: func(c *Card) { c.PointValue = -0.01 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)
			err := card.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCard_CurrentUtilization(t *testing.T) {
	card := validCard()
	if got := card.CurrentUtilization(); got != 0.1 {
		t.Errorf("CurrentUtilization() = %v, want 0.1", got)
	}

	precomputed := 0.42
	card.Utilization = &precomputed
	if got := card.CurrentUtilization(); got != 0.42 {
		t.Errorf("CurrentUtilization() with precomputed value = %v, want 0.42", got)
	}
}
