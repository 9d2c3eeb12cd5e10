package datecycle

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDayOfMonth(t *testing.T) {
	tests := []struct {
		base time.Time
		want time.Time
		name string
		day  int
	}{
		{
			name: "target later in same month",
			base: date(2024, time.August, 10),
			day:  15,
			want: date(2024, time.August, 15),
		},
		{
			name: "base day equals target stays in month",
			base: date(2024, time.August, 15),
			day:  15,
			want: date(2024, time.August, 15),
		},
		{
			name: "target already passed rolls to next month",
			base: date(2024, time.August, 20),
			day:  15,
			want: date(2024, time.September, 15),
		},
		{
			name: "december rollover crosses year",
			base: date(2024, time.December, 20),
			day:  5,
			want: date(2025, time.January, 5),
		},
		{
			name: "day above 28 clamps",
			base: date(2024, time.February, 1),
			day:  31,
			want: date(2024, time.February, 28),
		},
		{
			name: "day below 1 clamps",
			base: date(2024, time.March, 5),
			day:  0,
			want: date(2024, time.April, 1),
		},
		{
			name: "time of day is ignored",
			base: time.Date(2024, time.August, 10, 23, 45, 0, 0, time.UTC),
			day:  15,
			want: date(2024, time.August, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDayOfMonth(tt.base, tt.day)
			if !got.Equal(tt.want) {
				t.Errorf("NextDayOfMonth(%v, %d) = %v, want %v", tt.base, tt.day, got, tt.want)
			}
		})
	}
}

func TestNextDayOfMonth_ZeroBase(t *testing.T) {
	if got := NextDayOfMonth(time.Time{}, 15); !got.IsZero() {
		t.Errorf("expected zero time for zero base, got %v", got)
	}
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		purchase     time.Time
		want         time.Time
		name         string
		statementDay int
		dueDay       int
	}{
		{
			name:         "due day after statement in next month",
			purchase:     date(2024, time.August, 10),
			statementDay: 15,
			dueDay:       5,
			want:         date(2024, time.September, 5),
		},
		{
			name:         "due day later in statement month",
			purchase:     date(2024, time.August, 10),
			statementDay: 15,
			dueDay:       25,
			want:         date(2024, time.August, 25),
		},
		{
			name:         "statement day equals due day pushes a full month",
			purchase:     date(2024, time.August, 10),
			statementDay: 15,
			dueDay:       15,
			want:         date(2024, time.September, 15),
		},
		{
			name:         "purchase after statement day",
			purchase:     date(2024, time.August, 20),
			statementDay: 15,
			dueDay:       5,
			want:         date(2024, time.October, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.purchase, tt.statementDay, tt.dueDay)
			if !got.Equal(tt.want) {
				t.Errorf("NextDueDate(%v, %d, %d) = %v, want %v",
					tt.purchase, tt.statementDay, tt.dueDay, got, tt.want)
			}
		})
	}
}

func TestNextDueDate_AlwaysAfterStatement(t *testing.T) {
	// The due date must land at least one day past the statement close for
	// every statement/due day combination.
	purchase := date(2024, time.August, 10)
	for statementDay := 1; statementDay <= 28; statementDay++ {
		for dueDay := 1; dueDay <= 28; dueDay++ {
			statement := NextStatementDate(purchase, statementDay)
			due := NextDueDate(purchase, statementDay, dueDay)
			if !due.After(statement) {
				t.Fatalf("due %v not after statement %v (statementDay=%d dueDay=%d)",
					due, statement, statementDay, dueDay)
			}
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		base time.Time
		want time.Time
		name string
		n    int
	}{
		{
			name: "simple month add",
			base: date(2024, time.January, 15),
			n:    1,
			want: date(2024, time.February, 15),
		},
		{
			name: "year rollover",
			base: date(2024, time.November, 5),
			n:    3,
			want: date(2025, time.February, 5),
		},
		{
			name: "day above 28 clamps before add",
			base: date(2024, time.January, 31),
			n:    1,
			want: date(2024, time.February, 28),
		},
		{
			name: "zero months is identity",
			base: date(2024, time.June, 10),
			n:    0,
			want: date(2024, time.June, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.base, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%v, %d) = %v, want %v", tt.base, tt.n, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b time.Time
		name string
		want int
	}{
		{name: "same day", a: date(2024, time.August, 10), b: date(2024, time.August, 10), want: 0},
		{name: "forward", a: date(2024, time.August, 10), b: date(2024, time.September, 5), want: 26},
		{name: "reversed arguments are absolute", a: date(2024, time.September, 5), b: date(2024, time.August, 10), want: 26},
		{name: "across leap day", a: date(2024, time.February, 28), b: date(2024, time.March, 1), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
