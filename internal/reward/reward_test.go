package reward

import "testing"

func TestBaseCase(t *testing.T) {
	// No streak, dirtiness in the 80-99 band: no bonuses at all.
	if got := Compute(100, 90, 0); got != 100 {
		t.Errorf("coins = %d, want 100", got)
	}
}

func TestSpeedBonus(t *testing.T) {
	if got := Compute(100, 50, 0); got != 105 {
		t.Errorf("coins = %d, want 105", got)
	}
	// Boundary: 80 exactly does not count as early.
	if got := Compute(100, 80, 0); got != 100 {
		t.Errorf("coins at 80%% = %d, want 100", got)
	}
}

func TestPerfectBonus(t *testing.T) {
	if got := Compute(100, 100, 0); got != 125 {
		t.Errorf("coins = %d, want 125", got)
	}
	if got := Compute(100, 99.9, 0); got != 100 {
		t.Errorf("coins just under 100%% = %d, want 100", got)
	}
}

func TestStreakTiers(t *testing.T) {
	tests := []struct {
		streak int
		want   int
	}{
		{0, 100},
		{6, 100},
		{7, 110},
		{13, 110},
		{14, 120},
		{100, 120},
	}
	for _, tt := range tests {
		if got := Compute(100, 90, tt.streak); got != tt.want {
			t.Errorf("streak %d: coins = %d, want %d", tt.streak, got, tt.want)
		}
	}
}

func TestBonusesStack(t *testing.T) {
	// 14-day streak plus perfect clean: 1.0 + 0.20 + 0.25.
	if got := Compute(100, 100, 14); got != 145 {
		t.Errorf("coins = %d, want 145", got)
	}
	// 7-day streak plus speed: 1.0 + 0.10 + 0.05.
	if got := Compute(100, 40, 7); got != 115 {
		t.Errorf("coins = %d, want 115", got)
	}
}

func TestRoundingHalfAwayFromZero(t *testing.T) {
	// 10 * 1.05 = 10.5 rounds up to 11.
	if got := Compute(10, 50, 0); got != 11 {
		t.Errorf("coins = %d, want 11", got)
	}
	// 3 * 1.25 = 3.75 rounds to 4.
	if got := Compute(3, 100, 0); got != 4 {
		t.Errorf("coins = %d, want 4", got)
	}
}

func TestZeroBase(t *testing.T) {
	if got := Compute(0, 100, 14); got != 0 {
		t.Errorf("coins = %d, want 0", got)
	}
}
