package numeric

import "testing"

func TestRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		f      float64
		places int
		want   float64
	}{
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{3.5, 0, 4},
		{1234.567, 1, 1234.6},
	}
	for _, tt := range tests {
		if got := RoundHalfAwayFromZero(tt.f, tt.places); got != tt.want {
			t.Errorf("RoundHalfAwayFromZero(%v, %d) = %v, want %v", tt.f, tt.places, got, tt.want)
		}
	}
}

func TestIntTrunc(t *testing.T) {
	if got := IntFloor(-8.9); got != -9 {
		t.Errorf("IntFloor(-8.9) = %v, want -9", got)
	}
	if got := Trunc(-8.9, 0); got != -8 {
		t.Errorf("Trunc(-8.9) = %v, want -8", got)
	}
}

func TestMod(t *testing.T) {
	got, ok := Mod(-10, 3)
	if !ok || got != 2 {
		t.Errorf("Mod(-10,3) = %v,%v want 2,true", got, ok)
	}
	if _, ok := Mod(10, 0); ok {
		t.Error("Mod(10,0) should fail")
	}
}

func TestFactorialMultinomial(t *testing.T) {
	got, ok := Multinomial([]float64{2, 3, 4})
	if !ok || got != 1260 {
		t.Errorf("Multinomial(2,3,4) = %v,%v want 1260,true", got, ok)
	}
	if _, ok := Multinomial([]float64{-1, 2}); ok {
		t.Error("Multinomial(-1,2) should fail")
	}
}

func TestSeriesSum(t *testing.T) {
	got, ok := SeriesSum(2, 2, 1, []float64{3})
	if !ok || got != 12 {
		t.Errorf("SeriesSum(2,2,1,[3]) = %v,%v want 12,true", got, ok)
	}
}

func TestPower(t *testing.T) {
	if got, ok := Power(0, 0); !ok || got != 1 {
		t.Errorf("Power(0,0) = %v,%v want 1,true", got, ok)
	}
	if _, ok := Power(0, -1); ok {
		t.Error("Power(0,-1) should fail")
	}
	if _, ok := Power(-2, 0.5); ok {
		t.Error("Power(-2,0.5) should fail")
	}
}

func TestCeilingFloorSign(t *testing.T) {
	if _, ok := Ceiling(4, -2); ok {
		t.Error("Ceiling(4,-2) should be #NUM!")
	}
	got, ok := Ceiling(-4.5, -1)
	if !ok || got != -5 {
		t.Errorf("Ceiling(-4.5,-1) = %v,%v want -5,true", got, ok)
	}
}

func TestGCDLCM(t *testing.T) {
	if got := GCD(12, 18); got != 6 {
		t.Errorf("GCD(12,18) = %v want 6", got)
	}
	if got := LCM(4, 6); got != 12 {
		t.Errorf("LCM(4,6) = %v want 12", got)
	}
}
