package similarity

import (
	"math"
	"testing"
)

func TestScoreExactAndEmpty(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "one piece", "one piece", 100},
		{"both empty", "", "", 0},
		{"left empty", "", "one piece", 0},
		{"right empty", "one piece", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.a, tt.b); got != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"one piece", "one place"},
		{"berserk", "berserk deluxe edition"},
		{"a", "completely unrelated very long title"},
	}
	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestScoreEditDistance(t *testing.T) {
	// "one piece" vs "one place": distance 2 over 9 runes -> ~77.8
	got := Score("one piece", "one place")
	want := (1 - 2.0/9.0) * 100
	if math.Abs(got-want) > 0.01 {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

func TestScoreLengthMismatchCapped(t *testing.T) {
	// 4 runes vs 40+ runes with no containment: capped low.
	got := Score("naru", "a wildly different extremely long title here")
	if got != lengthMismatchScore {
		t.Errorf("Score = %v, want cap %v", got, lengthMismatchScore)
	}
}

func TestScoreContainment(t *testing.T) {
	// Containment scores shorter/longer even past the length-ratio cap.
	a := "berserk"
	b := "berserk deluxe edition volume"
	got := Score(a, b)
	want := 7.0 / 29.0 * 100
	if math.Abs(got-want) > 0.01 {
		t.Errorf("Score = %v, want containment ratio %v", got, want)
	}
}

func TestScoreContainmentBeatsEditDistance(t *testing.T) {
	a := "one piece"
	b := "one piece omnibus"
	got := Score(a, b)
	want := 9.0 / 17.0 * 100
	if got < want-0.01 {
		t.Errorf("Score = %v, want at least containment %v", got, want)
	}
}

func TestWordOrder(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "attack on titan", "attack on titan", 1},
		{"no overlap", "one piece", "berserk", 0},
		{"empty side", "", "one piece", 0},
		{"partial overlap same order", "attack on titan", "attack on titan final", 3.0 / 4.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WordOrder(tt.a, tt.b)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("WordOrder(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestWordOrderPenalizesReordering(t *testing.T) {
	straight := WordOrder("hero academia", "hero academia")
	reversed := WordOrder("academia hero", "hero academia")
	if straight != 1 {
		t.Fatalf("straight = %v, want 1", straight)
	}
	if math.Abs(reversed-wordOrderPenalty) > 0.0001 {
		t.Errorf("reversed = %v, want %v", reversed, wordOrderPenalty)
	}
}
