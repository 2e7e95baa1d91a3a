package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "One Piece", "one piece"},
		{"punctuation", "Dr. STONE!!", "dr stone"},
		{"whitespace collapse", "  One    Piece  ", "one piece"},
		{"hyphen and underscore", "Ao-no_Exorcist", "ao no exorcist"},
		{"fullwidth folding", "ＯＮＥ　ＰＩＥＣＥ", "one piece"},
		{"apostrophe stripped", "JoJo's Bizarre Adventure", "jojos bizarre adventure"},
		{"empty", "", ""},
		{"only punctuation", "?!*", ""},
		{"native script preserved", "ワンピース", "ワンピース"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"One Piece", "Dr. STONE!!", "  spaced   out  ", "ＢＬＥＡＣＨ", ""}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizeWithCase(t *testing.T) {
	if got := NormalizeWithCase("One Piece!", true); got != "One Piece" {
		t.Errorf("NormalizeWithCase = %q, want %q", got, "One Piece")
	}
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"case and spacing collide", " One Piece ", "one piece"},
		{"upper case collides", "ONE PIECE", "one piece"},
		{"tracker suffix stripped", "Berserk (Comic)", "berserk"},
		{"manga suffix stripped", "Vagabond (manga)", "vagabond"},
		{"cyrillic confusables folded", "Вerserk", "berserk"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheKey(tt.in); got != tt.want {
				t.Errorf("CacheKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCacheKeyMatchesNormalizeForCleanTitles(t *testing.T) {
	// Clean Latin titles must produce identical keys through either path.
	for _, title := range []string{"One Piece", "Fullmetal Alchemist", "20th Century Boys"} {
		if CacheKey(title) != Normalize(title) {
			t.Errorf("CacheKey(%q) = %q, Normalize = %q", title, CacheKey(title), Normalize(title))
		}
	}
}

func TestStripSeasonMarkers(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     string
		stripped bool
	}{
		{"season n", "attack on titan season 3", "attack on titan", true},
		{"nth season", "attack on titan 3rd season", "attack on titan", true},
		{"short form", "attack on titan s2", "attack on titan", true},
		{"part n", "jojo part 4", "jojo", true},
		{"trailing roman numeral", "kenichi ii", "kenichi", true},
		{"trailing digits", "bakuman 2", "bakuman", true},
		{"no marker", "one piece", "one piece", false},
		{"lone trailing i kept", "no game no life i", "no game no life i", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stripped := StripSeasonMarkers(tt.in)
			if got != tt.want || stripped != tt.stripped {
				t.Errorf("StripSeasonMarkers(%q) = (%q, %v), want (%q, %v)",
					tt.in, got, stripped, tt.want, tt.stripped)
			}
		})
	}
}
