package textutil

import "testing"

func TestRatioIdentical(t *testing.T) {
	if got := Ratio("dQw4w9WgXcQ", "dQw4w9WgXcQ"); got != 1 {
		t.Errorf("Ratio(identical) = %v, want 1", got)
	}
}

func TestRatioEmpty(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"both empty", "", ""},
		{"a empty", "", "abc"},
		{"b empty", "abc", ""},
		{"whitespace only", "   ", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != 0 {
				t.Errorf("Ratio(%q, %q) = %v, want 0", tt.a, tt.b, got)
			}
		})
	}
}

func TestRatioSingleSubstitution(t *testing.T) {
	// One garbled character out of eleven should stay well above any
	// reasonable threshold.
	got := Ratio("AB12345XYZ9", "AB1234SXYZ9")
	if got < 0.9 {
		t.Errorf("Ratio(one substitution) = %v, want >= 0.9", got)
	}
}

func TestRatioDisjoint(t *testing.T) {
	got := Ratio("aaaaaaaa", "bbbbbbbb")
	if got != 0 {
		t.Errorf("Ratio(disjoint) = %v, want 0", got)
	}
}

func TestRatioSymmetric(t *testing.T) {
	a, b := "Funny Moment", "Funny Moment!"
	if Ratio(a, b) != Ratio(b, a) {
		t.Error("Ratio should be symmetric")
	}
}

func TestTokenSortRatioWordOrder(t *testing.T) {
	got := TokenSortRatio("brown fox quick", "quick brown fox")
	if got != 1 {
		t.Errorf("TokenSortRatio(reordered) = %v, want 1", got)
	}
}

func TestTokenSortRatioPunctuation(t *testing.T) {
	got := TokenSortRatio("Funny Moment", "Funny, Moment!")
	if got != 1 {
		t.Errorf("TokenSortRatio(punctuation) = %v, want 1", got)
	}
}

func TestNormalizeStripsMarks(t *testing.T) {
	if got := Normalize("Café  Vidéo"); got != "cafe video" {
		t.Errorf("Normalize = %q, want %q", got, "cafe video")
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("youtu.be/dQw4w9WgXcQ?t=42")
	want := []string{"youtu", "be", "dqw4w9wgxcq", "t", "42"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/b:c", "a-b-c"},
		{`what?!`, "what!"},
		{"  spaced  ", "spaced"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("abcdef", 3); got != "abc" {
		t.Errorf("TruncateRunes = %q", got)
	}
	if got := TruncateRunes("ab", 3); got != "ab" {
		t.Errorf("TruncateRunes(short) = %q", got)
	}
	if got := TruncateRunes("ab", 0); got != "" {
		t.Errorf("TruncateRunes(zero) = %q", got)
	}
}
