package identity

import "testing"

func TestSameIdentityReflexive(t *testing.T) {
	j := NewJudge(0.7)
	for _, id := range []string{"dQw4w9WgXcQ", "aB3dE", "x_-9q2Lm0Zz"} {
		if !j.SameIdentity(id, id) {
			t.Fatalf("SameIdentity(%q, %q) = false", id, id)
		}
	}
}

func TestSameIdentityEmptyNeverMatches(t *testing.T) {
	j := NewJudge(0.7)
	if j.SameIdentity("", "") {
		t.Fatal("two empty identities matched")
	}
	if j.SameIdentity("dQw4w9WgXcQ", "") || j.SameIdentity("", "dQw4w9WgXcQ") {
		t.Fatal("empty identity matched a real one")
	}
}

func TestSameIdentityCaseInsensitive(t *testing.T) {
	j := NewJudge(0.7)
	if !j.SameIdentity("dQw4w9WgXcQ", "DQW4W9WGXCQ") {
		t.Fatal("case-folded identity did not match")
	}
}

func TestSameIdentitySharedPrefix(t *testing.T) {
	j := NewJudge(0.7)
	// Garbled tail, intact head: 0/O confusion in the last characters.
	if !j.SameIdentity("aBcDe12O456", "aBcDe120456") {
		t.Fatal("shared-prefix identities did not match")
	}
}

func TestSameIdentityFuzzy(t *testing.T) {
	j := NewJudge(0.7)
	// Different prefix, one substituted character overall.
	if !j.SameIdentity("Qw4w9WgXcQd", "Qw4w9WgXcQb") {
		t.Fatal("near-identical identities did not match")
	}
	if j.SameIdentity("dQw4w9WgXcQ", "zzzzzzzzzzz") {
		t.Fatal("unrelated identities matched")
	}
}

func TestSimilarTitleExact(t *testing.T) {
	j := NewJudge(0.7)
	if !j.SimilarTitle("Funny Moment", "Funny Moment") {
		t.Fatal("identical titles did not match")
	}
}

func TestSimilarTitleFuzzy(t *testing.T) {
	j := NewJudge(0.7)
	if !j.SimilarTitle("Funny Moment", "Funny Moment!") {
		t.Fatal("near-identical titles did not match")
	}
	if j.SimilarTitle("Funny Moment", "Completely Different Video") {
		t.Fatal("unrelated titles matched")
	}
}

func TestSimilarTitleSentinel(t *testing.T) {
	j := NewJudge(0.7)
	if j.SimilarTitle(NoTitle, NoTitle) {
		t.Fatal("sentinel titles matched each other")
	}
	if j.SimilarTitle("Funny Moment", NoTitle) {
		t.Fatal("sentinel title matched a real one")
	}
	if j.SimilarTitle("", "Funny Moment") {
		t.Fatal("empty title matched")
	}
}

func TestSimilarText(t *testing.T) {
	j := NewJudge(0.7)
	if !j.SimilarText("some overlay line here", "some overlay 1ine here") {
		t.Fatal("near-identical raw text did not match")
	}
	if j.SimilarText("", "anything") {
		t.Fatal("empty raw text matched")
	}
}
