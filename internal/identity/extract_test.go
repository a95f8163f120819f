package identity

import "testing"

func TestExtractFromWatchURL(t *testing.T) {
	text := "Watch on youtube.com/watch?v=dQw4w9WgXcQ Subscribe"
	got, ok := Extract(text)
	if !ok {
		t.Fatal("expected an identity")
	}
	if got != "dQw4w9WgXcQ" {
		t.Fatalf("got %q, want dQw4w9WgXcQ", got)
	}
}

func TestExtractFromShortURL(t *testing.T) {
	got, ok := Extract("youtu.be/aBcDeFgHiJk rest of overlay")
	if !ok || got != "aBcDeFgHiJk" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestExtractBareToken(t *testing.T) {
	got, ok := Extract("some overlay text aBcDeFgHiJk trailing")
	if !ok || got != "aBcDeFgHiJk" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestExtractLooseFallback(t *testing.T) {
	// Shorter than the canonical 11 characters but still a usable token.
	got, ok := Extract("xY9_q2")
	if !ok || got != "xY9_q2" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestExtractRejectsPureDigits(t *testing.T) {
	if got, ok := Extract("1234567"); ok {
		t.Fatalf("pure digits accepted as identity: %q", got)
	}
}

func TestExtractRejectsUIKeywords(t *testing.T) {
	for _, word := range []string{"Subscribe", "subscribed", "AUTOPLAY", "download"} {
		if got, ok := Extract(word); ok {
			t.Fatalf("UI keyword %q accepted as identity: %q", word, got)
		}
	}
}

func TestExtractEmpty(t *testing.T) {
	if _, ok := Extract(""); ok {
		t.Fatal("empty text produced an identity")
	}
	if _, ok := Extract("   \n  "); ok {
		t.Fatal("whitespace text produced an identity")
	}
}

func TestExtractTooShort(t *testing.T) {
	if got, ok := Extract("ab1"); ok {
		t.Fatalf("short token accepted: %q", got)
	}
}
