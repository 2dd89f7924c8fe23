package assistant

import (
	"strings"
	"testing"
)

func TestRespondSubstringMatch(t *testing.T) {
	r := NewResponder(DefaultEntries())

	got := r.Respond("What are my consumer rights?")
	if !strings.Contains(got, "Right to Redress") {
		t.Fatalf("expected consumer-rights answer, got: %.80s", got)
	}
}

func TestRespondShortInputMatchesCanonicalQuestion(t *testing.T) {
	// The input being a substring of the canonical question also matches.
	r := NewResponder(DefaultEntries())
	got := r.Respond("consumer rights")
	if !strings.Contains(got, "Right to Redress") {
		t.Fatalf("expected consumer-rights answer, got: %.80s", got)
	}
}

func TestRespondKeywordPass(t *testing.T) {
	r := NewResponder(DefaultEntries())
	got := r.Respond("my landlord refuses repairs, do tenant rights cover this?")
	if !strings.Contains(got, "Right to Habitable Living") {
		t.Fatalf("expected tenant-rights answer, got: %.80s", got)
	}
}

func TestRespondFallback(t *testing.T) {
	r := NewResponder(DefaultEntries())
	got := r.Respond("asdkjasd")
	if !strings.Contains(got, "Available Topics") {
		t.Fatalf("expected fallback, got: %.80s", got)
	}
	// Fallback is derived from the table, so every topic must appear.
	for _, e := range DefaultEntries() {
		if !strings.Contains(got, e.Topic) {
			t.Fatalf("fallback missing topic %q", e.Topic)
		}
	}
}

func TestRespondEmptyInput(t *testing.T) {
	r := NewResponder(DefaultEntries())
	if got := r.Respond("   "); !strings.Contains(got, "Available Topics") {
		t.Fatalf("expected fallback for blank input, got: %.80s", got)
	}
}

func TestFirstMatchWinsInDeclarationOrder(t *testing.T) {
	entries := []Entry{
		{Topic: "First", Question: "what is overlap", Keywords: []string{"overlap"}, Answer: "first"},
		{Topic: "Second", Question: "what is overlap exactly", Keywords: []string{"overlap"}, Answer: "second"},
	}
	r := NewResponder(entries)
	if got := r.Respond("what is overlap"); got != "first" {
		t.Fatalf("expected first entry to win, got %q", got)
	}
	if got := r.Respond("tell me about overlap please and thanks"); got != "first" {
		t.Fatalf("expected first keyword entry to win, got %q", got)
	}
}

func TestExplainTopicAppendsDisclaimer(t *testing.T) {
	r := NewResponder(DefaultEntries())

	got := r.ExplainTopic("Cyberbullying")
	if !strings.Contains(got, "digital technology") {
		t.Fatalf("expected cyberbullying answer, got: %.80s", got)
	}
	if !strings.HasSuffix(got, disclaimer) {
		t.Fatal("expected disclaimer suffix on matched answer")
	}

	// The disclaimer rides on the fallback too.
	got = r.ExplainTopic("maritime salvage law")
	if !strings.Contains(got, "Available Topics") {
		t.Fatalf("expected fallback, got: %.80s", got)
	}
	if !strings.HasSuffix(got, disclaimer) {
		t.Fatal("expected disclaimer suffix on fallback")
	}
}

func TestRespondIsPureAcrossCalls(t *testing.T) {
	r := NewResponder(DefaultEntries())
	a := r.Respond("what is a contract")
	b := r.Respond("what is a contract")
	if a != b {
		t.Fatal("responder must be deterministic")
	}
}
