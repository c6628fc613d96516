package command

import "testing"

func TestMatchExactBeatsSubstring(t *testing.T) {
	m := NewMatcher()

	// "thousand" is an exact key (quick amount 1000) and also a substring of
	// "two thousand", "five thousand" etc. Exact lookup must win.
	a, ok := m.Match("thousand")
	if !ok {
		t.Fatalf("expected a match for %q", "thousand")
	}
	if a.Kind != KindEnterAmount || a.Amount != 1000 {
		t.Fatalf("unexpected action: %+v", a)
	}

	// "balance" is an exact key and a substring of "check balance".
	a, ok = m.Match("balance")
	if !ok || a.Kind != KindSelectBalance {
		t.Fatalf("exact match for balance failed: %+v ok=%v", a, ok)
	}
}

func TestMatchSubstringFirstWins(t *testing.T) {
	m := NewMatcher()

	// No exact key; "start" appears inside the phrase and is the first
	// dictionary entry that does.
	a, ok := m.Match("please start the machine")
	if !ok || a.Kind != KindBegin {
		t.Fatalf("substring match failed: %+v ok=%v", a, ok)
	}

	// Both "withdraw" and "cash" occur; "withdraw" is defined first.
	a, ok = m.Match("withdraw some cash")
	if !ok || a.Kind != KindSelectWithdraw {
		t.Fatalf("tie-break failed: %+v ok=%v", a, ok)
	}
}

func TestMatchClearHistoryNotShadowedByClear(t *testing.T) {
	m := NewMatcher()

	// "clear" occurs inside every clear-history phrasing; the longer entry
	// is defined first so the substring scan resolves the full phrase.
	a, ok := m.Match("please clear history")
	if !ok || a.Kind != KindClearHistory {
		t.Fatalf("clear history phrase: %+v ok=%v", a, ok)
	}

	// Bare "clear" still clears the PIN buffer, exact and as a substring.
	a, ok = m.Match("clear")
	if !ok || a.Kind != KindClearPin {
		t.Fatalf("exact clear: %+v ok=%v", a, ok)
	}
	a, ok = m.Match("clear that")
	if !ok || a.Kind != KindClearPin {
		t.Fatalf("substring clear: %+v ok=%v", a, ok)
	}
}

func TestMatchDigitsAndAmounts(t *testing.T) {
	m := NewMatcher()

	a, ok := m.Match("seven")
	if !ok || a.Kind != KindEnterDigit || a.Digit != 7 {
		t.Fatalf("digit phrase: %+v ok=%v", a, ok)
	}

	a, ok = m.Match("fifty thousand")
	if !ok || a.Kind != KindEnterAmount || a.Amount != 50000 {
		t.Fatalf("quick amount: %+v ok=%v", a, ok)
	}
}

func TestMatchMiss(t *testing.T) {
	m := NewMatcher()
	if _, ok := m.Match("gibberish utterance"); ok {
		t.Fatalf("expected no match")
	}
	if _, ok := m.Match(""); ok {
		t.Fatalf("empty input must not match")
	}
}
