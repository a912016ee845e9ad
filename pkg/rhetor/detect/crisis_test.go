package detect

import (
	"math"
	"testing"
)

func TestCrisisAnalyze(t *testing.T) {
	d := NewCrisis()

	text := "This crisis is an emergency. We must act now before it's too late."
	r := d.Analyze(text)

	if r.Crisis.Count != 2 {
		t.Errorf("crisis count = %d, want 2 (crisis, emergency)", r.Crisis.Count)
	}
	// "must act", then the freed "now", then the full apostrophe phrase.
	if r.Urgency.Count != 3 {
		t.Errorf("urgency count = %d, want 3: %v", r.Urgency.Count, r.Urgency.Terms)
	}
	if r.Urgency.Terms["before it s too late"] != 1 {
		t.Errorf("apostrophe phrase missing: %v", r.Urgency.Terms)
	}

	if r.TotalCount != 5 {
		t.Errorf("TotalCount = %d, want 5", r.TotalCount)
	}
	if r.TotalScore != 13.0 {
		t.Errorf("TotalScore = %v, want 13.0", r.TotalScore)
	}
	if r.WordCount != 14 {
		t.Errorf("WordCount = %d, want 14", r.WordCount)
	}
	wantDensity := 5.0 / 14.0 * 1000
	if math.Abs(r.Density-wantDensity) > 1e-9 {
		t.Errorf("Density = %v, want %v", r.Density, wantDensity)
	}
}

func TestCrisisIntensitySaturates(t *testing.T) {
	d := NewCrisis()

	// Dense alarm text: density/2 exceeds 10 and clamps.
	if got := d.Intensity("Crisis! Emergency! Catastrophe! Collapse!"); got != 10 {
		t.Errorf("Intensity = %v, want 10", got)
	}
}

func TestCrisisIntensityCalmText(t *testing.T) {
	d := NewCrisis()

	if got := d.Intensity("We review the budget proposal annually."); got != 0 {
		t.Errorf("Intensity = %v, want 0", got)
	}
}

func TestCrisisPhrasePrecedence(t *testing.T) {
	d := NewCrisis()

	// "existential threat" is one 4.0 hit, not "existential" + "threat".
	r := d.Analyze("It is an existential threat.")
	if r.Catastrophic.Count != 1 || r.Catastrophic.Score != 4.0 {
		t.Errorf("catastrophic = %+v, want one 4.0 phrase", r.Catastrophic)
	}
	if r.Threat.Count != 0 {
		t.Errorf("threat count = %d, want 0 (consumed by the phrase)", r.Threat.Count)
	}
}

func TestCrisisEmptyText(t *testing.T) {
	d := NewCrisis()

	r := d.Analyze("")
	if r.TotalCount != 0 || r.Density != 0 {
		t.Errorf("empty text should zero out: %+v", r)
	}
}

func TestCrisisLexiconComplete(t *testing.T) {
	lex := CrisisLexicon()

	cases := []struct {
		category string
		phrase   string
		weight   float64
	}{
		{CatCrisis, "catastrophe", 4.0},
		{CatThreat, "under attack", 3.0},
		{CatDecline, "out of control", 3.0},
		{CatUrgency, "time is running out", 3.0},
		{CatCatastrophic, "point of no return", 3.5},
	}
	for _, c := range cases {
		w, ok := lex.Weight(c.category, c.phrase)
		if !ok || w != c.weight {
			t.Errorf("Weight(%s, %s) = %v/%v, want %v", c.category, c.phrase, w, ok, c.weight)
		}
	}
	if len(lex.Categories()) != 5 {
		t.Errorf("categories = %v, want 5", lex.Categories())
	}
}
