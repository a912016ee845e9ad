package detect

import (
	"math"
	"testing"
)

func TestAntiEliteAnalyze(t *testing.T) {
	d := NewAntiElite()

	text := "The establishment betrayed ordinary people. We will take back control from the corrupt elite."
	r := d.Analyze(text)

	if r.AntiElite.Count != 2 {
		t.Errorf("anti_elite count = %d, want 2 (establishment, elite)", r.AntiElite.Count)
	}
	if r.SystemCriticism.Count != 2 {
		t.Errorf("system_criticism count = %d, want 2 (betrayed, corrupt)", r.SystemCriticism.Count)
	}
	if r.PopulistPositive.Count != 2 {
		t.Errorf("populist_positive count = %d, want 2 (ordinary people, take back control)", r.PopulistPositive.Count)
	}
	if r.PeopleNegative.Count != 0 {
		t.Errorf("people_negative count = %d, want 0", r.PeopleNegative.Count)
	}

	// The hostile total leaves the positive framing out.
	if r.TotalCount != 4 {
		t.Errorf("TotalCount = %d, want 4", r.TotalCount)
	}
	if r.TotalScore != -10.5 {
		t.Errorf("TotalScore = %v, want -10.5", r.TotalScore)
	}
	// Net folds it back in: -10.5 + (2.0 + 2.5).
	if r.NetScore != -6.0 {
		t.Errorf("NetScore = %v, want -6.0", r.NetScore)
	}

	if r.WordCount != 14 {
		t.Errorf("WordCount = %d, want 14", r.WordCount)
	}
	wantDensity := 4.0 / 14.0 * 1000
	if math.Abs(r.Density-wantDensity) > 1e-9 {
		t.Errorf("Density = %v, want %v", r.Density, wantDensity)
	}
}

func TestAntiEliteTermBreakdown(t *testing.T) {
	d := NewAntiElite()

	r := d.Analyze("The swamp, always the swamp.")
	if r.SystemCriticism.Terms["swamp"] != 2 {
		t.Errorf("swamp occurrences = %d, want 2", r.SystemCriticism.Terms["swamp"])
	}
}

func TestAntiEliteLongestPhraseWins(t *testing.T) {
	d := NewAntiElite()

	// "drain the swamp" must count once as the phrase, not as "swamp".
	r := d.Analyze("Drain the swamp!")
	if r.SystemCriticism.Count != 1 {
		t.Fatalf("count = %d, want 1", r.SystemCriticism.Count)
	}
	if r.SystemCriticism.Terms["drain the swamp"] != 1 {
		t.Errorf("terms = %v, want the full phrase", r.SystemCriticism.Terms)
	}
	if r.SystemCriticism.Score != -2.0 {
		t.Errorf("score = %v, want -2.0", r.SystemCriticism.Score)
	}
}

func TestAntiEliteEmptyText(t *testing.T) {
	d := NewAntiElite()

	r := d.Analyze("")
	if r.TotalCount != 0 || r.Density != 0 || r.WordCount != 0 {
		t.Errorf("empty text should zero out: %+v", r)
	}
}

func TestAntiEliteNeutralText(t *testing.T) {
	d := NewAntiElite()

	r := d.Analyze("The committee reviewed the annual budget report.")
	if r.TotalCount != 0 {
		t.Errorf("neutral text scored %d hostile mentions", r.TotalCount)
	}
}

func TestAntiEliteDeterministic(t *testing.T) {
	d := NewAntiElite()
	text := "The corrupt elite betrayed the people."

	first := d.Analyze(text)
	second := d.Analyze(text)
	if first.TotalCount != second.TotalCount || first.NetScore != second.NetScore {
		t.Error("repeated analysis of the same text should match")
	}
}

func TestAntiEliteCustomLexicon(t *testing.T) {
	lex := NewLexicon("custom")
	lex.Add(CatAntiElite, "mandarins", -2.0)
	d := NewAntiEliteWithLexicon(lex)

	r := d.Analyze("The mandarins decide everything.")
	if r.AntiElite.Count != 1 {
		t.Errorf("custom lexicon count = %d, want 1", r.AntiElite.Count)
	}
	// Default terms are gone.
	r = d.Analyze("The establishment decides everything.")
	if r.AntiElite.Count != 0 {
		t.Errorf("default term should not match custom lexicon, got %d", r.AntiElite.Count)
	}
}

func TestAntiEliteLexiconComplete(t *testing.T) {
	lex := AntiEliteLexicon()

	// Spot-check entries across categories.
	cases := []struct {
		category string
		phrase   string
		weight   float64
	}{
		{CatAntiElite, "deep state", -2.5},
		{CatAntiElite, "out of touch", -2.0},
		{CatSystemCriticism, "rigged system", -3.0},
		{CatPopulistPositive, "take back control", 2.5},
		{CatPeopleNegative, "left behind", -2.0},
	}
	for _, c := range cases {
		w, ok := lex.Weight(c.category, c.phrase)
		if !ok || w != c.weight {
			t.Errorf("Weight(%s, %s) = %v/%v, want %v", c.category, c.phrase, w, ok, c.weight)
		}
	}
	if len(lex.Categories()) != 4 {
		t.Errorf("categories = %v, want 4", lex.Categories())
	}
}
