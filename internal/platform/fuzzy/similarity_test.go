package fuzzy

import "testing"

func TestSimilarity_EmptyInputs(t *testing.T) {
	if got := Similarity("", ""); got != MaxScore {
		t.Fatalf("both empty: got=%d want=%d", got, MaxScore)
	}
	if got := Similarity("   ", ""); got != MaxScore {
		t.Fatalf("whitespace and empty: got=%d want=%d", got, MaxScore)
	}
	if got := Similarity("Arsenal", ""); got != MinScore {
		t.Fatalf("one empty: got=%d want=%d", got, MinScore)
	}
	if got := Similarity("", "Arsenal"); got != MinScore {
		t.Fatalf("one empty reversed: got=%d want=%d", got, MinScore)
	}
}

func TestSimilarity_ToleratesFormatting(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{name: "case", a: "ARSENAL", b: "arsenal"},
		{name: "diacritics", a: "Atlético Madrid", b: "Atletico Madrid"},
		{name: "punctuation", a: "St. Pauli", b: "St Pauli"},
		{name: "token order", a: "Madrid Atletico", b: "Atletico Madrid"},
		{name: "extra whitespace", a: "  Inter   Milan ", b: "Inter Milan"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Similarity(tc.a, tc.b); got != MaxScore {
				t.Fatalf("similarity(%q, %q): got=%d want=%d", tc.a, tc.b, got, MaxScore)
			}
		})
	}
}

func TestSimilarity_PartialAndUnrelated(t *testing.T) {
	if got := Similarity("Manchester Utd", "Manchester United"); got != 82 {
		t.Fatalf("abbreviated name: got=%d want=82", got)
	}
	if got := Similarity("Arsenal", "Chelsea"); got >= 50 {
		t.Fatalf("unrelated names scored too high: %d", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Bayern München", "Bayern Munich"},
		{"Paris Saint-Germain", "PSG"},
		{"Wolverhampton", "Wolves"},
	}
	for _, pair := range pairs {
		if a, b := Similarity(pair[0], pair[1]), Similarity(pair[1], pair[0]); a != b {
			t.Fatalf("similarity not symmetric for %q/%q: %d vs %d", pair[0], pair[1], a, b)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "FC Barcelona", want: "barcelona"},
		{in: "Real Madrid CF", want: "real madrid"},
		{in: "A.F.C. Bournemouth", want: "bournemouth"},
		{in: "Borussia Mönchengladbach", want: "borussia monchengladbach"},
		{in: "Brighton & Hove Albion", want: "brighton hove albion"},
		{in: "FC", want: "fc"},
		{in: "   ", want: ""},
	}

	for _, tc := range tests {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("normalize %q: got=%q want=%q", tc.in, got, tc.want)
		}
	}
}
