package services

import "testing"

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 1},
		{"   ", 1},
		{"hola", 1},
		{"hola mundo", 2},
		{"  espacios   múltiples \n y saltos ", 4},
	}
	for _, c := range cases {
		if got := EstimateTokens(c.text); got != c.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestEstimateTokensGrowsWithText(t *testing.T) {
	short := EstimateTokens("una pregunta corta")
	long := EstimateTokens("una pregunta bastante más larga con muchas más palabras que la anterior")
	if long <= short {
		t.Fatalf("longer text must estimate more tokens: %d vs %d", long, short)
	}
}
