package bot

import (
	"math"
	"math/rand"
	"testing"
)

func TestSelectorDistribution(t *testing.T) {
	selector := NewSelector(0.2, rand.New(rand.NewSource(42)))

	const draws = 10000
	fedja := 0
	for i := 0; i < draws; i++ {
		if selector.Next() == CategoryFedja {
			fedja++
		}
	}

	freq := float64(fedja) / draws
	if math.Abs(freq-0.2) > 0.02 {
		t.Errorf("expected fedja frequency near 0.2, got %.4f", freq)
	}
}

func TestSelectorForcedCategories(t *testing.T) {
	always := NewSelector(1.0, rand.New(rand.NewSource(1)))
	never := NewSelector(0.0, rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		if always.Next() != CategoryFedja {
			t.Fatal("probability 1.0 must always select fedja")
		}
		if never.Next() != CategoryGeneral {
			t.Fatal("probability 0.0 must never select fedja")
		}
	}
}

func TestSelectorBadProbabilityFallsBack(t *testing.T) {
	selector := NewSelector(1.5, rand.New(rand.NewSource(7)))

	const draws = 10000
	fedja := 0
	for i := 0; i < draws; i++ {
		if selector.Next() == CategoryFedja {
			fedja++
		}
	}

	freq := float64(fedja) / draws
	if math.Abs(freq-0.2) > 0.02 {
		t.Errorf("expected fallback to the default probability, got %.4f", freq)
	}
}
