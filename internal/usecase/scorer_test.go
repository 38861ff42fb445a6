package usecase

import (
	"math"
	"testing"

	"github.com/beautybot/backend/internal/domain"
)

func TestValueScore(t *testing.T) {
	t.Run("computes rating times log reviews over price", func(t *testing.T) {
		p := domain.Product{Name: "A", Price: 10, Rating: 4.5, Reviews: 100}
		want := 4.5 * math.Log(101) / 10

		got := ValueScore(p)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("ValueScore = %v, want %v", got, want)
		}
	})

	t.Run("returns zero for zero price", func(t *testing.T) {
		p := domain.Product{Name: "C", Price: 0, Rating: 5.0, Reviews: 1000}
		if got := ValueScore(p); got != 0 {
			t.Errorf("ValueScore = %v, want 0", got)
		}
	})

	t.Run("returns zero for negative price", func(t *testing.T) {
		p := domain.Product{Price: -3.50, Rating: 4.8, Reviews: 250}
		if got := ValueScore(p); got != 0 {
			t.Errorf("ValueScore = %v, want 0", got)
		}
	})

	t.Run("returns zero for non-positive price regardless of extreme inputs", func(t *testing.T) {
		products := []domain.Product{
			{Price: 0, Rating: -1, Reviews: 0},
			{Price: 0, Rating: 1e9, Reviews: 1 << 30},
			{Price: -0.01, Rating: 5, Reviews: 1},
		}
		for _, p := range products {
			if got := ValueScore(p); got != 0 {
				t.Errorf("ValueScore(%+v) = %v, want 0", p, got)
			}
		}
	})

	t.Run("zero reviews yields zero score", func(t *testing.T) {
		// ln(0+1) = 0, so an unreviewed product scores zero no matter the rating
		p := domain.Product{Price: 12.99, Rating: 5.0, Reviews: 0}
		if got := ValueScore(p); got != 0 {
			t.Errorf("ValueScore = %v, want 0", got)
		}
	})
}

func TestValueScoreMonotonicity(t *testing.T) {
	t.Run("score never decreases as rating increases", func(t *testing.T) {
		prev := math.Inf(-1)
		for rating := 0.0; rating <= 5.0; rating += 0.5 {
			got := ValueScore(domain.Product{Price: 20, Rating: rating, Reviews: 150})
			if got < prev {
				t.Fatalf("score decreased at rating %v: %v < %v", rating, got, prev)
			}
			prev = got
		}
	})

	t.Run("score never decreases as reviews increase", func(t *testing.T) {
		prev := math.Inf(-1)
		for _, reviews := range []int{0, 1, 5, 50, 500, 5000, 50000} {
			got := ValueScore(domain.Product{Price: 20, Rating: 4.0, Reviews: reviews})
			if got < prev {
				t.Fatalf("score decreased at %d reviews: %v < %v", reviews, got, prev)
			}
			prev = got
		}
	})

	t.Run("score never increases as price increases", func(t *testing.T) {
		prev := math.Inf(1)
		for _, price := range []float64{0.01, 1, 5, 25, 100, 1000} {
			got := ValueScore(domain.Product{Price: price, Rating: 4.0, Reviews: 150})
			if got > prev {
				t.Fatalf("score increased at price %v: %v > %v", price, got, prev)
			}
			prev = got
		}
	})
}
