package usecase

import (
	"math"

	"github.com/beautybot/backend/internal/domain"
)

// ValueScore computes the "value for money" score for a single product.
// Higher rating and more reviews raise the score, higher price lowers it.
// Review volume is damped with a natural log so a product with orders of
// magnitude more reviews cannot dominate on volume alone; the +1 keeps the
// log defined when a product has no reviews.
func ValueScore(p domain.Product) float64 {
	// Avoid division by zero
	if p.Price <= 0 {
		return 0
	}

	return p.Rating * math.Log(float64(p.Reviews)+1) / p.Price
}
