package domain

// Product represents one retail item observed on a category listing page
type Product struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Rating  float64 `json:"rating"`  // 0-5, 0 when no rating is shown
	Reviews int     `json:"reviews"` // 0 when no review count is shown
	URL     string  `json:"url,omitempty"`
}

// Recommendation is the result of a recommendation request: the ranked
// shortlist plus the narrative explaining it. Narrative is always populated -
// either generated text or one of the fixed fallback messages.
type Recommendation struct {
	TopProducts []Product `json:"top_products"`
	Narrative   string    `json:"gpt_recommendation"`
}

// RecommendRequest represents a product recommendation request
type RecommendRequest struct {
	Category string `json:"category" binding:"required"`
}
