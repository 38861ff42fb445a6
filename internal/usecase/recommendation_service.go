package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/beautybot/backend/internal/domain"
)

// systemInstruction is the fixed system-role message sent with every
// generation request.
const systemInstruction = "You are a beauty expert specializing in makeup product analysis. " +
	"You help users find the best value makeup products based on price, ratings, and reviews."

// generationFailureNarrative replaces the generated text when the
// text-generation call fails. The ranked products are still returned.
const generationFailureNarrative = "Sorry, there was an error generating recommendations. Please try again later."

// RecommendationConfig holds configuration for the recommendation service
type RecommendationConfig struct {
	TopN        int
	Temperature float64
	MaxTokens   int
}

// RecommendationService ranks scraped products by value score and asks the
// text-generation service for a buying recommendation over the shortlist
type RecommendationService struct {
	generator   domain.TextGenerator
	log         logrus.FieldLogger
	topN        int
	temperature float64
	maxTokens   int
}

// NewRecommendationService creates a new recommendation service with dependencies
func NewRecommendationService(
	generator domain.TextGenerator,
	log logrus.FieldLogger,
	config RecommendationConfig,
) *RecommendationService {
	topN := config.TopN
	if topN <= 0 {
		topN = 10
	}

	temperature := config.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}

	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	if log == nil {
		log = logrus.StandardLogger()
	}

	return &RecommendationService{
		generator:   generator,
		log:         log,
		topN:        topN,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Recommend produces the ranked shortlist and narrative for a category.
// Flow: empty fast path -> rank by value score -> render prompt -> generate.
// Every branch terminates in a well-formed Recommendation; a generation
// failure degrades the narrative but never fails the request.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	products []domain.Product,
	category string,
) *domain.Recommendation {
	if len(products) == 0 {
		s.log.WithField("category", category).Warn("no products found for category")
		return &domain.Recommendation{
			TopProducts: []domain.Product{},
			Narrative:   fmt.Sprintf("No products found for %s. Please try a different category.", category),
		}
	}

	top := s.rankTop(products)

	s.log.WithFields(logrus.Fields{
		"category": category,
		"count":    len(top),
	}).Info("selected top products for category")

	prompt := s.buildPrompt(top, category)

	narrative, err := s.generator.Generate(ctx, systemInstruction, prompt, s.temperature, s.maxTokens)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"category": category,
			"error":    err,
		}).Error("generation call failed, returning ranked products with fallback narrative")
		return &domain.Recommendation{
			TopProducts: top,
			Narrative:   generationFailureNarrative,
		}
	}

	s.log.WithField("category", category).Info("successfully generated recommendation")

	return &domain.Recommendation{
		TopProducts: top,
		Narrative:   narrative,
	}
}

// rankTop returns the topN highest-scoring products in descending score
// order. The sort is stable: products with equal scores keep their input
// order, which is the tie-breaking policy (no secondary key exists).
func (s *RecommendationService) rankTop(products []domain.Product) []domain.Product {
	type scored struct {
		product domain.Product
		score   float64
	}

	ranked := make([]scored, len(products))
	for i, p := range products {
		ranked[i] = scored{product: p, score: ValueScore(p)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := s.topN
	if len(ranked) < n {
		n = len(ranked)
	}

	top := make([]domain.Product, n)
	for i := 0; i < n; i++ {
		top[i] = ranked[i].product
	}
	return top
}

// buildPrompt renders the user prompt: the provenance line, one numbered
// block per product, and the closing instruction to the model
func (s *RecommendationService) buildPrompt(top []domain.Product, category string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "These are the top-rated %s products from Sephora based on price, reviews, and rating:\n\n", category)

	for i, p := range top {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
		fmt.Fprintf(&b, "   Price: $%.2f, Rating: %g/5, Reviews: %d\n", p.Price, p.Rating, p.Reviews)
		fmt.Fprintf(&b, "   Value Score: %.2f\n", ValueScore(p))
		if p.URL != "" {
			fmt.Fprintf(&b, "   URL: %s\n", p.URL)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nBased on the above data, which 3-5 %s products provide the best value for money? ", category)
	b.WriteString("Consider the balance between price, rating, and number of reviews. ")
	b.WriteString("Explain why each product is a good value, and provide a brief summary of what makes these products stand out. ")
	b.WriteString("Format your response with clear headings and bullet points for each product's pros and cons.")

	return b.String()
}
