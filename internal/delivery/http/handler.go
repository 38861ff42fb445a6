package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/beautybot/backend/internal/domain"
	"github.com/beautybot/backend/internal/infrastructure/sephora"
)

// Recommender produces a ranked shortlist and narrative for a category's
// products. Satisfied by usecase.RecommendationService.
type Recommender interface {
	Recommend(ctx context.Context, products []domain.Product, category string) *domain.Recommendation
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	source      domain.ProductSource
	recommender Recommender
	log         logrus.FieldLogger
}

// NewHandler creates a new HTTP handler
func NewHandler(source domain.ProductSource, recommender Recommender, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		source:      source,
		recommender: recommender,
		log:         log,
	}
}

// Recommend handles product recommendation requests.
// Body: {"category": "..."}. Missing category is a 400; scrape failures the
// source could not reduce to an empty list are a generic 500; everything
// else is a 200 with top products and narrative.
func (h *Handler) Recommend(c *gin.Context) {
	var req domain.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing category parameter"})
		return
	}

	h.log.WithField("category", req.Category).Info("received recommendation request")

	// Categories outside the catalog have no listing page, so skip the
	// scrape and answer with the no-products fallback straight away
	if !sephora.IsValidCategory(req.Category) {
		h.log.WithField("category", req.Category).Warn("unknown category requested")
		c.JSON(http.StatusOK, h.recommender.Recommend(c.Request.Context(), nil, req.Category))
		return
	}

	products, err := h.source.Scrape(c.Request.Context(), req.Category)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"category": req.Category,
			"error":    err,
		}).Error("error processing recommendation request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred processing your request"})
		return
	}

	c.JSON(http.StatusOK, h.recommender.Recommend(c.Request.Context(), products, req.Category))
}

// Categories returns the static list of scrapeable makeup categories
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, sephora.AvailableCategories())
}

// HealthCheck returns the liveness status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Index returns a welcome message describing the API surface
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Beauty Bot API",
		"endpoints": gin.H{
			"/api/categories": "GET - List available makeup categories",
			"/api/recommend":  "POST - Get product recommendations for a category",
		},
	})
}
