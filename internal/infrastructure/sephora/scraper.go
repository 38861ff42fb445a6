package sephora

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"github.com/beautybot/backend/internal/domain"
)

// userAgents is rotated per request to look like ordinary browser traffic
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
}

// Scraper fetches product listings from Sephora category pages.
// It implements domain.ProductSource. Page-level failures (blocked request,
// changed markup, unparseable tiles) reduce to an empty or shorter product
// list, never to an error; only request construction and context failures
// surface as errors.
type Scraper struct {
	httpClient *http.Client
	baseURL    string
	delay      time.Duration
	log        logrus.FieldLogger
}

// NewScraper creates a new Sephora scraper. delay is slept before each
// request to stay polite to the site.
func NewScraper(baseURL string, timeout, delay time.Duration, log logrus.FieldLogger) *Scraper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Scraper{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		delay:   delay,
		log:     log,
	}
}

// Scrape fetches the listing page for a category and extracts its product
// tiles. Records missing a name or a parseable price are dropped.
func (s *Scraper) Scrape(ctx context.Context, category string) ([]domain.Product, error) {
	slug := strings.ReplaceAll(strings.ToLower(category), " ", "-")
	reqURL := fmt.Sprintf("%s/shop/%s", s.baseURL, slug)

	log := s.log.WithFields(logrus.Fields{"category": category, "url": reqURL})
	log.Info("scraping category listing")

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.WithField("error", err).Error("listing request failed")
		return []domain.Product{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Error("listing request rejected")
		return []domain.Product{}, nil
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		log.WithField("error", err).Error("failed to decode listing body")
		return []domain.Product{}, nil
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		log.WithField("error", err).Error("failed to parse listing HTML")
		return []domain.Product{}, nil
	}

	products := s.extractProducts(doc)
	if len(products) == 0 {
		log.Warn("no product tiles found, site may have changed markup or blocked the request")
	} else {
		log.WithField("count", len(products)).Info("scraped products")
	}

	return products, nil
}

// extractProducts walks the product grid and converts each tile to a Product
func (s *Scraper) extractProducts(doc *goquery.Document) []domain.Product {
	products := []domain.Product{}

	doc.Find("div[data-comp='ProductGrid'] div[data-comp='ProductTile']").Each(func(i int, tile *goquery.Selection) {
		name := strings.TrimSpace(tile.Find("span[data-at='sku_item_name']").First().Text())
		priceText := strings.TrimSpace(tile.Find("span[data-at='price']").First().Text())

		// Name and price are required for a record to exist
		if name == "" || priceText == "" {
			return
		}

		price, err := parsePrice(priceText)
		if err != nil || price < 0 {
			s.log.WithFields(logrus.Fields{"name": name, "price": priceText}).Debug("skipping tile with unparseable price")
			return
		}

		product := domain.Product{
			Name:    name,
			Price:   price,
			Rating:  parseRating(tile.Find("div[data-comp='StarRating']").First().AttrOr("aria-label", "")),
			Reviews: parseReviews(tile.Find("span[data-at='number_of_reviews']").First().Text()),
		}

		if href := tile.Find("a[data-comp='ProductTile-link']").First().AttrOr("href", ""); href != "" {
			product.URL = s.absoluteURL(href)
		}

		products = append(products, product)
	})

	return products
}

// parsePrice converts a display price like "$24.50" or "$1,024.00" to a float
func parsePrice(text string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(text)
	return strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
}

// parseRating extracts the star value from an aria-label like "4.5 stars".
// Missing or malformed labels mean "no rating available" and yield 0.
func parseRating(ariaLabel string) float64 {
	if !strings.Contains(ariaLabel, "stars") {
		return 0
	}
	value := strings.TrimSpace(strings.SplitN(ariaLabel, "stars", 2)[0])
	rating, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return rating
}

// parseReviews converts a review count like "(1,234)" to an int, 0 when absent
func parseReviews(text string) int {
	cleaned := strings.NewReplacer("(", "", ")", "", ",", "").Replace(strings.TrimSpace(text))
	reviews, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return reviews
}

// absoluteURL joins a tile href with the base URL when it is relative
func (s *Scraper) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return s.baseURL + href
}

// wait sleeps for the politeness delay, aborting early on context cancel
func (s *Scraper) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
