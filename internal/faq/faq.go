// Package faq provides the static per-product FAQ corpus and the per-user
// rotation tracker that serves randomized, non-repeating question batches.
package faq

import "strings"

// Product identifies a product FAQ category.
type Product string

const (
	ProductSilverStream Product = "silverstream"
	ProductStimel       Product = "stimel"
	ProductAkuSehat     Product = "akusehat"
)

// IDPrefix is the naming convention shared by all FAQ ids.
const IDPrefix = "faq_"

// Question is an immutable FAQ entry. Question text stays within the
// 24-character row-title limit of the messaging platform.
type Question struct {
	ID       string
	Question string
	Answer   string
}

// ByProduct returns the full FAQ list for a product. The returned slice is
// shared; callers must not mutate it.
func ByProduct(product Product) []Question {
	switch product {
	case ProductSilverStream:
		return silverstreamFAQs
	case ProductStimel:
		return stimelFAQs
	case ProductAkuSehat:
		return akusehatFAQs
	default:
		return nil
	}
}

// Products lists every product that has FAQ entries.
func Products() []Product {
	return []Product{ProductSilverStream, ProductStimel, ProductAkuSehat}
}

// ByID looks up a question by its id across all products. The second return
// value is the owning product.
func ByID(id string) (Question, Product, bool) {
	for _, product := range Products() {
		for _, q := range ByProduct(product) {
			if q.ID == id {
				return q, product, true
			}
		}
	}
	return Question{}, "", false
}

// ByQuestion looks up a question by its display text, case-insensitively,
// across all products.
func ByQuestion(text string) (Question, Product, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, product := range Products() {
		for _, q := range ByProduct(product) {
			if strings.ToLower(q.Question) == normalized {
				return q, product, true
			}
		}
	}
	return Question{}, "", false
}
