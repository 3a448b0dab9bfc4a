package faq

import (
	"testing"

	"github.com/egxadev/wa-webhook/internal/models"
)

func TestByProductCoversAllProducts(t *testing.T) {
	for _, product := range Products() {
		questions := ByProduct(product)
		if len(questions) < DefaultBatchSize {
			t.Errorf("product %s has %d questions, need at least %d", product, len(questions), DefaultBatchSize)
		}
	}
	if ByProduct("unknown") != nil {
		t.Error("unknown product should return nil")
	}
}

func TestQuestionTextFitsRowTitle(t *testing.T) {
	for _, product := range Products() {
		for _, q := range ByProduct(product) {
			if n := len([]rune(q.Question)); n > models.MaxRowTitleLength {
				t.Errorf("question %s text %q is %d runes, exceeds row title limit", q.ID, q.Question, n)
			}
		}
	}
}

func TestRowTitleMatchesBackToQuestion(t *testing.T) {
	// List rows render TruncateTitle(question) and the platform echoes the
	// title back; that echo must resolve to the same question.
	for _, product := range Products() {
		for _, q := range ByProduct(product) {
			title := models.TruncateTitle(q.Question)
			got, p, ok := ByQuestion(title)
			if !ok {
				t.Errorf("rendered title %q does not resolve to a question", title)
				continue
			}
			if got.ID != q.ID || p != product {
				t.Errorf("rendered title %q resolved to %s/%s, want %s/%s", title, p, got.ID, product, q.ID)
			}
		}
	}
}

func TestByID(t *testing.T) {
	q, product, ok := ByID("faq_ss_manfaat")
	if !ok {
		t.Fatal("expected faq_ss_manfaat to exist")
	}
	if product != ProductSilverStream {
		t.Errorf("expected silverstream, got %s", product)
	}
	if q.Answer == "" {
		t.Error("expected non-empty answer")
	}

	if _, _, ok := ByID("faq_nope"); ok {
		t.Error("nonexistent id must not match")
	}
}

func TestByQuestionCaseInsensitive(t *testing.T) {
	q, product, ok := ByQuestion("  APA MANFAAT UTAMA?  ")
	if !ok {
		t.Fatal("expected case-insensitive match")
	}
	if q.ID != "faq_ss_manfaat" || product != ProductSilverStream {
		t.Errorf("unexpected match: %s / %s", q.ID, product)
	}

	if _, _, ok := ByQuestion("pertanyaan yang tidak ada"); ok {
		t.Error("unknown question must not match")
	}
}
