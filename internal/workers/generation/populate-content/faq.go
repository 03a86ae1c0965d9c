// internal/workers/generation/populate-content/faq.go
package populatecontent

import (
	"fmt"
	"strings"

	"sitegen-workers/internal/models"
	"sitegen-workers/pkg/catalog"
)

type faqItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
}

// assembleFAQs combines externally-sourced "people also ask" items, the
// industry FAQ bank, and generated location FAQs. Duplicates collapse on
// normalized question text, first occurrence by source priority wins, and
// the result is capped.
func assembleFAQs(peopleAlsoAsk []models.QA, bank []catalog.FAQ, areas []string, industryName string, max int) []faqItem {
	var items []faqItem
	seen := make(map[string]bool)

	add := func(question, answer, source string) {
		key := normalizeQuestion(question)
		if key == "" || seen[key] || answer == "" {
			return
		}
		seen[key] = true
		items = append(items, faqItem{Question: question, Answer: answer, Source: source})
	}

	for _, qa := range peopleAlsoAsk {
		add(qa.Question, qa.Answer, models.SourceSearchResults)
	}
	for _, faq := range bank {
		add(faq.Question, faq.Answer, "industry")
	}
	for _, area := range areas {
		add(
			fmt.Sprintf("Do you offer %s services in %s?", strings.ToLower(industryName), area),
			fmt.Sprintf("Yes, %s is part of our regular service area.", area),
			"generated",
		)
	}

	if max > 0 && len(items) > max {
		items = items[:max]
	}
	return items
}

// normalizeQuestion lowercases, trims and strips terminal punctuation so
// near-identical questions dedupe.
func normalizeQuestion(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	q = strings.TrimRight(q, "?!. ")
	return strings.Join(strings.Fields(q), " ")
}
