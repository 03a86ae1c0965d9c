// internal/models/question.go
package models

// Question types understood by the onboarding UI.
const (
	QuestionTypeMultiSelect  = "multi-select"
	QuestionTypeSingleSelect = "single-select"
	QuestionTypeText         = "text"
	QuestionTypeYesNo        = "yes-no"
	QuestionTypePhotoLabel   = "photo-label"
)

// Question categories, in fixed tiebreak order (services first).
const (
	CategoryServices        = "services"
	CategoryDifferentiation = "differentiation"
	CategoryTrust           = "trust"
	CategoryOperational     = "operational"
)

// CategoryRank returns the tiebreak rank of a category; lower sorts first.
// Unknown categories sort last.
func CategoryRank(category string) int {
	switch category {
	case CategoryServices:
		return 0
	case CategoryDifferentiation:
		return 1
	case CategoryTrust:
		return 2
	case CategoryOperational:
		return 3
	}
	return 4
}

// Question is a stateless description of one clarifying question. The set
// is recomputed fresh on every generation call; answers are persisted by
// the record-user-answers worker, never inside the engine.
type Question struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Priority int      `json:"priority"`
	Text     string   `json:"text"`
	Options  []string `json:"options,omitempty"`
}
