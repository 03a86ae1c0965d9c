// internal/workers/persistence/record-user-answers/models.go
package recorduseranswers

import "sitegen-workers/internal/models"

type Input struct {
	BusinessID string `json:"businessId"`

	// Answers is the user-answers source record built from one question
	// round: confirmations, photo contexts, differentiators and friends.
	Answers models.SourceRecord `json:"userAnswers"`
}

type Output struct {
	AnswerID string `json:"answerId"`

	// CacheInvalidated reports whether the cached fusion result for this
	// business was cleared, forcing the follow-up run to recompute.
	CacheInvalidated bool `json:"cacheInvalidated"`

	RecordedAt string `json:"recordedAt"`
}
