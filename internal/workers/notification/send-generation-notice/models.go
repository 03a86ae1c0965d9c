// internal/workers/notification/send-generation-notice/models.go
package sendgenerationnotice

// Notice statuses understood by this worker.
const (
	StatusGenerated        = "generated"
	StatusQuestionsPending = "questions-pending"
)

type Input struct {
	BusinessID    string `json:"businessId"`
	BusinessName  string `json:"businessName,omitempty"`
	OwnerEmail    string `json:"ownerEmail,omitempty"`
	Status        string `json:"generationStatus"`
	SiteID        string `json:"siteId,omitempty"`
	QuestionCount int    `json:"questionCount,omitempty"`
}

type Output struct {
	EmailSent bool `json:"emailSent"`
	Published bool `json:"topicPublished"`
	Skipped   bool `json:"notificationSkipped,omitempty"`
}
