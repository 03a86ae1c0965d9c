// internal/workers/notification/send-generation-notice/handler.go
package sendgenerationnotice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	commonerrors "sitegen-workers/internal/common/errors"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-generation-notice"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// EmailSender is satisfied by the shared SES client.
type EmailSender interface {
	SendSimpleEmail(ctx context.Context, from, to, subject, body string) (*ses.SendEmailOutput, error)
}

// TopicPublisher is satisfied by the shared SNS client.
type TopicPublisher interface {
	PublishJSON(ctx context.Context, topicARN string, payload interface{}) (*sns.PublishOutput, error)
}

// Handler notifies the site owner when generation completes or stalls
// waiting on clarifying answers.
type Handler struct {
	config    *Config
	email     EmailSender
	publisher TopicPublisher
	logger    logger.Logger
}

func NewHandler(config *Config, email EmailSender, publisher TopicPublisher, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		email:     email,
		publisher: publisher,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, string(commonerrors.ErrCodeNotificationSendFailed), err.Error(),
			int32(commonerrors.GetRetryCount(commonerrors.ErrCodeNotificationSendFailed)))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !h.config.Enabled {
		h.logger.Debug("notifications disabled, skipping", map[string]interface{}{
			"businessId": input.BusinessID,
		})
		return &Output{Skipped: true}, nil
	}

	subject, body := noticeText(input)
	output := &Output{}

	if h.email != nil && input.OwnerEmail != "" && h.config.FromAddress != "" {
		_, err := h.email.SendSimpleEmail(ctx, h.config.FromAddress, input.OwnerEmail, subject, body)
		if err != nil {
			return nil, fmt.Errorf("%w: email: %v", ErrNotificationSendFailed, err)
		}
		output.EmailSent = true
	}

	if h.publisher != nil && h.config.SNSTopicARN != "" {
		_, err := h.publisher.PublishJSON(ctx, h.config.SNSTopicARN, map[string]interface{}{
			"businessId": input.BusinessID,
			"status":     input.Status,
			"siteId":     input.SiteID,
			"questions":  input.QuestionCount,
		})
		if err != nil {
			// Email already went out; the topic publish is for internal
			// listeners and can be retried by the next status change.
			h.logger.Warn("topic publish failed", map[string]interface{}{
				"businessId": input.BusinessID,
				"error":      err,
			})
		} else {
			output.Published = true
		}
	}

	h.logger.Info("generation notice handled", map[string]interface{}{
		"businessId": input.BusinessID,
		"status":     input.Status,
		"emailSent":  output.EmailSent,
		"published":  output.Published,
	})
	return output, nil
}

// noticeText renders subject and body for a notice status.
func noticeText(input *Input) (string, string) {
	name := input.BusinessName
	if name == "" {
		name = "your business"
	}

	switch input.Status {
	case StatusGenerated:
		return "Your new website is ready",
			fmt.Sprintf("The website for %s has been generated and is ready for review. Site reference: %s.", name, input.SiteID)
	case StatusQuestionsPending:
		return "A few quick questions to finish your website",
			fmt.Sprintf("We need %d quick answers about %s to finish generating your website. Log in to answer them.", input.QuestionCount, name)
	default:
		return "Website generation update",
			fmt.Sprintf("The website generation for %s changed status to %q.", name, input.Status)
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
		"category":     commonerrors.GetErrorCategory(commonerrors.ErrorCode(errorCode)),
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
