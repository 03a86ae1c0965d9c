// internal/workers/persistence/record-user-answers/handler.go
package recorduseranswers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sitegen-workers/internal/common/database"
	commonerrors "sitegen-workers/internal/common/errors"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "record-user-answers"
)

var (
	ErrAnswerSaveFailed = errors.New("ANSWER_SAVE_FAILED")
)

// Handler persists one round of question answers and invalidates the
// cached fusion result so the re-run folds the new answers in.
type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redisClient,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, string(commonerrors.ErrCodeAnswerSaveFailed), err.Error(),
			int32(commonerrors.GetRetryCount(commonerrors.ErrCodeAnswerSaveFailed)))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.BusinessID == "" {
		return nil, fmt.Errorf("%w: businessId is required", ErrAnswerSaveFailed)
	}

	answersJSON, err := json.Marshal(input.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal answers: %v", ErrAnswerSaveFailed, err)
	}

	answerID := uuid.New().String()
	recordedAt := time.Now().UTC().Format(time.RFC3339)

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO user_answers (id, business_id, answers, created_at)
		VALUES ($1, $2, $3, $4)`,
		answerID,
		input.BusinessID,
		answersJSON,
		recordedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrAnswerSaveFailed, err)
	}

	// Cache invalidation is best effort: a stale entry only lasts until
	// its TTL, so a failed DEL must not fail the recorded answers.
	invalidated := false
	if h.redis != nil {
		if err := h.redis.Del(ctx, database.InsightsCacheKey(input.BusinessID)).Err(); err != nil {
			h.logger.Warn("insights cache invalidation failed", map[string]interface{}{
				"businessId": input.BusinessID,
				"error":      err,
			})
		} else {
			invalidated = true
		}
	}

	h.logger.Info("user answers recorded", map[string]interface{}{
		"answerId":         answerID,
		"businessId":       input.BusinessID,
		"cacheInvalidated": invalidated,
	})

	return &Output{
		AnswerID:         answerID,
		CacheInvalidated: invalidated,
		RecordedAt:       recordedAt,
	}, nil
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
