// internal/workers/generation/fuse-business-data/handler.go
package fusebusinessdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sitegen-workers/internal/common/database"
	commonerrors "sitegen-workers/internal/common/errors"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/common/metrics"
	"sitegen-workers/pkg/catalog"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "fuse-business-data"
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	redis   *redis.Client
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: cat,
		redis:   redisClient,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.executeCached(ctx, &input)
	if err != nil {
		errorCode := "FUSION_FAILED"
		if errors.Is(err, catalog.ErrUnknownIndustry) {
			errorCode = string(commonerrors.ErrCodeUnknownIndustry)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	metrics.FusionQuality.Observe(output.Insights.OverallQuality)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// executeCached serves fusion results through the per-business insights
// cache. The cache is invalidated whenever new answers are recorded, so
// the re-run after a question round recomputes fusion.
func (h *Handler) executeCached(ctx context.Context, input *Input) (*Output, error) {
	cacheKey := database.InsightsCacheKey(input.BusinessID)

	if h.redis != nil && input.BusinessID != "" && !input.ForceRefresh {
		if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var output Output
			if err := json.Unmarshal([]byte(val), &output); err == nil {
				h.logger.Debug("insights cache hit", map[string]interface{}{
					"businessId": input.BusinessID,
				})
				return &output, nil
			}
		}
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		return nil, err
	}

	if h.redis != nil && input.BusinessID != "" {
		if data, err := json.Marshal(output); err == nil {
			h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)
		}
	}
	return output, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	insights := h.fuse(&input.Sources, input.Industry)

	h.logger.Info("fusion complete", map[string]interface{}{
		"businessId":     input.BusinessID,
		"overallQuality": insights.OverallQuality,
		"missingData":    len(insights.MissingData),
	})

	return &Output{
		BusinessID: input.BusinessID,
		Insights:   insights,
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
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
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

// ExecuteCached is the cache-aware entry point used by tests exercising
// the read-through path.
func (h *Handler) ExecuteCached(ctx context.Context, input *Input) (*Output, error) {
	return h.executeCached(ctx, input)
}
