// internal/workers/generation/populate-content/handler.go
package populatecontent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	commonerrors "sitegen-workers/internal/common/errors"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/common/metrics"
	"sitegen-workers/pkg/catalog"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "populate-content"
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: cat,
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

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "CONTENT_POPULATION_FAILED"
		if errors.Is(err, catalog.ErrUnknownIndustry) {
			errorCode = string(commonerrors.ErrCodeUnknownIndustry)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	metrics.SitesGenerated.WithLabelValues(output.Industry, input.Selection.Strategy.Positioning).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.catalog.Industry(input.Industry)
	if err != nil {
		return nil, err
	}

	sctx := &sectionContext{
		cfg:         h.config,
		profile:     profile,
		insights:    &input.Insights,
		competitive: &input.Competitive,
		selection:   &input.Selection,
		keywords:    deriveKeywords(&input.Insights, profile, h.config.MaxSEOKeywords),
	}

	sections := h.populate(sctx)

	h.logger.Info("content populated", map[string]interface{}{
		"businessId": input.BusinessID,
		"industry":   profile.Tag,
		"sections":   len(sections),
	})

	return &Output{
		BusinessID: input.BusinessID,
		Industry:   profile.Tag,
		Sections:   sections,
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
