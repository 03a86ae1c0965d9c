// internal/workers/generation/select-template/handler.go
package selecttemplate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	commonerrors "sitegen-workers/internal/common/errors"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/common/metrics"
	"sitegen-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "select-template"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "TEMPLATE_SELECTION_FAILED", err.Error())
		return
	}

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	strategy, matchedRule := h.deriveStrategy(&input.Insights, &input.Competitive)
	facts := deriveFacts(&input.Insights, &input.Competitive, &strategy)

	reasoning := map[string]string{
		"strategy": matchedRule,
	}

	templateID, templateReason := evalVariantTable(templateTable, &facts)
	reasoning["template"] = templateReason

	included := h.includedSections(&facts)
	variants := make(map[string]string, len(included))
	for _, section := range included {
		table, ok := sectionVariantTables[section]
		if !ok {
			variants[section] = "standard"
			reasoning[section] = "no variant table, standard layout"
			continue
		}
		variant, reason := evalVariantTable(table, &facts)
		variants[section] = variant
		reasoning[section] = reason
	}

	selection := models.TemplateSelection{
		TemplateID:      templateID,
		SectionVariants: variants,
		SectionOrder:    orderSections(included, &strategy),
		Reasoning:       reasoning,
		Strategy:        strategy,
	}

	h.logger.Info("template selected", map[string]interface{}{
		"businessId":  input.BusinessID,
		"templateId":  templateID,
		"positioning": strategy.Positioning,
		"sections":    len(included),
	})

	return &Output{
		BusinessID: input.BusinessID,
		Selection:  selection,
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
