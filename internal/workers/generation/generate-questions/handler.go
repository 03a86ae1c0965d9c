// internal/workers/generation/generate-questions/handler.go
package generatequestions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	commonerrors "sitegen-workers/internal/common/errors"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/common/metrics"
	"sitegen-workers/internal/models"
	"sitegen-workers/pkg/catalog"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-questions"
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
		errorCode := "QUESTION_GENERATION_FAILED"
		if errors.Is(err, catalog.ErrUnknownIndustry) {
			errorCode = string(commonerrors.ErrCodeUnknownIndustry)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	metrics.QuestionsEmitted.Observe(float64(len(output.Questions)))
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.catalog.Industry(input.Industry)
	if err != nil {
		return nil, err
	}

	questions := h.generate(&input.Insights, profile)

	h.logger.Info("questions generated", map[string]interface{}{
		"businessId": input.BusinessID,
		"industry":   profile.Tag,
		"emitted":    len(questions),
	})

	return &Output{
		BusinessID: input.BusinessID,
		Questions:  questions,
		Complete:   len(questions) == 0,
	}, nil
}

// generate walks the industry question catalogue and emits every template
// whose gap is still open, ordered by descending priority with a fixed
// category tiebreak, capped at the configured maximum by dropping the
// strict tail.
func (h *Handler) generate(insights *models.DataInsights, profile *catalog.IndustryProfile) []models.Question {
	var emitted []models.Question
	seen := make(map[string]bool)

	for _, tpl := range profile.Questions {
		if seen[tpl.ID] || !shouldEmit(&tpl, insights) {
			continue
		}
		seen[tpl.ID] = true

		question := models.Question{
			ID:       tpl.ID,
			Type:     tpl.Type,
			Category: tpl.Category,
			Priority: tpl.Priority,
			Text:     tpl.Text,
			Options:  tpl.Options,
		}
		if tpl.OptionsFromServices {
			question.Options = profile.ServiceCatalog
		}
		emitted = append(emitted, question)
	}

	sort.SliceStable(emitted, func(i, j int) bool {
		if emitted[i].Priority != emitted[j].Priority {
			return emitted[i].Priority > emitted[j].Priority
		}
		ri, rj := models.CategoryRank(emitted[i].Category), models.CategoryRank(emitted[j].Category)
		if ri != rj {
			return ri < rj
		}
		return emitted[i].ID < emitted[j].ID
	})

	if max := h.config.MaxQuestions; max > 0 && len(emitted) > max {
		emitted = emitted[:max]
	}
	return emitted
}

// shouldEmit evaluates the template's declarative skip condition: emit
// while the addressed gap is missing, or while overall quality sits below
// the template's threshold. Both conditions only ever resolve as data is
// added, so richer insights can only shrink the emitted set.
func shouldEmit(tpl *catalog.QuestionTemplate, insights *models.DataInsights) bool {
	if tpl.Gap != "" && insights.IsMissing(tpl.Gap) {
		return true
	}
	if tpl.EmitBelowQuality > 0 && insights.OverallQuality < tpl.EmitBelowQuality {
		return true
	}
	return false
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
