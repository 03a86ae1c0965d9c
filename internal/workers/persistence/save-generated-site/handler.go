// internal/workers/persistence/save-generated-site/handler.go
package savegeneratedsite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	commonerrors "sitegen-workers/internal/common/errors"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "save-generated-site"
)

var (
	ErrSiteSaveFailed = errors.New("SITE_SAVE_FAILED")
	ErrDuplicateSite  = errors.New("DUPLICATE_SITE")
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		errorCode := commonerrors.ErrCodeSiteSaveFailed
		if errors.Is(err, ErrDuplicateSite) {
			errorCode = commonerrors.ErrCodeDuplicateSite
		}
		h.failJob(client, job, string(errorCode), err.Error(), int32(commonerrors.GetRetryCount(errorCode)))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	// One generation request produces one site; a replayed job must not
	// write a second row.
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM generated_sites
			WHERE business_id = $1 AND generation_request_id = $2
		)`, input.BusinessID, input.RequestID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrSiteSaveFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: site already saved for business %s request %s",
			ErrDuplicateSite, input.BusinessID, input.RequestID)
	}

	siteID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	selectionJSON, err := json.Marshal(input.Selection)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal selection: %v", ErrSiteSaveFailed, err)
	}
	sectionsJSON, err := json.Marshal(input.Sections)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal sections: %v", ErrSiteSaveFailed, err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO generated_sites (
			id, business_id, generation_request_id, industry,
			template_id, positioning, selection, sections, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		siteID,
		input.BusinessID,
		input.RequestID,
		input.Industry,
		input.Selection.TemplateID,
		input.Selection.Strategy.Positioning,
		selectionJSON,
		sectionsJSON,
		"generated",
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrSiteSaveFailed, err)
	}

	h.logger.Info("generated site saved", map[string]interface{}{
		"siteId":     siteID,
		"businessId": input.BusinessID,
		"templateId": input.Selection.TemplateID,
		"sections":   len(input.Sections),
	})

	return &Output{
		SiteID:    siteID,
		Status:    "generated",
		CreatedAt: createdAt,
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
