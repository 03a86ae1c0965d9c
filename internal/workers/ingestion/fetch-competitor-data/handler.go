// internal/workers/ingestion/fetch-competitor-data/handler.go
package fetchcompetitordata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	commonerrors "sitegen-workers/internal/common/errors"
	"sitegen-workers/internal/common/logger"
	"sitegen-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	TaskType = "fetch-competitor-data"
)

var (
	ErrCompetitorQueryFailed = errors.New("COMPETITOR_QUERY_FAILED")
	ErrSearchTimeout         = errors.New("SEARCH_TIMEOUT")
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := commonerrors.ErrCodeCompetitorQueryFailed
		if errors.Is(err, ErrSearchTimeout) {
			errorCode = commonerrors.ErrCodeSearchTimeout
		}
		h.failJob(client, job, string(errorCode), err.Error(), int32(commonerrors.GetRetryCount(errorCode)))
		return
	}

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	body, err := json.Marshal(buildSearchBody(input.Industry, input.Area, h.config.MaxCompetitors))
	if err != nil {
		return nil, fmt.Errorf("%w: marshal query: %v", ErrCompetitorQueryFailed, err)
	}

	req := esapi.SearchRequest{
		Index: []string{h.config.Index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, h.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrSearchTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrCompetitorQueryFailed, err)
	}
	defer res.Body.Close()

	// A missing index means no crawl has run for this market yet; fusion
	// and selection handle an empty record, so don't fail the pipeline.
	if res.StatusCode == http.StatusNotFound {
		h.logger.Warn("competitor index not found, returning empty record", map[string]interface{}{
			"index": h.config.Index,
		})
		return &Output{BusinessID: input.BusinessID}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: search returned %s", ErrCompetitorQueryFailed, res.Status())
	}

	var envelope searchEnvelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrCompetitorQueryFailed, err)
	}

	docs := make([]competitorDoc, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		docs = append(docs, hit.Source)
	}

	h.logger.Info("competitor data fetched", map[string]interface{}{
		"businessId":  input.BusinessID,
		"industry":    input.Industry,
		"competitors": len(docs),
		"totalHits":   envelope.Hits.Total.Value,
	})

	return &Output{
		BusinessID:    input.BusinessID,
		SearchResults: shapeRecord(docs),
		TotalHits:     envelope.Hits.Total.Value,
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
