package service

import (
	"context"
	"fmt"
	"time"

	"ai-legalassist-core/internal/dto"
	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/pkg/logger"
	"ai-legalassist-core/pkg/llm"
)

// IExecutionService runs a catalog tool over input text, streaming partial
// output. Abandoning the returned channel's context cancels the underlying
// stream promptly. Telemetry for every run is queued for sync, so offline
// executions are not lost.
type IExecutionService interface {
	Execute(ctx context.Context, toolId, input string) (<-chan llm.StreamChunk, error)
}

type executionService struct {
	catalog  ICatalogService
	provider llm.LLMProvider
	sync     ISyncService
	logger   logger.ILogger
}

func NewExecutionService(catalog ICatalogService, provider llm.LLMProvider, syncService ISyncService, log logger.ILogger) IExecutionService {
	return &executionService{
		catalog:  catalog,
		provider: provider,
		sync:     syncService,
		logger:   log,
	}
}

func (s *executionService) Execute(ctx context.Context, toolId, input string) (<-chan llm.StreamChunk, error) {
	tool := s.catalog.ToolById(ctx, toolId)
	if tool == nil {
		return nil, fmt.Errorf("unknown tool %q", toolId)
	}

	prompt := tool.PromptStub + "\n\n" + input
	startedAt := time.Now()

	upstream, err := s.provider.Stream(ctx, prompt)
	if err != nil {
		s.recordTelemetry(ctx, toolId, len(input), 0, startedAt, false)
		return nil, err
	}

	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)

		outputChars := 0
		succeeded := false
		for chunk := range upstream {
			outputChars += len(chunk.Content)
			if chunk.Done && chunk.Err == nil {
				succeeded = true
			}
			select {
			case <-ctx.Done():
				// Caller abandoned the run; upstream sees the same ctx and
				// stops on its own.
				s.recordTelemetry(context.WithoutCancel(ctx), toolId, len(input), outputChars, startedAt, false)
				return
			case out <- chunk:
			}
		}
		s.recordTelemetry(context.WithoutCancel(ctx), toolId, len(input), outputChars, startedAt, succeeded)
	}()
	return out, nil
}

func (s *executionService) recordTelemetry(ctx context.Context, toolId string, inputChars, outputChars int, startedAt time.Time, succeeded bool) {
	record := dto.ExecutionRecord{
		ToolId:      toolId,
		InputChars:  inputChars,
		OutputChars: outputChars,
		Duration:    time.Since(startedAt),
		StartedAt:   startedAt,
		Succeeded:   succeeded,
	}
	if err := s.sync.Enqueue(ctx, entity.OperationExecutionSync, record, 1); err != nil {
		s.logger.Warn("ExecutionService", "Failed to queue execution telemetry", map[string]interface{}{
			"tool":  toolId,
			"error": err.Error(),
		})
	}
}
