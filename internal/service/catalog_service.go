package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-legalassist-core/internal/constant"
	"ai-legalassist-core/internal/dto"
	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/pkg/logger"
)

const catalogCacheKey = "tools:catalog"

// ToolFetcher is the backend read used to refresh the catalog.
type ToolFetcher interface {
	FetchTools(ctx context.Context) ([]entity.Tool, error)
}

// ICatalogService holds the available tools. The context engine only needs
// the category-to-tools and id-to-metadata lookups from it.
type ICatalogService interface {
	FetchAllTools(ctx context.Context) []entity.Tool
	FetchToolsByCategory(ctx context.Context, category entity.ToolCategory) []entity.Tool
	ToolById(ctx context.Context, id string) *entity.Tool
	// Refresh pulls the backend catalog and caches it. Offline or on error
	// the built-in catalog keeps serving lookups.
	Refresh(ctx context.Context) error
	// ToggleFavorite queues the mutation for replay and drops the cached
	// catalog view so the next read reflects it.
	ToggleFavorite(ctx context.Context, toolId string, favorite bool) error
}

type catalogService struct {
	fetcher  ToolFetcher
	cache    ICacheService
	sync     ISyncService
	cacheTTL time.Duration
	logger   logger.ILogger
}

func NewCatalogService(fetcher ToolFetcher, cache ICacheService, syncService ISyncService, cacheTTL time.Duration, log logger.ILogger) ICatalogService {
	return &catalogService{
		fetcher:  fetcher,
		cache:    cache,
		sync:     syncService,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (s *catalogService) FetchAllTools(ctx context.Context) []entity.Tool {
	if cached := s.cachedTools(ctx); cached != nil {
		return cached
	}
	return append([]entity.Tool(nil), constant.BuiltinTools...)
}

func (s *catalogService) FetchToolsByCategory(ctx context.Context, category entity.ToolCategory) []entity.Tool {
	var matched []entity.Tool
	for _, tool := range s.FetchAllTools(ctx) {
		if tool.Category == category {
			matched = append(matched, tool)
		}
	}
	return matched
}

func (s *catalogService) ToolById(ctx context.Context, id string) *entity.Tool {
	for _, tool := range s.FetchAllTools(ctx) {
		if tool.Id == id {
			t := tool
			return &t
		}
	}
	return nil
}

func (s *catalogService) Refresh(ctx context.Context) error {
	tools, err := s.fetcher.FetchTools(ctx)
	if err != nil {
		s.logger.Warn("CatalogService", "Catalog refresh failed, serving built-in catalog", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	payload, err := json.Marshal(tools)
	if err != nil {
		return err
	}
	if err := s.cache.SetCache(ctx, catalogCacheKey, payload, s.cacheTTL); err != nil {
		return err
	}
	s.logger.Info("CatalogService", "Catalog refreshed from backend", map[string]interface{}{
		"tools": len(tools),
	})
	return nil
}

func (s *catalogService) cachedTools(ctx context.Context) []entity.Tool {
	payload := s.cache.GetCached(ctx, catalogCacheKey)
	if payload == nil {
		return nil
	}
	var tools []entity.Tool
	if err := json.Unmarshal(payload, &tools); err != nil {
		return nil
	}
	return tools
}

func (s *catalogService) ToggleFavorite(ctx context.Context, toolId string, favorite bool) error {
	if s.ToolById(ctx, toolId) == nil {
		return fmt.Errorf("unknown tool %q", toolId)
	}

	toggle := dto.FavoriteToggle{ToolId: toolId, Favorite: favorite}
	if err := s.sync.Enqueue(ctx, entity.OperationFavoriteToggle, toggle, 2); err != nil {
		return err
	}
	return s.cache.InvalidateCache(ctx, catalogCacheKey)
}
