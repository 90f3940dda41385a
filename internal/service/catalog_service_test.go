package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"ai-legalassist-core/internal/constant"
	"ai-legalassist-core/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu    sync.Mutex
	tools []entity.Tool
	err   error
	calls int
}

func (f *stubFetcher) FetchTools(ctx context.Context) ([]entity.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.tools, f.err
}

func newTestCatalogService(fetcher ToolFetcher) (ICatalogService, *fakeQueueRepo) {
	repo := newFakeQueueRepo()
	syncSvc := newTestSyncService(repo, &fakeBackend{}, nil, nil)
	cache := NewCacheService(newFakeCacheRepo())
	return NewCatalogService(fetcher, cache, syncSvc, time.Hour, noopLogger{}), repo
}

func TestCatalogServesBuiltinToolsOffline(t *testing.T) {
	svc, _ := newTestCatalogService(failingFetcher{})
	ctx := context.Background()

	tools := svc.FetchAllTools(ctx)
	assert.Len(t, tools, len(constant.BuiltinTools))

	tool := svc.ToolById(ctx, constant.RiskAnalysisToolId)
	require.NotNil(t, tool)
	assert.Equal(t, "Contract Risk Analyzer", tool.Name)
}

func TestCatalogFetchByCategory(t *testing.T) {
	svc, _ := newTestCatalogService(failingFetcher{})

	litigation := svc.FetchToolsByCategory(context.Background(), entity.ToolCategoryLitigation)
	require.NotEmpty(t, litigation)
	for _, tool := range litigation {
		assert.Equal(t, entity.ToolCategoryLitigation, tool.Category)
	}
}

func TestCatalogRefreshCachesBackendList(t *testing.T) {
	fetcher := &stubFetcher{tools: []entity.Tool{
		{Id: "backend_tool", Name: "Backend Tool", Category: entity.ToolCategoryGeneral},
	}}
	svc, _ := newTestCatalogService(fetcher)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))

	tools := svc.FetchAllTools(ctx)
	require.Len(t, tools, 1)
	assert.Equal(t, "backend_tool", tools[0].Id)

	// Reads after refresh come from the cache, not the backend.
	svc.FetchAllTools(ctx)
	assert.Equal(t, 1, fetcher.calls)
}

func TestCatalogRefreshFailureKeepsBuiltins(t *testing.T) {
	svc, _ := newTestCatalogService(failingFetcher{})
	ctx := context.Background()

	assert.Error(t, svc.Refresh(ctx))
	assert.Len(t, svc.FetchAllTools(ctx), len(constant.BuiltinTools))
}

func TestCatalogUnknownToolIsNil(t *testing.T) {
	svc, _ := newTestCatalogService(failingFetcher{})
	assert.Nil(t, svc.ToolById(context.Background(), "nonexistent"))
}

func TestToggleFavoriteQueuesMutation(t *testing.T) {
	svc, repo := newTestCatalogService(failingFetcher{})
	ctx := context.Background()

	require.NoError(t, svc.ToggleFavorite(ctx, "clause_extractor", true))

	require.Equal(t, 1, repo.size())
	assert.Equal(t, entity.OperationFavoriteToggle, repo.onlyItem().Operation)
}

func TestToggleFavoriteUnknownTool(t *testing.T) {
	svc, repo := newTestCatalogService(failingFetcher{})

	assert.Error(t, svc.ToggleFavorite(context.Background(), "nonexistent", true))
	assert.Zero(t, repo.size())
}
