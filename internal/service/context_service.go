package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-legalassist-core/internal/constant"
	"ai-legalassist-core/internal/dto"
	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/pkg/logger"
)

// ErrPermissionNotGranted is returned by Start when the OS accessibility
// permission is missing. Start never prompts; the settings-redirect
// affordance is the only place that should.
var ErrPermissionNotGranted = errors.New("accessibility permission not granted")

// IContextService is the context engine: it owns the single current
// EnrichedContext snapshot and advances it from a periodic tick plus
// debounced change triggers. Updates are serialized onto one run goroutine,
// so a candidate is only ever compared against the current snapshot.
type IContextService interface {
	Start(ctx context.Context) error
	Stop()
	Current() *entity.EnrichedContext
	SuggestedTools() []entity.Tool
	QuickActions() []entity.QuickAction
	// Refresh requests an immediate detection pass, bypassing the debounce.
	Refresh()
}

type ContextEngineConfig struct {
	TickInterval        time.Duration
	DebounceInterval    time.Duration
	WatchInterval       time.Duration
	SelectionTimeout    time.Duration
	SelectionDelta      int
	MaxSuggestedTools   int
	MaxQuickActions     int
	SummaryMaxSentences int
}

type contextService struct {
	observer  IObserverService
	analyzer  IAnalyzerService
	catalog   ICatalogService
	publisher IPublisherService
	sync      ISyncService
	cfg       ContextEngineConfig
	logger    logger.ILogger

	mu             sync.RWMutex
	current        *entity.EnrichedContext
	suggestedTools []entity.Tool
	quickActions   []entity.QuickAction

	runMu    sync.Mutex
	running  bool
	cancel   context.CancelFunc
	triggers chan struct{}
	runWg    sync.WaitGroup
}

func NewContextService(
	observer IObserverService,
	analyzer IAnalyzerService,
	catalog ICatalogService,
	publisher IPublisherService,
	syncService ISyncService,
	cfg ContextEngineConfig,
	log logger.ILogger,
) IContextService {
	return &contextService{
		observer:  observer,
		analyzer:  analyzer,
		catalog:   catalog,
		publisher: publisher,
		sync:      syncService,
		cfg:       cfg,
		logger:    log,
	}
}

// Start begins monitoring only if the accessibility permission is already
// granted. Starting twice is idempotent: no duplicate timers.
func (s *contextService) Start(ctx context.Context) error {
	if !s.observer.PermissionGranted() {
		return ErrPermissionNotGranted
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.running {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.triggers = make(chan struct{}, 1)
	triggers := s.triggers

	s.runWg.Add(2)
	go func() {
		defer s.runWg.Done()
		s.run(runCtx, triggers)
	}()
	go func() {
		defer s.runWg.Done()
		s.watch(runCtx)
	}()

	s.logger.Info("ContextService", "Context engine started", map[string]interface{}{
		"tick":     s.cfg.TickInterval.String(),
		"debounce": s.cfg.DebounceInterval.String(),
	})
	return nil
}

// Stop cancels the periodic timer and all watchers and waits for them to
// exit, so a subsequent Start never overlaps the previous run. Idempotent.
func (s *contextService) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	s.running = false
	s.runWg.Wait()
}

func (s *contextService) Refresh() {
	s.fireTrigger()
}

// fireTrigger coalesces: a pending trigger absorbs later ones.
func (s *contextService) fireTrigger() {
	s.runMu.Lock()
	triggers := s.triggers
	running := s.running
	s.runMu.Unlock()
	if !running || triggers == nil {
		return
	}
	select {
	case triggers <- struct{}{}:
	default:
	}
}

// run is the single writer of the current snapshot. The trigger channel is
// passed in rather than read from the struct so a later Start cannot swap it
// out from under a still-draining run.
func (s *contextService) run(ctx context.Context, triggers <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	// Initial pass so a freshly started engine has a snapshot before the
	// first tick.
	s.detect(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.detect(ctx)
		case <-triggers:
			s.detect(ctx)
		}
	}
}

// watch polls a cheap fingerprint of app/window/selection and debounces
// bursts of change into a single trigger.
func (s *contextService) watch(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.WatchInterval)
	defer ticker.Stop()

	debounce := newDebouncer(s.cfg.DebounceInterval, s.fireTrigger)
	defer debounce.stop()

	var last fingerprint
	first := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := s.fingerprint(ctx)
			if first {
				last = current
				first = false
				continue
			}
			if current != last {
				last = current
				debounce.trigger()
			}
		}
	}
}

type fingerprint struct {
	bundleId    string
	windowTitle string
	selLength   int
}

func (s *contextService) fingerprint(ctx context.Context) fingerprint {
	var fp fingerprint
	if app := s.observer.ActiveApplication(ctx); app != nil {
		fp.bundleId = app.BundleId
	}
	if win := s.observer.ActiveWindow(ctx); win != nil {
		fp.windowTitle = win.Title
	}
	if sel := s.observer.SelectedText(ctx, s.cfg.SelectionTimeout); sel != nil {
		fp.selLength = len(sel.Content)
	}
	return fp
}

// detect rebuilds a candidate snapshot and publishes it when significant.
func (s *contextService) detect(ctx context.Context) {
	candidate := s.buildCandidate(ctx)
	if candidate == nil {
		return
	}

	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if !s.significant(current, candidate) {
		return
	}

	tools := s.deriveSuggestedTools(ctx, candidate)
	actions := s.deriveQuickActions(candidate)

	s.mu.Lock()
	s.current = candidate
	s.suggestedTools = tools
	s.quickActions = actions
	s.mu.Unlock()

	s.publishChange(ctx, candidate, tools, actions)
}

// buildCandidate assembles a context from observer and analyzer outputs.
// Absence of data degrades the snapshot; it never fails.
func (s *contextService) buildCandidate(ctx context.Context) *entity.EnrichedContext {
	app := s.observer.ActiveApplication(ctx)
	if app == nil {
		return nil
	}
	window := s.observer.ActiveWindow(ctx)
	selection := s.observer.SelectedText(ctx, s.cfg.SelectionTimeout)

	candidate := &entity.EnrichedContext{
		App:         app,
		Window:      window,
		AppCategory: classifyApp(app),
		Selection:   selection,
		CapturedAt:  time.Now(),
	}

	var fromSelection, fromTitle, fromFileName entity.DocumentType
	fromSelection = entity.DocumentTypeUnknown
	fromTitle = entity.DocumentTypeUnknown
	fromFileName = entity.DocumentTypeUnknown

	if selection != nil {
		fromSelection = s.analyzer.DetectDocumentType(selection.Content)
		candidate.LegalTerms = s.analyzer.ExtractLegalTerms(selection.Content)
		candidate.RiskIndicators = s.analyzer.DetectRiskIndicators(selection.Content)
		candidate.Entities = s.analyzer.ExtractEntities(selection.Content)
	}
	if window != nil {
		fromTitle = s.analyzer.DetectDocumentTypeFromFileName(window.Title)
		if window.DocumentPath != "" {
			fromFileName = s.analyzer.DetectDocumentTypeFromFileName(window.DocumentPath)
		}
	}

	switch {
	case fromSelection != entity.DocumentTypeUnknown:
		candidate.DocumentType = fromSelection
	case fromTitle != entity.DocumentTypeUnknown:
		candidate.DocumentType = fromTitle
	case fromFileName != entity.DocumentTypeUnknown:
		candidate.DocumentType = fromFileName
	default:
		candidate.DocumentType = entity.DocumentTypeUnknown
	}

	candidate.Confidence = scoreConfidence(candidate, fromSelection, fromTitle, fromFileName)
	return candidate
}

// scoreConfidence implements the evidence-strength ordering: a file-name
// match contributes less than a window-title match, which contributes less
// than a substantial selection, which contributes less than a selection with
// legal-term hits. Always in [0,1].
func scoreConfidence(c *entity.EnrichedContext, fromSelection, fromTitle, fromFileName entity.DocumentType) float64 {
	confidence := 0.1 // app identity is known

	if fromFileName != entity.DocumentTypeUnknown {
		confidence += 0.1
	}
	if fromTitle != entity.DocumentTypeUnknown {
		confidence += 0.15
	}
	if c.Selection != nil && c.Selection.WordCount >= 25 {
		confidence += 0.25
	}
	if fromSelection != entity.DocumentTypeUnknown {
		confidence += 0.15
	}
	if len(c.LegalTerms) > 0 {
		confidence += 0.25
	}

	if confidence > 1 {
		return 1
	}
	return confidence
}

func classifyApp(app *entity.AppIdentity) entity.AppCategory {
	if app == nil {
		return entity.AppCategoryUnknown
	}
	if category, ok := constant.AppCategoryByBundleId[app.BundleId]; ok {
		return category
	}
	return entity.AppCategoryUnknown
}

// significant decides whether the candidate differs enough from the current
// snapshot to publish. Sub-threshold selection drift is deliberately ignored.
func (s *contextService) significant(current, candidate *entity.EnrichedContext) bool {
	if current == nil {
		return true
	}
	if current.App.BundleId != candidate.App.BundleId || current.App.Name != candidate.App.Name {
		return true
	}
	if windowTitle(current.Window) != windowTitle(candidate.Window) {
		return true
	}
	if current.DocumentType != candidate.DocumentType {
		return true
	}
	delta := candidate.SelectionLength() - current.SelectionLength()
	if delta < 0 {
		delta = -delta
	}
	return delta > s.cfg.SelectionDelta
}

func windowTitle(w *entity.WindowInfo) string {
	if w == nil {
		return ""
	}
	return w.Title
}

// deriveSuggestedTools unions the document type's static list with up to 2
// tools from each of the top-2 app-category suggestions, forces the risk
// tool to the front when risk indicators are present, dedupes, and caps.
func (s *contextService) deriveSuggestedTools(ctx context.Context, c *entity.EnrichedContext) []entity.Tool {
	ids := append([]string(nil), constant.SuggestedToolsByDocumentType[c.DocumentType]...)

	categories := constant.ToolCategoriesByAppCategory[c.AppCategory]
	if len(categories) > 2 {
		categories = categories[:2]
	}
	for _, category := range categories {
		tools := s.catalog.FetchToolsByCategory(ctx, category)
		if len(tools) > 2 {
			tools = tools[:2]
		}
		for _, tool := range tools {
			ids = append(ids, tool.Id)
		}
	}

	if c.HasRisk() {
		ids = append([]string{constant.RiskAnalysisToolId}, ids...)
	}

	seen := make(map[string]bool)
	var result []entity.Tool
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if tool := s.catalog.ToolById(ctx, id); tool != nil {
			result = append(result, *tool)
		}
		if len(result) == s.cfg.MaxSuggestedTools {
			break
		}
	}
	return result
}

func (s *contextService) deriveQuickActions(c *entity.EnrichedContext) []entity.QuickAction {
	actions := append([]entity.QuickAction(nil), constant.QuickActionsByDocumentType[c.DocumentType]...)

	if c.HasRisk() {
		present := false
		for _, action := range actions {
			if action.ToolId == constant.RiskQuickAction.ToolId {
				present = true
				break
			}
		}
		if !present {
			actions = append([]entity.QuickAction{constant.RiskQuickAction}, actions...)
		}
	}

	if len(actions) > s.cfg.MaxQuickActions {
		actions = actions[:s.cfg.MaxQuickActions]
	}
	return actions
}

func (s *contextService) publishChange(ctx context.Context, c *entity.EnrichedContext, tools []entity.Tool, actions []entity.QuickAction) {
	toolIds := make([]string, 0, len(tools))
	for _, tool := range tools {
		toolIds = append(toolIds, tool.Id)
	}

	event := dto.ContextChangedEvent{
		AppName:         c.App.Name,
		AppBundleId:     c.App.BundleId,
		WindowTitle:     windowTitle(c.Window),
		DocumentType:    c.DocumentType,
		SelectionLength: c.SelectionLength(),
		RiskCount:       len(c.RiskIndicators),
		Confidence:      c.Confidence,
		SuggestedTools:  toolIds,
		QuickActions:    actions,
		CapturedAt:      c.CapturedAt,
	}
	if err := s.publisher.Publish(constant.TopicContextChanged, event); err != nil {
		s.logger.Warn("ContextService", "Failed to publish context change", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if s.sync != nil {
		usage := dto.UsageLog{
			Event:      "context_changed",
			Detail:     string(c.DocumentType),
			OccurredAt: c.CapturedAt,
		}
		if err := s.sync.Enqueue(ctx, entity.OperationUsageLog, usage, 0); err != nil {
			s.logger.Warn("ContextService", "Failed to enqueue usage log", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (s *contextService) Current() *entity.EnrichedContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *contextService) SuggestedTools() []entity.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Tool(nil), s.suggestedTools...)
}

func (s *contextService) QuickActions() []entity.QuickAction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.QuickAction(nil), s.quickActions...)
}

// debouncer delays its callback until a burst of triggers settles.
type debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	fn       func()
	stopped  bool
}

func newDebouncer(interval time.Duration, fn func()) *debouncer {
	return &debouncer{interval: interval, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
