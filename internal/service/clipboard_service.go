package service

import (
	"context"
	"sync"
	"time"

	"ai-legalassist-core/internal/constant"
	"ai-legalassist-core/internal/dto"
	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/pkg/logger"
	"ai-legalassist-core/internal/platform"
)

// IClipboardService polls the system clipboard on a fixed interval and keeps
// a bounded history of observed items. Every fresh change is published;
// consecutive identical text entries are deduplicated and emit nothing.
type IClipboardService interface {
	Start(ctx context.Context)
	Stop()
	Current() *entity.ClipboardItem
	History() []*entity.ClipboardItem
	// AnalyzeCurrent runs the document analyzer over the current clipboard
	// text. Returns nil when the clipboard holds no text.
	AnalyzeCurrent(maxSentences int) *entity.TextAnalysis
}

type clipboardService struct {
	accessor     platform.ClipboardAccessor
	analyzer     IAnalyzerService
	publisher    IPublisherService
	pollInterval time.Duration
	historyCap   int
	logger       logger.ILogger

	mu          sync.RWMutex
	history     []*entity.ClipboardItem
	lastCount   int
	lastCountOk bool

	startOnce sync.Once
	cancel    context.CancelFunc
}

func NewClipboardService(
	accessor platform.ClipboardAccessor,
	analyzer IAnalyzerService,
	publisher IPublisherService,
	pollInterval time.Duration,
	historyCap int,
	log logger.ILogger,
) IClipboardService {
	return &clipboardService{
		accessor:     accessor,
		analyzer:     analyzer,
		publisher:    publisher,
		pollInterval: pollInterval,
		historyCap:   historyCap,
		logger:       log,
	}
}

// Start launches the polling loop. Starting twice is a no-op.
func (s *clipboardService) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		ctx, s.cancel = context.WithCancel(ctx)
		go s.poll(ctx)
		s.logger.Info("ClipboardService", "Clipboard polling started", map[string]interface{}{
			"interval": s.pollInterval.String(),
		})
	})
}

func (s *clipboardService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *clipboardService) poll(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *clipboardService) tick() {
	count, err := s.accessor.ChangeCount()
	if err != nil {
		// Soft failure: clipboard unavailable this tick.
		return
	}

	s.mu.Lock()
	unchanged := s.lastCountOk && count == s.lastCount
	s.lastCount = count
	s.lastCountOk = true
	s.mu.Unlock()
	if unchanged {
		return
	}

	item, err := s.accessor.Read()
	if err != nil || item == nil {
		return
	}
	s.append(item)
}

func (s *clipboardService) append(item *entity.ClipboardItem) {
	s.mu.Lock()
	if last := s.latestLocked(); last != nil &&
		isTextual(item) && isTextual(last) && last.Text == item.Text {
		s.mu.Unlock()
		return
	}

	s.history = append(s.history, item)
	if len(s.history) > s.historyCap {
		s.history = s.history[len(s.history)-s.historyCap:]
	}
	s.mu.Unlock()

	// Every fresh change is announced, whatever its content type; only
	// duplicates are silent.
	event := dtoClipboardEvent(item)
	if err := s.publisher.Publish(constant.TopicClipboardChanged, event); err != nil {
		s.logger.Warn("ClipboardService", "Failed to publish clipboard event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func isTextual(item *entity.ClipboardItem) bool {
	return item.ContentType == entity.ClipboardContentText ||
		item.ContentType == entity.ClipboardContentRichText
}

func dtoClipboardEvent(item *entity.ClipboardItem) dto.ClipboardChangedEvent {
	preview := item.Text
	if len(preview) > 80 {
		preview = preview[:80]
	}
	return dto.ClipboardChangedEvent{
		ContentType: item.ContentType,
		Preview:     preview,
		CapturedAt:  item.CapturedAt,
	}
}

func (s *clipboardService) latestLocked() *entity.ClipboardItem {
	if len(s.history) == 0 {
		return nil
	}
	return s.history[len(s.history)-1]
}

func (s *clipboardService) Current() *entity.ClipboardItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestLocked()
}

func (s *clipboardService) History() []*entity.ClipboardItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.ClipboardItem, len(s.history))
	copy(out, s.history)
	return out
}

func (s *clipboardService) AnalyzeCurrent(maxSentences int) *entity.TextAnalysis {
	current := s.Current()
	if current == nil || !isTextual(current) || current.Text == "" {
		return nil
	}
	return s.analyzer.Analyze(current.Text, maxSentences)
}
