package service

import (
	"context"
	"strings"
	"time"

	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/pkg/logger"
	"ai-legalassist-core/internal/platform"
)

// IObserverService reads the active application, window, and text selection.
// Every query is timeout-bounded and permission-gated: a timeout or a missing
// permission yields nil, never an error surfaced to the detection loop.
type IObserverService interface {
	PermissionGranted() bool
	RequestPermission() bool
	ActiveApplication(ctx context.Context) *entity.AppIdentity
	ActiveWindow(ctx context.Context) *entity.WindowInfo
	SelectedText(ctx context.Context, timeout time.Duration) *entity.TextSelection
	FullText(ctx context.Context, timeout time.Duration) *string
}

type observerService struct {
	accessor       platform.SystemAccessor
	defaultTimeout time.Duration
	logger         logger.ILogger
}

func NewObserverService(accessor platform.SystemAccessor, defaultTimeout time.Duration, log logger.ILogger) IObserverService {
	return &observerService{
		accessor:       accessor,
		defaultTimeout: defaultTimeout,
		logger:         log,
	}
}

func (s *observerService) PermissionGranted() bool {
	return s.accessor.PermissionGranted()
}

func (s *observerService) RequestPermission() bool {
	return s.accessor.RequestPermission()
}

func (s *observerService) ActiveApplication(ctx context.Context) *entity.AppIdentity {
	if !s.accessor.PermissionGranted() {
		return nil
	}
	return timeoutBounded(ctx, s.defaultTimeout, s.accessor.FrontmostApplication)
}

func (s *observerService) ActiveWindow(ctx context.Context) *entity.WindowInfo {
	if !s.accessor.PermissionGranted() {
		return nil
	}
	return timeoutBounded(ctx, s.defaultTimeout, s.accessor.FrontmostWindow)
}

func (s *observerService) SelectedText(ctx context.Context, timeout time.Duration) *entity.TextSelection {
	if !s.accessor.PermissionGranted() {
		return nil
	}
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}
	text := timeoutBounded(ctx, timeout, func() (*string, error) {
		raw, err := s.accessor.SelectedText()
		if err != nil || raw == "" {
			return nil, err
		}
		return &raw, nil
	})
	if text == nil {
		return nil
	}

	selection := &entity.TextSelection{
		Content:    *text,
		WordCount:  len(strings.Fields(*text)),
		CapturedAt: time.Now(),
	}
	selection.App = s.ActiveApplication(ctx)
	selection.Window = s.ActiveWindow(ctx)
	return selection
}

func (s *observerService) FullText(ctx context.Context, timeout time.Duration) *string {
	if !s.accessor.PermissionGranted() {
		return nil
	}
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}
	return timeoutBounded(ctx, timeout, func() (*string, error) {
		raw, err := s.accessor.FullText()
		if err != nil || raw == "" {
			return nil, err
		}
		return &raw, nil
	})
}

// timeoutBounded runs an accessor call off the calling goroutine and gives
// up after the timeout. The underlying OS call is synchronous and can block
// for unbounded time when the target application is unresponsive; an
// abandoned call finishes on its own goroutine and its result is dropped.
func timeoutBounded[T any](ctx context.Context, timeout time.Duration, fn func() (*T, error)) *T {
	type result struct {
		value *T
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		value, err := fn()
		resultCh <- result{value: value, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return nil
		}
		return res.value
	case <-time.After(timeout):
		return nil
	case <-ctx.Done():
		return nil
	}
}
