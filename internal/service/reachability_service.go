package service

import (
	"context"
	"net"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"ai-legalassist-core/internal/constant"
	"ai-legalassist-core/internal/dto"
	"ai-legalassist-core/internal/pkg/logger"
)

// IReachabilityService probes backend connectivity and publishes a
// NetworkStatusEvent on every online/offline transition.
type IReachabilityService interface {
	Start(ctx context.Context)
	Stop()
	IsOnline() bool
}

// Prober checks whether the backend is reachable right now.
type Prober interface {
	Probe(ctx context.Context) bool
}

// DialProber does a plain TCP dial against the backend host. Cheap enough
// to run every few seconds and independent of backend handler health.
type DialProber struct {
	Address string
	Timeout time.Duration
}

// NewDialProber derives the dial address from the backend base URL.
func NewDialProber(baseURL string, timeout time.Duration) *DialProber {
	address := baseURL
	if parsed, err := url.Parse(baseURL); err == nil && parsed.Host != "" {
		address = parsed.Host
		if parsed.Port() == "" {
			switch parsed.Scheme {
			case "https":
				address = net.JoinHostPort(parsed.Hostname(), "443")
			default:
				address = net.JoinHostPort(parsed.Hostname(), "80")
			}
		}
	}
	return &DialProber{Address: address, Timeout: timeout}
}

func (p *DialProber) Probe(ctx context.Context) bool {
	dialer := net.Dialer{Timeout: p.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

type reachabilityService struct {
	prober    Prober
	publisher IPublisherService
	interval  time.Duration
	logger    logger.ILogger

	online atomic.Bool

	runMu   sync.Mutex
	running bool
	cancel  context.CancelFunc
}

func NewReachabilityService(prober Prober, publisher IPublisherService, interval time.Duration, log logger.ILogger) IReachabilityService {
	return &reachabilityService{
		prober:    prober,
		publisher: publisher,
		interval:  interval,
		logger:    log,
	}
}

func (s *reachabilityService) Start(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.running {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	go s.monitor(runCtx)
}

func (s *reachabilityService) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	s.running = false
}

func (s *reachabilityService) IsOnline() bool {
	return s.online.Load()
}

func (s *reachabilityService) monitor(ctx context.Context) {
	// Probe immediately so the initial state is real, then on the interval.
	s.check(ctx, true)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx, false)
		}
	}
}

func (s *reachabilityService) check(ctx context.Context, initial bool) {
	online := s.prober.Probe(ctx)
	previous := s.online.Swap(online)
	if !initial && online == previous {
		return
	}

	s.logger.Info("ReachabilityService", "Connectivity changed", map[string]interface{}{
		"online": online,
	})
	event := dto.NetworkStatusEvent{Online: online, ChangedAt: time.Now()}
	if err := s.publisher.Publish(constant.TopicNetworkStatus, event); err != nil {
		s.logger.Warn("ReachabilityService", "Failed to publish network status", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
