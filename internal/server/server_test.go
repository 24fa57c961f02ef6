package server

import (
	"io"
	"testing"
	"time"

	"github.com/agbru/fibmod/internal/config"
	apperrors "github.com/agbru/fibmod/internal/errors"
	"github.com/agbru/fibmod/internal/fibmod"
	"github.com/agbru/fibmod/internal/logging"
)

func TestServer_StartAndGracefulShutdown(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})
	t.Cleanup(rl.Stop)

	// Port 0 lets the kernel pick a free port; the test only exercises the
	// start/shutdown lifecycle, not the listener address.
	cfg := config.AppConfig{Port: "0", Timeout: 5 * time.Second}
	s := NewServer(fibmod.NewRegistry(), cfg,
		WithLogger(logging.NewLogger(io.Discard, "test")),
		WithRateLimiter(rl))

	done := make(chan int, 1)
	go func() { done <- s.Start() }()

	// Give ListenAndServe a moment to bind before signaling shutdown.
	time.Sleep(100 * time.Millisecond)
	s.Shutdown()

	select {
	case code := <-done:
		if code != apperrors.ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}

	// Start owns the rate limiter's lifecycle: its cleanup goroutine must be
	// stopped once Start returns, not leaked.
	select {
	case <-rl.stopChan:
	default:
		t.Error("rate limiter not stopped after Start returned")
	}
}

func TestNewServer_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})
	t.Cleanup(rl.Stop)

	cfg := config.AppConfig{Port: "8080", Timeout: time.Second}
	s := NewServer(fibmod.NewRegistry(), cfg, WithRateLimiter(rl))

	if s.httpServer.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", s.httpServer.Addr)
	}
	if s.securityConfig.MaxParamLen != DefaultSecurityConfig().MaxParamLen {
		t.Errorf("security config not defaulted: %+v", s.securityConfig)
	}
	if s.timeouts != DefaultServerTimeouts() {
		t.Errorf("timeouts not defaulted: %+v", s.timeouts)
	}
	if s.logger == nil {
		t.Error("logger should have a default")
	}
}
