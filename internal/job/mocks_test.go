package job

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// testLogger returns a logger that discards output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// logBuffer is a thread-safe buffer for capturing log output in tests.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// countLines returns the number of log lines containing substr.
func (b *logBuffer) countLines(substr string) int {
	count := 0
	for _, line := range strings.Split(b.String(), "\n") {
		if strings.Contains(line, substr) {
			count++
		}
	}
	return count
}

// capturingLogger returns a debug-level JSON logger writing into a
// fresh logBuffer.
func capturingLogger() (*logBuffer, *slog.Logger) {
	buf := &logBuffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return buf, logger
}

// fakeScope implements Scope and records whether it was closed.
type fakeScope struct {
	mu       sync.Mutex
	closed   bool
	closeErr error
}

func (s *fakeScope) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.closeErr
}

func (s *fakeScope) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fakeScopeFactory implements ScopeFactory, handing out fakeScopes and
// counting how many were created.
type fakeScopeFactory struct {
	mu      sync.Mutex
	scopes  []*fakeScope
	failErr error
}

func (f *fakeScopeFactory) NewScope(ctx context.Context) (Scope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	scope := &fakeScope{}
	f.scopes = append(f.scopes, scope)
	return scope, nil
}

func (f *fakeScopeFactory) created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scopes)
}

func (f *fakeScopeFactory) allClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, scope := range f.scopes {
		if !scope.isClosed() {
			return false
		}
	}
	return true
}

// newRegistryWith returns a registry with a single HandlerFunc bound to
// the given kind.
func newRegistryWith(kind string, fn HandlerFunc) *Registry {
	registry := NewRegistry()
	registry.Register(kind, fn)
	return registry
}

// mustNotificationPayload builds a valid notification payload or panics.
// Test-only helper; construction is exercised separately in payload tests.
func mustNotificationPayload(target string, kind NotificationKind, params Params) NotificationPayload {
	payload, err := NewNotificationPayload(target, kind, params)
	if err != nil {
		panic(err)
	}
	return payload
}

func mustMessagePayload(target string, kind MessageKind, params Params) MessagePayload {
	payload, err := NewMessagePayload(target, kind, params)
	if err != nil {
		panic(err)
	}
	return payload
}
