package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessorFaultIsolation(t *testing.T) {
	t.Parallel()

	buf, logger := capturingLogger()
	factory := &fakeScopeFactory{}

	executed := make(chan string, 2)
	registry := NewRegistry()
	registry.Register(string(KindMemoryShared), HandlerFunc(
		func(ctx context.Context, target string, data TemplateData, scope Scope) error {
			executed <- target
			if target == "user-bad" {
				return errors.New("delivery backend unavailable")
			}
			return nil
		},
	))

	lane := NewLane[NotificationPayload]("notifications", 10, testLogger())
	processor := NewProcessor(lane, factory, registry, logger)

	ctx := context.Background()
	require.NoError(t, lane.Enqueue(ctx, mustNotificationPayload("user-bad", KindMemoryShared, nil)))
	require.NoError(t, lane.Enqueue(ctx, mustNotificationPayload("user-ok", KindMemoryShared, nil)))

	processor.Start()

	for _, want := range []string{"user-bad", "user-ok"} {
		select {
		case got := <-executed:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for job %q to execute", want)
		}
	}

	processor.Stop()

	// The failing job produced exactly one logged failure and did not
	// stop the loop from processing the next job.
	assert.Equal(t, 1, buf.countLines("job execution failed"))
	assert.Equal(t, 2, factory.created(), "each job gets its own scope")
	assert.True(t, factory.allClosed(), "every scope is closed after its job")
}

func TestProcessorMisconfiguredKind(t *testing.T) {
	t.Parallel()

	buf, logger := capturingLogger()
	factory := &fakeScopeFactory{}

	executed := make(chan struct{}, 1)
	registry := newRegistryWith(string(KindCommentAdded), HandlerFunc(
		func(ctx context.Context, target string, data TemplateData, scope Scope) error {
			executed <- struct{}{}
			return nil
		},
	))

	lane := NewLane[NotificationPayload]("notifications", 10, testLogger())
	processor := NewProcessor(lane, factory, registry, logger)

	ctx := context.Background()
	// No handler registered for memory_shared: logged, discarded, loop continues.
	require.NoError(t, lane.Enqueue(ctx, mustNotificationPayload("user-1", KindMemoryShared, nil)))
	require.NoError(t, lane.Enqueue(ctx, mustNotificationPayload("user-2", KindCommentAdded, nil)))

	processor.Start()

	select {
	case <-executed:
	case <-time.After(time.Second):
		t.Fatal("job after the misconfigured one was not processed")
	}

	processor.Stop()

	assert.Equal(t, 1, buf.countLines("job discarded"))
	assert.True(t, factory.allClosed())
}

func TestProcessorScopeFactoryFailure(t *testing.T) {
	t.Parallel()

	buf, logger := capturingLogger()
	factory := &fakeScopeFactory{failErr: errors.New("pool exhausted")}
	registry := newRegistryWith(string(KindMemoryShared), HandlerFunc(
		func(ctx context.Context, target string, data TemplateData, scope Scope) error {
			t.Error("handler must not run without a scope")
			return nil
		},
	))

	lane := NewLane[NotificationPayload]("notifications", 10, testLogger())
	processor := NewProcessor(lane, factory, registry, logger)

	require.NoError(
		t,
		lane.Enqueue(context.Background(), mustNotificationPayload("user-1", KindMemoryShared, nil)),
	)

	processor.Start()

	require.Eventually(t, func() bool {
		return buf.countLines("failed to open job scope") == 1
	}, time.Second, 10*time.Millisecond)

	processor.Stop()
}

func TestProcessorGracefulShutdown(t *testing.T) {
	t.Parallel()

	factory := &fakeScopeFactory{}

	started := make(chan struct{})
	release := make(chan struct{})
	var completed atomic.Int32
	var startedCount atomic.Int32

	registry := newRegistryWith(string(KindMemoryShared), HandlerFunc(
		func(ctx context.Context, target string, data TemplateData, scope Scope) error {
			startedCount.Add(1)
			close(started)
			<-release
			completed.Add(1)
			return nil
		},
	))

	lane := NewLane[NotificationPayload]("notifications", 10, testLogger())
	processor := NewProcessor(lane, factory, registry, testLogger())

	ctx := context.Background()
	require.NoError(t, lane.Enqueue(ctx, mustNotificationPayload("user-slow", KindMemoryShared, nil)))
	// A second job sits behind the slow one; it must never start once
	// shutdown has been signalled.
	require.NoError(t, lane.Enqueue(ctx, mustNotificationPayload("user-next", KindMemoryShared, nil)))

	processor.Start()

	// Wait until the slow job is executing, then signal shutdown while
	// it is still in flight.
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("slow job never started")
	}

	stopped := make(chan struct{})
	go func() {
		processor.Stop()
		close(stopped)
	}()

	// Stop must wait for the in-flight job rather than abandoning it.
	select {
	case <-stopped:
		t.Fatal("processor stopped while a job was still executing")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("processor did not stop after the in-flight job completed")
	}

	assert.Equal(t, int32(1), completed.Load(), "in-flight job ran to completion")
	assert.Equal(t, int32(1), startedCount.Load(), "no job started after cancellation")
	assert.Equal(t, 1, lane.Len(), "the queued job behind the slow one stayed buffered")
	assert.True(t, factory.allClosed())
}

func TestExecuteAdaptsParams(t *testing.T) {
	t.Parallel()

	factory := &fakeScopeFactory{}
	var got TemplateData
	done := make(chan struct{})
	registry := newRegistryWith(string(KindWelcomeEmail), HandlerFunc(
		func(ctx context.Context, target string, data TemplateData, scope Scope) error {
			got = data
			close(done)
			return nil
		},
	))

	payload := mustMessagePayload(
		"ada@example.com",
		KindWelcomeEmail,
		Params{}.With("display_name", "Ada").With("memories", 7),
	)

	Execute(context.Background(), factory, registry, testLogger(), payload)

	<-done
	assert.Equal(t, TemplateData{"display_name": "Ada", "memories": 7}, got)
}
