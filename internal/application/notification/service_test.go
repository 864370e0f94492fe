package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chatapp/backend/internal/domain/events"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/chatapp/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider 记录调用并返回预设结果
type fakeProvider struct {
	mu    sync.Mutex
	calls []notification.Notification
	err   error
	delay time.Duration
	panic bool
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Send(ctx context.Context, n *notification.Notification) (*notification.Receipt, error) {
	p.mu.Lock()
	p.calls = append(p.calls, *n)
	p.mu.Unlock()

	if p.panic {
		panic("provider exploded")
	}
	if p.delay > 0 {
		// 故意不理会 ctx，模拟不配合取消的推送服务
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return nil, p.err
	}
	return &notification.Receipt{MessageID: "msg-" + n.ID, Provider: "fake", SentAt: time.Now()}, nil
}

func (p *fakeProvider) Calls() []notification.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notification.Notification(nil), p.calls...)
}

// recordingBus 同步记录发布的事件
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Subscribe(events.EventType, events.Handler) func() { return func() {} }

func (b *recordingBus) Publish(event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Close() {}

func (b *recordingBus) Dispatches() []*events.DispatchEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*events.DispatchEvent
	for _, e := range b.events {
		if d, ok := e.(*events.DispatchEvent); ok {
			out = append(out, d)
		}
	}
	return out
}

func newTestService(p *fakeProvider, timeout time.Duration) (*Service, *recordingBus) {
	bus := &recordingBus{}
	svc := NewService(notification.NewService(), p, bus, &config.PushConfig{Provider: "log", Timeout: timeout})
	return svc, bus
}

func TestService_Send_Success(t *testing.T) {
	p := &fakeProvider{}
	svc, bus := newTestService(p, time.Second)

	result, err := svc.Send(context.Background(), &SendNotificationDTO{Token: "abc123", Title: "Hi", Body: "Hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "msg-"+result.ID, result.MessageID)
	assert.Equal(t, "fake", result.Provider)

	calls := p.Calls()
	require.Len(t, calls, 1, "推送服务应恰好被调用一次")
	assert.Equal(t, "abc123", calls[0].Token)
	assert.Equal(t, "Hi", calls[0].Title)
	assert.Equal(t, "Hello", calls[0].Body)

	dispatches := bus.Dispatches()
	require.Len(t, dispatches, 1)
	assert.NoError(t, dispatches[0].Err)
	assert.NotContains(t, dispatches[0].TokenHash, "abc123")
	assert.Equal(t, result.ID, dispatches[0].Notification.ID)
}

func TestService_Send_Validation(t *testing.T) {
	tests := []struct {
		name string
		dto  SendNotificationDTO
	}{
		{"缺少 token", SendNotificationDTO{Title: "Hi", Body: "Hello"}},
		{"缺少 title", SendNotificationDTO{Token: "abc123", Body: "Hello"}},
		{"缺少 body", SendNotificationDTO{Token: "abc123", Title: "Hi"}},
		{"全部为空", SendNotificationDTO{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{}
			svc, bus := newTestService(p, time.Second)

			_, err := svc.Send(context.Background(), &tt.dto)
			require.Error(t, err)
			assert.ErrorIs(t, err, notification.ErrMissingFields)
			assert.Empty(t, p.Calls(), "校验失败时不应调用推送服务")
			assert.Empty(t, bus.Dispatches(), "校验失败不产生投递记录")
		})
	}
}

func TestService_Send_ProviderFailure(t *testing.T) {
	cause := errors.New("connection refused")
	p := &fakeProvider{err: cause}
	svc, bus := newTestService(p, time.Second)

	_, err := svc.Send(context.Background(), &SendNotificationDTO{Token: "abc123", Title: "Hi", Body: "Hello"})
	require.Error(t, err)

	var dErr *notification.DeliveryError
	require.True(t, errors.As(err, &dErr))
	assert.Equal(t, "fake", dErr.Provider)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, p.Calls(), 1, "失败不重试")

	dispatches := bus.Dispatches()
	require.Len(t, dispatches, 1)
	assert.Error(t, dispatches[0].Err)
}

func TestService_Send_Timeout(t *testing.T) {
	p := &fakeProvider{delay: 500 * time.Millisecond}
	svc, _ := newTestService(p, 20*time.Millisecond)

	start := time.Now()
	_, err := svc.Send(context.Background(), &SendNotificationDTO{Token: "abc123", Title: "Hi", Body: "Hello"})
	elapsed := time.Since(start)

	require.Error(t, err)
	var dErr *notification.DeliveryError
	assert.True(t, errors.As(err, &dErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 400*time.Millisecond, "超时后应立即返回")
}

func TestService_Send_ProviderPanic(t *testing.T) {
	p := &fakeProvider{panic: true}
	svc, _ := newTestService(p, time.Second)

	var err error
	assert.NotPanics(t, func() {
		_, err = svc.Send(context.Background(), &SendNotificationDTO{Token: "abc123", Title: "Hi", Body: "Hello"})
	})

	var dErr *notification.DeliveryError
	require.True(t, errors.As(err, &dErr))
	assert.Contains(t, err.Error(), "panicked")
}

func TestService_Send_NoDeduplication(t *testing.T) {
	p := &fakeProvider{}
	svc, bus := newTestService(p, time.Second)
	dto := &SendNotificationDTO{Token: "abc123", Title: "Hi", Body: "Hello"}

	first, err := svc.Send(context.Background(), dto)
	require.NoError(t, err)
	second, err := svc.Send(context.Background(), dto)
	require.NoError(t, err)

	assert.Len(t, p.Calls(), 2, "相同请求应产生两次独立投递")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, bus.Dispatches(), 2)
}

func TestService_Send_Concurrent(t *testing.T) {
	p := &fakeProvider{delay: 20 * time.Millisecond}
	svc, _ := newTestService(p, time.Second)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	start := time.Now()
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Send(context.Background(), &SendNotificationDTO{Token: "abc123", Title: "Hi", Body: "Hello"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, p.Calls(), n)
	assert.Less(t, time.Since(start), time.Duration(n)*20*time.Millisecond, "请求之间不应互相阻塞")
}
