package notification

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/chatapp/backend/internal/domain/events"
	"github.com/chatapp/backend/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepository 简单的内存仓储桩
type stubRepository struct {
	mu      sync.Mutex
	records []*notification.DeliveryRecord
	err     error
}

func (r *stubRepository) Save(_ context.Context, record *notification.DeliveryRecord) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *stubRepository) FindRecent(_ context.Context, limit int) ([]*notification.DeliveryRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]*notification.DeliveryRecord(nil), r.records...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func dispatchEvent(id string, err error, at time.Time) *events.DispatchEvent {
	e := &events.DispatchEvent{
		Notification: &notification.Notification{ID: id, Token: "abc123", Title: "Hi", Body: "Hello", CreatedAt: at},
		TokenHash:    "sha256:0123456789ab",
		Provider:     "fake",
		Err:          err,
		Latency:      15 * time.Millisecond,
		EventTime:    at,
	}
	if err == nil {
		e.Receipt = &notification.Receipt{MessageID: "msg-" + id}
	}
	return e
}

func TestDeliveryService_HandleEvent(t *testing.T) {
	repo := &stubRepository{}
	svc := NewDeliveryService(repo, notification.NewService())

	require.NoError(t, svc.HandleEvent(dispatchEvent("n-1", nil, time.Now())))
	require.NoError(t, svc.HandleEvent(dispatchEvent("n-2", errors.New("unavailable"), time.Now())))

	require.Len(t, repo.records, 2)
	assert.Equal(t, notification.StatusDelivered, repo.records[0].Status)
	assert.Equal(t, "msg-n-1", repo.records[0].MessageID)
	assert.Equal(t, int64(15), repo.records[0].LatencyMs)
	assert.Equal(t, notification.StatusFailed, repo.records[1].Status)
	assert.Equal(t, "unavailable", repo.records[1].Error)
}

func TestDeliveryService_HandleEvent_RepositoryError(t *testing.T) {
	repo := &stubRepository{err: errors.New("disk full")}
	svc := NewDeliveryService(repo, notification.NewService())

	err := svc.HandleEvent(dispatchEvent("n-1", nil, time.Now()))
	assert.ErrorContains(t, err, "disk full")
}

func TestDeliveryService_ListRecent(t *testing.T) {
	repo := &stubRepository{}
	svc := NewDeliveryService(repo, notification.NewService())

	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, svc.HandleEvent(dispatchEvent(id, nil, base.Add(time.Duration(i)*time.Second))))
	}

	list, err := svc.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID, "最新记录在前")
	assert.Equal(t, "delivered", list[0].Status)

	list, err = svc.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListRecent(context.Background(), MaxDeliveryLimit+1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
	_, err = svc.ListRecent(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
