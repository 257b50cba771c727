package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"signalhub/internal/consts"
	"signalhub/internal/model"
	"signalhub/internal/model/entity"
	"signalhub/internal/service"
)

// 内存版的信号/交易员存储，带调用计数
type fakeStore struct {
	mu      sync.Mutex
	signals []entity.Signal
	loads   int
	delay   time.Duration
}

func (f *fakeStore) SignalCreate(ctx context.Context, signal *entity.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signals = append(f.signals, *signal)
	return nil
}

func (f *fakeStore) SignalGetPage(ctx context.Context, traderID, signalType string, page, pageSize int) ([]model.Signal, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) SignalGetAllByTrader(ctx context.Context, traderID string) ([]entity.Signal, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	out := make([]entity.Signal, len(f.signals))
	copy(out, f.signals)
	return out, nil
}

func (f *fakeStore) SignalCountByTrader(ctx context.Context, traderID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.signals)), nil
}

func (f *fakeStore) TraderGetByID(ctx context.Context, id string) (*entity.Trader, error) {
	return &entity.Trader{ID: id}, nil
}

func (f *fakeStore) TraderUpdateStats(ctx context.Context, id string, stats model.TraderStats) error {
	return nil
}

func (f *fakeStore) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

func newTestCache(store *fakeStore, interval time.Duration) *TraderCache {
	stats := service.NewStatsService(store, store, nil, time.Minute)
	return NewTraderCache("t1", store, stats, interval)
}

func TestRefreshPopulatesSnapshot(t *testing.T) {
	store := &fakeStore{signals: []entity.Signal{
		{TraderID: "t1", Pair: "BTC/USDT", Direction: consts.DirectionLong, EntryPrice: "45000", StopLoss: "44000", SignalType: consts.SignalTypeCurrent, CreatedAt: time.Now()},
	}}
	c := newTestCache(store, time.Hour)

	if _, ok := c.Snapshot(); ok {
		t.Fatal("snapshot must be empty before the first refresh")
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	agg, ok := c.Snapshot()
	if !ok || len(agg.Signals) != 1 {
		t.Fatalf("expected 1 signal in the snapshot, got %+v", agg)
	}
	if agg.Stats.TotalSignals != 1 || agg.Stats.CurrentCount != 1 {
		t.Fatalf("unexpected stats: %+v", agg.Stats)
	}
}

func TestStartSchedulesPeriodicRefresh(t *testing.T) {
	store := &fakeStore{}
	c := newTestCache(store, 30*time.Millisecond)
	defer c.Stop()

	c.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if store.loadCount() >= 3 { // 初始一次 + 至少两次定时刷新
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected periodic refreshes, got %d loads", store.loadCount())
}

func TestStopPreventsFurtherMutation(t *testing.T) {
	store := &fakeStore{}
	c := newTestCache(store, time.Hour)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	before, _ := c.Snapshot()

	c.Stop()
	if err := c.Refresh(context.Background()); err != ErrStopped {
		t.Fatalf("refresh after stop must return ErrStopped, got %v", err)
	}
	after, _ := c.Snapshot()
	if before != after {
		t.Fatal("snapshot must not change after stop")
	}
}

func TestStopDiscardsInFlightResult(t *testing.T) {
	store := &fakeStore{delay: 100 * time.Millisecond}
	c := newTestCache(store, time.Hour)

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()

	// 让拉取先开始，再Stop
	time.Sleep(20 * time.Millisecond)
	c.Stop()

	if err := <-done; err != ErrStopped {
		t.Fatalf("in-flight refresh must be discarded after stop, got %v", err)
	}
	if _, ok := c.Snapshot(); ok {
		t.Fatal("discarded result must not populate the snapshot")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	c := newTestCache(store, time.Hour)
	c.Stop()
	c.Stop() // 二次Stop不应panic
}
