package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/phone_price_api/internal/catalog"
	"github.com/GTDGit/phone_price_api/internal/models"
)

type countingWarmer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (w *countingWarmer) Warm(context.Context) ([]models.Shop, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	return []models.Shop{{ID: 1, Name: "Celltronics"}}, w.err
}

func (w *countingWarmer) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}

type countingRefresher struct {
	mu    sync.Mutex
	board catalog.Board
	calls int
	err   error
}

func (r *countingRefresher) RefreshTrending(context.Context) (*catalog.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	snap := &catalog.Snapshot{Generation: r.board.Begin(), BuiltAt: time.Now()}
	r.board.Publish(snap)
	return snap, nil
}

func (r *countingRefresher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestCatalogRefreshWorker_RunsImmediatelyAndOnTick(t *testing.T) {
	warmer := &countingWarmer{}
	refresher := &countingRefresher{}
	w := NewCatalogRefreshWorker(warmer, refresher, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return refresher.count() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}

	assert.GreaterOrEqual(t, warmer.count(), 3)
	assert.Equal(t, uint64(refresher.count()), refresher.board.Current().Generation)
}

func TestCatalogRefreshWorker_RefreshesWhenWarmFails(t *testing.T) {
	warmer := &countingWarmer{err: assert.AnError}
	refresher := &countingRefresher{}
	w := NewCatalogRefreshWorker(warmer, refresher, time.Hour)

	w.run(context.Background())

	assert.Equal(t, 1, warmer.count())
	assert.Equal(t, 1, refresher.count())
}

func TestCatalogRefreshWorker_NilWarmerAndRefreshError(t *testing.T) {
	refresher := &countingRefresher{err: assert.AnError}
	w := NewCatalogRefreshWorker(nil, refresher, time.Hour)

	assert.NotPanics(t, func() { w.run(context.Background()) })
	assert.Equal(t, 1, refresher.count())
}
