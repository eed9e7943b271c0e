package debounce

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
	fired chan struct{}
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) fn(v string) {
	r.mu.Lock()
	r.calls = append(r.calls, v)
	r.mu.Unlock()
	r.fired <- struct{}{}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestDebouncer_BurstCollapsesToLastValue(t *testing.T) {
	rec := newRecorder()
	d := New(context.Background(), 40*time.Millisecond, rec.fn)
	defer d.Stop()

	for _, v := range []string{"a", "al", "ali", "alic", "alice"} {
		d.Call(v)
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-rec.fired:
	case <-time.After(time.Second):
		t.Fatal("debounced function was not called")
	}

	// give a stray timer a chance to misbehave
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"alice"}, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	rec := newRecorder()
	d := New(context.Background(), 20*time.Millisecond, rec.fn)
	defer d.Stop()

	d.Call("first")
	<-rec.fired
	d.Call("second")
	<-rec.fired

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebouncer_StopCancelsPendingCall(t *testing.T) {
	rec := newRecorder()
	d := New(context.Background(), 30*time.Millisecond, rec.fn)

	d.Call("x")
	require.True(t, d.Pending())
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	d.Call("after stop")
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_ContextCancelCancelsPendingCall(t *testing.T) {
	rec := newRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	d := New(ctx, 30*time.Millisecond, rec.fn)

	d.Call("x")
	cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.False(t, d.Pending())
}
