package mutation

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdecklabs/linkdeck/internal/api"
	"github.com/linkdecklabs/linkdeck/internal/cache"
)

func TestRunSuccessInvalidatesAndNotifies(t *testing.T) {
	c := cache.New()
	var loads atomic.Int32
	loader := func(ctx context.Context) (any, error) {
		return int(loads.Add(1)), nil
	}
	_, err := c.Fetch(context.Background(), "links/false", loader)
	require.NoError(t, err)

	e := New("create-link", c,
		WithInvalidates("links", "dashboard"),
		WithFallbackMessage("failed to create link"))

	var notified []Record
	e.OnSuccess(func(r Record) { notified = append(notified, r) })

	rec := e.Run(context.Background(), func(ctx context.Context) (any, error) {
		return "created", nil
	})

	assert.Equal(t, StatusSuccess, rec.Status)
	assert.Equal(t, "created", rec.Result)
	require.Len(t, notified, 1)
	assert.Equal(t, rec.ID, notified[0].ID)

	// The links key was invalidated; the next read reloads.
	_, err = c.Fetch(context.Background(), "links/false", loader)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())
}

func TestRunFailureLeavesCacheAlone(t *testing.T) {
	c := cache.New()
	var loads atomic.Int32
	loader := func(ctx context.Context) (any, error) {
		return int(loads.Add(1)), nil
	}
	_, err := c.Fetch(context.Background(), "links/false", loader)
	require.NoError(t, err)

	e := New("delete-link", c,
		WithInvalidates("links"),
		WithFallbackMessage("failed to delete link"))

	var failures []Record
	e.OnError(func(r Record) { failures = append(failures, r) })

	rec := e.Run(context.Background(), func(ctx context.Context) (any, error) {
		return nil, errors.New("connection reset")
	})

	assert.Equal(t, StatusError, rec.Status)
	assert.Equal(t, "failed to delete link", rec.Message)
	require.Len(t, failures, 1)

	// No invalidation happened.
	v, _ := c.Fetch(context.Background(), "links/false", loader)
	assert.Equal(t, 1, v)
	assert.Equal(t, int32(1), loads.Load())
}

func TestRunUsesServerErrorMessage(t *testing.T) {
	e := New("update-link", cache.New(), WithFallbackMessage("failed to update link"))

	rec := e.Run(context.Background(), func(ctx context.Context) (any, error) {
		return nil, &api.Error{StatusCode: http.StatusConflict, Message: "title already in use"}
	})

	assert.Equal(t, "title already in use", rec.Message)
}

func TestRunTransportErrorFallsBack(t *testing.T) {
	e := New("update-link", cache.New(), WithFallbackMessage("failed to update link"))

	rec := e.Run(context.Background(), func(ctx context.Context) (any, error) {
		return nil, &api.Error{Message: "dial tcp: connection refused"}
	})

	assert.Equal(t, "failed to update link", rec.Message)
}

func TestReplacePolicySupersedesSlowRun(t *testing.T) {
	e := New("update-link", cache.New())

	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})

	done := make(chan Record)
	go func() {
		done <- e.Run(context.Background(), func(ctx context.Context) (any, error) {
			close(slowStarted)
			<-slowRelease
			return "slow", nil
		})
	}()

	<-slowStarted

	// A second invocation while the first is pending replaces the visible
	// record.
	fast := e.Run(context.Background(), func(ctx context.Context) (any, error) {
		return "fast", nil
	})
	assert.Equal(t, StatusSuccess, fast.Status)
	assert.Equal(t, "fast", e.Current().Result)

	// The superseded run completes but does not overwrite the record.
	close(slowRelease)
	slow := <-done
	assert.Equal(t, "slow", slow.Result, "caller still sees its own outcome")
	assert.Equal(t, "fast", e.Current().Result)
}

func TestSupersededRunDoesNotNotifyObservers(t *testing.T) {
	e := New("update-link", cache.New())

	var notified atomic.Int32
	e.OnSuccess(func(Record) { notified.Add(1) })

	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Run(context.Background(), func(ctx context.Context) (any, error) {
			close(slowStarted)
			<-slowRelease
			return "slow", nil
		})
	}()

	<-slowStarted
	e.Run(context.Background(), func(ctx context.Context) (any, error) {
		return "fast", nil
	})
	close(slowRelease)
	<-done

	// Give the superseded run a moment; it must not notify.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(1), notified.Load())
}

func TestCurrentStartsIdle(t *testing.T) {
	e := New("reorder-links", cache.New())
	rec := e.Current()
	assert.Equal(t, StatusIdle, rec.Status)
	assert.Equal(t, "reorder-links", rec.Kind)
}
