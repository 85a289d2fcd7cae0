package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type received struct {
	path string
	env  Envelope
}

func newSocketServer(t *testing.T, status int) (*httptest.Server, func() []received) {
	t.Helper()
	var mu sync.Mutex
	var got []received

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var env Envelope
		_ = json.NewDecoder(r.Body).Decode(&env)
		mu.Lock()
		got = append(got, received{path: r.URL.Path, env: env})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []received {
		mu.Lock()
		defer mu.Unlock()
		return append([]received(nil), got...)
	}
}

func TestHTTPRelayRoutesByEvent(t *testing.T) {
	srv, got := newSocketServer(t, http.StatusOK)
	r := NewHTTPRelay(srv.URL+"/", time.Second)

	require.NoError(t, r.Notify(context.Background(), EventSendMessage, map[string]string{"body": "hi"}))
	require.NoError(t, r.Notify(context.Background(), EventPriceUpdated, map[string]float64{"base_price": 650}))

	calls := got()
	require.Len(t, calls, 2)
	assert.Equal(t, "/send-message", calls[0].path)
	assert.Equal(t, EventSendMessage, calls[0].env.Event)
	assert.Equal(t, "/payment", calls[1].path)
	assert.Equal(t, EventPriceUpdated, calls[1].env.Event)
}

func TestHTTPRelayReportsServerErrors(t *testing.T) {
	srv, _ := newSocketServer(t, http.StatusInternalServerError)

	err := NewHTTPRelay(srv.URL, time.Second).Notify(context.Background(), EventPayment, nil)
	assert.Error(t, err)
}

type failing struct{ calls int }

func (f *failing) Notify(context.Context, Event, any) error {
	f.calls++
	return errors.New("socket server down")
}
func (f *failing) Close() error { return nil }

func TestDispatcherSwallowsAndLogsErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n := &failing{}
	d := NewDispatcher(n, zap.New(core), time.Second)

	d.Fire(EventBookingStatus, map[string]string{"status": "ACCEPTED"})
	require.NoError(t, d.Close())

	assert.Equal(t, 1, n.calls)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "relay notify failed", logs.All()[0].Message)
}

func TestDispatcherDelivers(t *testing.T) {
	srv, got := newSocketServer(t, http.StatusOK)
	d := NewDispatcher(NewHTTPRelay(srv.URL, time.Second), zap.NewNop(), time.Second)

	d.Fire(EventPayment, map[string]string{"order_id": "order_1"})
	d.Wait()

	require.Len(t, got(), 1)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(Config{Driver: "kafka"})
	assert.Error(t, err)

	n, err := New(Config{Driver: "noop"})
	require.NoError(t, err)
	assert.NoError(t, n.Notify(context.Background(), EventPayment, nil))
}
