package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Bestfast/gosumemory-helper/internal/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	return hub, srv
}

func testState(title string, passing bool) *message.GosuMemoryState {
	s := &message.GosuMemoryState{}
	s.Menu.Beatmap.Metadata.Title = title
	s.Menu.Beatmap.Stats.MemoryOD = 8.5
	s.Gameplay.Leaderboard.OurPlayer.IsPassing = message.WireBool(passing)
	return s
}

func readState(ctx context.Context, t *testing.T, c *websocket.Conn) *message.GosuMemoryState {
	t.Helper()
	typ, data, err := c.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageText, typ)

	state, err := message.Parse(data)
	require.NoError(t, err)
	return state
}

func TestHub_StreamsPublishedStates(t *testing.T) {
	hub, srv := newTestHub(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, srv.URL+"/ws", nil)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, 5*time.Second, 10*time.Millisecond)

	hub.Publish(testState("one", true))
	got := readState(ctx, t, c)
	assert.Equal(t, "one", got.Menu.Beatmap.Metadata.Title)
	assert.True(t, bool(got.Gameplay.Leaderboard.OurPlayer.IsPassing))

	hub.Publish(testState("two", false))
	got = readState(ctx, t, c)
	assert.Equal(t, "two", got.Menu.Beatmap.Metadata.Title)
	assert.False(t, bool(got.Gameplay.Leaderboard.OurPlayer.IsPassing))
}

func TestHub_SendsLatestOnJoin(t *testing.T) {
	hub, srv := newTestHub(t)
	hub.Publish(testState("already playing", false))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, srv.URL+"/ws", nil)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")

	got := readState(ctx, t, c)
	assert.Equal(t, "already playing", got.Menu.Beatmap.Metadata.Title)
}

func TestHub_SubscriberLeaves(t *testing.T) {
	hub, srv := newTestHub(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, srv.URL+"/ws", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, 5*time.Second, 10*time.Millisecond)

	c.Close(websocket.StatusNormalClosure, "")
	require.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHub_PublishSurvivesDisconnects(t *testing.T) {
	hub, srv := newTestHub(t)

	var published atomic.Int64
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			hub.Publish(testState(fmt.Sprint(i), i%2 == 0))
			published.Add(1)
		}
	}()
	defer func() {
		close(stop)
		<-done
	}()

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		c, _, err := websocket.Dial(ctx, srv.URL+"/ws", nil)
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
		c.Close(websocket.StatusNormalClosure, "")
		cancel()

		require.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 5*time.Second, 10*time.Millisecond)

		before := published.Load()
		require.Eventually(t, func() bool { return published.Load() > before+10 }, 3*time.Second, time.Millisecond,
			"publishing stalled after client %d left", i)
	}
}

func TestHub_DropsClientThatSends(t *testing.T) {
	hub, srv := newTestHub(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, srv.URL+"/ws", nil)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`{"hello": 1}`)))

	_, _, err = c.Read(ctx)
	assert.Error(t, err)
	require.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHub_DeliversInOrderWithoutDuplicates(t *testing.T) {
	hub, srv := newTestHub(t)
	hub.Publish(testState("0", false))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, srv.URL+"/ws", nil)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")

	got := readState(ctx, t, c)
	require.Equal(t, "0", got.Menu.Beatmap.Metadata.Title)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, 5*time.Second, 10*time.Millisecond)

	const last = 50
	for i := 1; i <= last; i++ {
		hub.Publish(testState(fmt.Sprint(i), false))
	}

	prev := 0
	for prev < last {
		var n int
		_, err := fmt.Sscan(readState(ctx, t, c).Menu.Beatmap.Metadata.Title, &n)
		require.NoError(t, err)
		require.Greater(t, n, prev, "state %d arrived after %d", n, prev)
		prev = n
	}
}

func TestStateHandler(t *testing.T) {
	hub, srv := newTestHub(t)

	resp, err := http.Get(srv.URL + "/json")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	hub.Publish(testState("snapshot", true))

	resp, err = http.Get(srv.URL + "/json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	state, err := message.Parse(body)
	require.NoError(t, err)
	assert.Equal(t, testState("snapshot", true), state)
}

func TestMapHandler(t *testing.T) {
	hub, srv := newTestHub(t)
	hub.Publish(testState("legacy", false))

	resp, err := http.Get(srv.URL + "/map")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m message.OsuMap
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "legacy", m.Metadata.Title)
	assert.Equal(t, 8.5, m.Stats.OD)
}

func TestOptionsPreflight(t *testing.T) {
	_, srv := newTestHub(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/json", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
}
