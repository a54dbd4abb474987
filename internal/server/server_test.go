package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/states"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/protocol"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/testutil"
)

const testProtocolID = 7

type testServer struct {
	loop   *Loop
	match  *Match
	http   *httptest.Server
	wsURL  string
	board  *bytes.Buffer
	cancel context.CancelFunc
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := testutil.NopLogger()

	match, err := NewMatch(testMatchConfig, logger)
	require.NoError(t, err)

	board := &bytes.Buffer{}
	loop := NewLoop(match, NewClientManager(logger), LoopConfig{
		TickInterval: time.Millisecond,
		QueueSize:    16,
		BoardOut:     board,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)

	ws := NewWSHandler(loop, WSConfig{
		ProtocolID:    testProtocolID,
		SendBuffer:    64,
		RatePerSecond: 1000,
		RateBurst:     1000,
	}, nil, logger)
	srv := httptest.NewServer(NewRouter(ws, loop, logger))

	ts := &testServer{
		loop:   loop,
		match:  match,
		http:   srv,
		wsURL:  "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
		board:  board,
		cancel: cancel,
	}
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
		srv.Close()
	})
	return ts
}

func dial(t *testing.T, ts *testServer) *websocket.Conn {
	t.Helper()
	dialer := websocket.Dialer{Subprotocols: []string{Subprotocol(testProtocolID)}}
	conn, _, err := dialer.Dial(ts.wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	assert.Equal(t, Subprotocol(testProtocolID), conn.Subprotocol())
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) protocol.ClientEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	msgType, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, msgType)

	ev, err := protocol.DecodeEvent(data)
	require.NoError(t, err)
	return ev
}

// readSync consumes the five events sent when a match starts or resets
func readSync(t *testing.T, conn *websocket.Conn) []protocol.ClientEvent {
	t.Helper()
	evs := make([]protocol.ClientEvent, 5)
	for i := range evs {
		evs[i] = readEvent(t, conn)
	}
	return evs
}

func sendIntent(t *testing.T, conn *websocket.Conn, in protocol.Intent) {
	t.Helper()
	frame, err := protocol.EncodeIntent(in)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, frame))
}

func TestWebSocketMatchFlow(t *testing.T) {
	ts := startTestServer(t)

	red := dial(t, ts)
	welcome, ok := readEvent(t, red).(protocol.Welcome)
	require.True(t, ok)
	assert.Equal(t, core.Red, welcome.Player)

	blue := dial(t, ts)
	welcome, ok = readEvent(t, blue).(protocol.Welcome)
	require.True(t, ok)
	assert.Equal(t, core.Blue, welcome.Player)
	assert.NotEqual(t, uint64(0), welcome.ClientID)

	for _, conn := range []*websocket.Conn{red, blue} {
		evs := readSync(t, conn)
		initEv, ok := evs[0].(protocol.Init)
		require.True(t, ok)
		assert.Len(t, initEv.Grid, core.CellCount)
		assert.Equal(t, protocol.Turn{Player: core.Red}, evs[2])
	}

	// The client id in the frame is ignored; the connection decides the sender
	sendIntent(t, red, protocol.Intent{
		Kind:     protocol.IntentTerrainAction,
		ClientID: 12345,
		Position: core.Coordinate{X: 0, Y: 0},
		Input:    protocol.Mouse(protocol.MouseLeft),
	})

	want := protocol.TileChanges{Changes: []core.TileChange{{
		Position: core.Coordinate{X: 0, Y: 0},
		Tile:     core.EmptyTile(core.TerrainMountain),
	}}}
	assert.Equal(t, want, readEvent(t, red))
	assert.Equal(t, want, readEvent(t, blue))

	// a loop round trip orders the board dump before the read
	_, err := ts.loop.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Contains(t, ts.board.String(), "#1 red MakeTerrain", "board dumped after the action")
}

func TestWebSocketDropsMalformedFrames(t *testing.T) {
	ts := startTestServer(t)

	red := dial(t, ts)
	readEvent(t, red)
	blue := dial(t, ts)
	readEvent(t, blue)
	readSync(t, red)
	readSync(t, blue)

	require.NoError(t, red.WriteMessage(websocket.BinaryMessage, []byte{0xc1, 0x00, 0xff}))
	require.NoError(t, red.WriteMessage(websocket.TextMessage, []byte("hello")))

	sendIntent(t, red, protocol.Intent{Kind: protocol.IntentTerrainAction, Input: protocol.Keyboard(protocol.KeyReturn)})
	assert.Equal(t, protocol.Turn{Player: core.Blue}, readEvent(t, red), "connection survives bad frames")
}

func TestWebSocketRejectsThirdPlayer(t *testing.T) {
	ts := startTestServer(t)

	red := dial(t, ts)
	readEvent(t, red)
	blue := dial(t, ts)
	readEvent(t, blue)

	extra := dial(t, ts)
	require.NoError(t, extra.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := extra.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)

	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok)
	assert.Equal(t, core.ErrMatchFull.Error(), closeErr.Text)
}

func TestWebSocketRequiresSubprotocol(t *testing.T) {
	ts := startTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(ts.wsURL, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	dialer := websocket.Dialer{Subprotocols: []string{Subprotocol(testProtocolID + 1)}}
	_, resp, err = dialer.Dial(ts.wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebSocketDisconnectUnseats(t *testing.T) {
	ts := startTestServer(t)

	red := dial(t, ts)
	readEvent(t, red)
	require.NoError(t, red.Close())

	require.Eventually(t, func() bool {
		snap, err := ts.loop.Snapshot(context.Background())
		return err == nil && snap.Seated == 0
	}, 2*time.Second, 10*time.Millisecond)

	again := dial(t, ts)
	welcome, ok := readEvent(t, again).(protocol.Welcome)
	require.True(t, ok)
	assert.Equal(t, core.Red, welcome.Player, "a freed lobby seat is taken again")
}

func TestRematchResyncsClients(t *testing.T) {
	ts := startTestServer(t)

	red := dial(t, ts)
	readEvent(t, red)
	blue := dial(t, ts)
	readEvent(t, blue)
	readSync(t, red)
	readSync(t, blue)

	snap, err := ts.loop.Reset(context.Background(), "test rematch")
	require.NoError(t, err)
	assert.Equal(t, states.PhaseRunning, snap.Phase)

	for _, conn := range []*websocket.Conn{red, blue} {
		evs := readSync(t, conn)
		_, ok := evs[0].(protocol.Init)
		assert.True(t, ok)
	}
}

func TestHealthz(t *testing.T) {
	ts := startTestServer(t)

	resp, err := http.Get(ts.http.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, ts.match.ID, body.MatchID)
	assert.Equal(t, "Lobby", body.Phase)
	assert.Equal(t, 0, body.Seated)
}

func TestHealthzAfterShutdown(t *testing.T) {
	ts := startTestServer(t)
	ts.cancel()
	<-ts.loop.Done()

	resp, err := http.Get(ts.http.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLoopStopped(t *testing.T) {
	ts := startTestServer(t)
	ts.cancel()
	<-ts.loop.Done()

	_, err := ts.loop.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrLoopStopped)

	// the intent queue still has room, so a single call could pass by luck
	for i := 0; i < 20; i++ {
		require.ErrorIs(t, ts.loop.Submit(context.Background(), protocol.Intent{}), ErrLoopStopped, "call %d", i)
	}
}

func TestJoinWithCancelledContext(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := uint64(1); i <= 20; i++ {
		_, err := ts.loop.Join(ctx, NewClient(i, 8))
		require.ErrorIs(t, err, context.Canceled, "join %d", i)
	}

	snap, err := ts.loop.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Seated, "abandoned joins take no seat")
}
