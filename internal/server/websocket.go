package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/monitoring"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Subprotocol names the WebSocket subprotocol for a protocol revision.
// Clients must offer it during the handshake.
func Subprotocol(protocolID int) string {
	return fmt.Sprintf("territory-v%d", protocolID)
}

// WSConfig holds the per-connection transport settings
type WSConfig struct {
	ProtocolID    int
	SendBuffer    int
	RatePerSecond float64
	RateBurst     int
}

// WSHandler upgrades player connections and runs their pumps
type WSHandler struct {
	loop     *Loop
	cfg      WSConfig
	upgrader websocket.Upgrader
	nextID   atomic.Uint64
	monitor  *monitoring.GoroutineMonitor
	logger   zerolog.Logger
}

// NewWSHandler creates the player endpoint. monitor may be nil.
func NewWSHandler(loop *Loop, cfg WSConfig, monitor *monitoring.GoroutineMonitor, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		loop: loop,
		cfg:  cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{Subprotocol(cfg.ProtocolID)},
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		monitor: monitor,
		logger:  logger.With().Str("component", "WSHandler").Logger(),
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	want := Subprotocol(h.cfg.ProtocolID)
	if !slices.Contains(websocket.Subprotocols(r), want) {
		h.logger.Warn().
			Str("remote_addr", r.RemoteAddr).
			Strs("offered", websocket.Subprotocols(r)).
			Str("required", want).
			Msg("Rejecting connection with unsupported protocol")
		http.Error(w, "unsupported protocol, expected "+want, http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("WebSocket upgrade failed")
		return
	}

	client := NewClient(h.nextID.Add(1), h.cfg.SendBuffer)
	logger := h.logger.With().
		Uint64("client_id", client.ID).
		Str("remote_addr", r.RemoteAddr).
		Logger()

	ctx := r.Context()
	if _, err := h.loop.Join(ctx, client); err != nil {
		logger.Info().Err(err).Msg("Connection refused")
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reasonFor(err))
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
		return
	}
	logger.Info().Str("player", client.Player.String()).Msg("Client connected")

	h.monitor.Add("write_pump", 1)
	go func() {
		defer h.monitor.Add("write_pump", -1)
		h.writePump(conn, client, logger)
	}()

	h.monitor.Add("read_pump", 1)
	h.readPump(ctx, conn, client, logger)
	h.monitor.Add("read_pump", -1)

	client.Close()
	if err := h.loop.Leave(context.Background(), client.ID, "connection closed"); err != nil {
		logger.Debug().Err(err).Msg("Leave after loop shutdown")
	}
	logger.Info().Str("player", client.Player.String()).Msg("Client disconnected")
}

// reasonFor keeps close reasons within the control frame limit
func reasonFor(err error) string {
	switch {
	case errors.Is(err, core.ErrMatchFull):
		return core.ErrMatchFull.Error()
	case errors.Is(err, core.ErrMatchEnded):
		return core.ErrMatchEnded.Error()
	default:
		return "join failed"
	}
}

func (h *WSHandler) readPump(ctx context.Context, conn *websocket.Conn, client *Client, logger zerolog.Logger) {
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	limiter := rate.NewLimiter(rate.Limit(h.cfg.RatePerSecond), h.cfg.RateBurst)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("Connection closed unexpectedly")
			}
			return
		}

		if msgType != websocket.BinaryMessage {
			logger.Warn().Int("message_type", msgType).Msg("Dropping non-binary frame")
			continue
		}
		if !limiter.Allow() {
			logger.Warn().Msg("Rate limit exceeded, dropping frame")
			continue
		}

		in, err := protocol.DecodeIntent(data)
		if err != nil {
			logger.Warn().
				Err(core.WrapClientError(client.ID, "decode intent", err)).
				Int("bytes", len(data)).
				Msg("Dropping malformed frame")
			continue
		}

		// the transport decides who sent it
		in.ClientID = client.ID
		if err := h.loop.Submit(ctx, in); err != nil {
			logger.Debug().Err(err).Msg("Stopped reading")
			return
		}
	}
}

func (h *WSHandler) writePump(conn *websocket.Conn, client *Client, logger zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				logger.Debug().Err(err).Msg("Write failed")
				client.Close()
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.Debug().Err(err).Msg("Ping failed")
				client.Close()
				return
			}
		case <-client.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}
	}
}
