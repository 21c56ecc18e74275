package adapter

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/guildline/engage-api/models"
)

// EventSink receives decoded platform events. Implemented by the engine's
// normalizer; handlers never return errors upward because one bad event must
// not affect the feed.
type EventSink interface {
	HandleMessage(ctx context.Context, ev models.MessageEvent)
	HandleVoiceState(ctx context.Context, ev models.VoiceStateEvent)
	HandlePresence(ctx context.Context, ev models.PresenceEvent)
	HandleCommand(ctx context.Context, ev models.CommandEvent)
	HandleBoost(ctx context.Context, ev models.BoostEvent)
	HandleMemberJoin(ctx context.Context, ev models.MemberJoinEvent)
	HandleMemberLeave(ctx context.Context, ev models.MemberLeaveEvent)
}

// envelope is the gateway's wire frame. Data stays raw until the type is known.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	initialBackoff = time.Second
	maxBackoff     = time.Minute
)

// Gateway consumes the platform adapter's websocket feed and dispatches each
// event into the sink. It reconnects with exponential backoff until closed.
type Gateway struct {
	URL  string
	Sink EventSink

	dialer *websocket.Dialer

	mu     sync.Mutex
	conn   *websocket.Conn
	closed chan struct{}
	once   sync.Once
}

// NewGateway creates a gateway consumer for the given websocket URL
func NewGateway(url string, sink EventSink) *Gateway {
	return &Gateway{
		URL:    url,
		Sink:   sink,
		dialer: websocket.DefaultDialer,
		closed: make(chan struct{}),
	}
}

// Run connects and consumes the feed until Close is called. Blocking; callers
// run it in a goroutine.
func (g *Gateway) Run(ctx context.Context) {
	backoff := initialBackoff
	for {
		select {
		case <-g.closed:
			return
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := g.dialer.DialContext(ctx, g.URL, nil)
		if err != nil {
			zap.S().Warnw("gateway dial failed, retrying",
				"url", g.URL,
				"backoff", backoff,
				"error", err,
			)
			select {
			case <-time.After(backoff):
			case <-g.closed:
				return
			case <-ctx.Done():
				return
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		zap.S().Infow("gateway connected", "url", g.URL)
		backoff = initialBackoff

		g.mu.Lock()
		g.conn = conn
		g.mu.Unlock()

		g.readLoop(ctx, conn)

		g.mu.Lock()
		g.conn = nil
		g.mu.Unlock()
		conn.Close()
	}
}

// readLoop consumes frames until the connection drops
func (g *Gateway) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-g.closed:
			default:
				zap.S().Warnw("gateway connection lost", "error", err)
			}
			return
		}
		g.dispatch(ctx, payload)
	}
}

// dispatch decodes one envelope and routes it by type. Unknown types and
// malformed payloads are dropped with a log line.
func (g *Gateway) dispatch(ctx context.Context, payload []byte) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		zap.S().Warnw("failed to decode gateway envelope", "error", err)
		return
	}

	switch env.Type {
	case "message_posted":
		var ev models.MessageEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			zap.S().Warnw("failed to decode message event", "error", err)
			return
		}
		g.Sink.HandleMessage(ctx, ev)
	case "voice_state":
		var ev models.VoiceStateEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			zap.S().Warnw("failed to decode voice state event", "error", err)
			return
		}
		g.Sink.HandleVoiceState(ctx, ev)
	case "presence_update":
		var ev models.PresenceEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			zap.S().Warnw("failed to decode presence event", "error", err)
			return
		}
		g.Sink.HandlePresence(ctx, ev)
	case "command_invoked":
		var ev models.CommandEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			zap.S().Warnw("failed to decode command event", "error", err)
			return
		}
		g.Sink.HandleCommand(ctx, ev)
	case "community_boosted":
		var ev models.BoostEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			zap.S().Warnw("failed to decode boost event", "error", err)
			return
		}
		g.Sink.HandleBoost(ctx, ev)
	case "member_joined":
		var ev models.MemberJoinEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			zap.S().Warnw("failed to decode member join event", "error", err)
			return
		}
		g.Sink.HandleMemberJoin(ctx, ev)
	case "member_left":
		var ev models.MemberLeaveEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			zap.S().Warnw("failed to decode member leave event", "error", err)
			return
		}
		g.Sink.HandleMemberLeave(ctx, ev)
	default:
		zap.S().Debugw("ignoring unknown gateway event", "type", env.Type)
	}
}

// Close stops the consumer and closes the active connection
func (g *Gateway) Close() {
	g.once.Do(func() {
		close(g.closed)
		g.mu.Lock()
		if g.conn != nil {
			g.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			g.conn.Close()
		}
		g.mu.Unlock()
	})
}
