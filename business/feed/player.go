package feed

import (
	"context"
	"errors"
	"smelterAdvisor/domain"
	"smelterAdvisor/pkg/logger"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

const (
	MessageTypeReading       = "reading"
	MessageTypeAdvisory      = "advisory"
	MessageTypeAdvisoryError = "advisory_error"
	MessageTypeEnd           = "end"
)

var errClientGone = errors.New("client disconnected")

type Message struct {
	Type  string `json:"type"`
	Seq   int    `json:"seq"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Conn is the subset of *websocket.Conn the player uses.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Advisor runs a replayed row through the recommendation generator.
type Advisor interface {
	Recommend(ctx context.Context, session string, raw map[string]any) (domain.RecommendResult, error)
}

// Player replays historian rows to one client at a fixed interval.
type Player struct {
	rows     []Row
	interval time.Duration
	advisor  Advisor
}

// NewPlayer streams rows every interval. advisor may be nil to send readings only.
func NewPlayer(rows []Row, interval time.Duration, advisor Advisor) *Player {
	return &Player{
		rows:     rows,
		interval: interval,
		advisor:  advisor,
	}
}

func (p *Player) Rows() int {
	return len(p.rows)
}

// Serve streams until the rows run out, the client leaves or ctx is done. It closes conn.
func (p *Player) Serve(ctx context.Context, conn Conn, session string) error {
	FeedClients.Inc()
	defer FeedClients.Dec()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.readPump(conn)
	})

	g.Go(func() error {
		defer func() { _ = conn.Close() }()
		return p.writePump(gctx, conn, session)
	})

	err := g.Wait()
	if errors.Is(err, errClientGone) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readPump discards client frames; its only job is to notice the client going away.
func (p *Player) readPump(conn Conn) error {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("feed client closed unexpectedly", "error", err)
			}
			return errClientGone
		}
	}
}

func (p *Player) writePump(ctx context.Context, conn Conn, session string) error {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	timer := time.NewTimer(0)
	defer timer.Stop()

	seq := 0
	for seq < len(p.rows) {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return errClientGone
			}

		case <-timer.C:
			row := p.rows[seq]
			if err := p.send(conn, Message{Type: MessageTypeReading, Seq: seq, Data: row}); err != nil {
				return err
			}

			if p.advisor != nil {
				msg := Message{Type: MessageTypeAdvisory, Seq: seq}
				res, err := p.advisor.Recommend(ctx, session, row)
				if err != nil {
					msg = Message{Type: MessageTypeAdvisoryError, Seq: seq, Error: err.Error()}
				} else {
					msg.Data = res
				}
				if err := p.send(conn, msg); err != nil {
					return err
				}
			}

			seq++
			timer.Reset(p.interval)
		}
	}

	if err := p.send(conn, Message{Type: MessageTypeEnd, Seq: seq}); err != nil {
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay complete"))

	return nil
}

func (p *Player) send(conn Conn, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return errClientGone
	}

	FeedMessagesTotal.WithLabelValues(msg.Type).Inc()
	return nil
}
