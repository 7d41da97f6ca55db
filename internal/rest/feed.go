package rest

import (
	"context"
	"net/http"
	"slices"
	"smelterAdvisor/business/feed"
	"smelterAdvisor/pkg/logger"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type (
	FeedHandler struct {
		baseCtx  context.Context
		upgrader websocket.Upgrader
		player   FeedPlayer
	}

	FeedPlayer interface {
		Serve(ctx context.Context, conn feed.Conn, session string) error
	}
)

// NewFeedHandler streams replayed historian data. Connections end when baseCtx is cancelled.
func NewFeedHandler(baseCtx context.Context, player FeedPlayer, allowedOrigins []string) *FeedHandler {
	return &FeedHandler{
		baseCtx: baseCtx,
		player:  player,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   1024,
			WriteBufferSize:  4096,
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin:      checkOrigin(allowedOrigins),
		},
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
	}
}

// GET /ws/feed
func (h *FeedHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logger.Warn("feed upgrade failed", "remote", c.RealIP(), "error", err)
		return nil
	}

	session := "feed-" + uuid.NewString()
	logger.Info("feed client connected", "session", session, "remote", c.RealIP())

	if err := h.player.Serve(h.baseCtx, conn, session); err != nil {
		logger.Warn("feed stream ended with error", "session", session, "error", err)
		return nil
	}

	logger.Info("feed client done", "session", session)
	return nil
}
