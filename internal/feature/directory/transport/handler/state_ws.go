package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// stateReadWait is how long a connection may stay silent before it is
// considered dead. Clients keep it alive with pings or any message.
const stateReadWait = 90 * time.Second

// stateUpgrader upgrades /ws/state requests. Origin checks are left to the
// CORS layer in front of the router.
var stateUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StateFeed はストアのスナップショット概況をWebSocketへ逐次配信するAPIです。
// 接続直後に現在の状態を1件送り、以降は状態が変わるたびに最新を送ります。
// 配信が追いつかない場合は中間状態を飛ばして常に最新のみを届けます。
func (h *DirectoryHandler) StateFeed(c *gin.Context) {
	conn, err := stateUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	snaps, cancel := h.store.Subscribe()
	defer cancel()

	// gorillaは並行Writeを許可しないため、書き込みは1ゴルーチンに集約する。
	// 購読チャネルは購読時点のスナップショットを先頭に積んでいるので、
	// 初回送信もここで行われる。
	go func() {
		defer conn.Close()
		for snap := range snaps {
			if err := conn.WriteJSON(toStateResponse(snap)); err != nil {
				return
			}
		}
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(stateReadWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(stateReadWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(stateReadWait))
	}
}
