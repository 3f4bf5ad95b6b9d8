// Package websocket 管理通知推送的 WebSocket 连接
// 服务端只推送，客户端发来的消息忽略
package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/Min-owo17/Mysic/pkg/constants"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UserConn 单个 WebSocket 连接
type UserConn struct {
	Conn     *websocket.Conn
	UserID   uint
	SendBack chan []byte // 待推送给前端的消息

	hub       *Hub
	closeOnce sync.Once
}

// Hub 在线连接表，同一用户可有多个连接
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*UserConn]struct{}
}

// NewHub 创建连接表
func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*UserConn]struct{})}
}

// Serve 升级连接并启动读写协程
func (h *Hub) Serve(c *gin.Context, userID uint) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade failed", zap.Error(err))
		return
	}
	client := &UserConn{
		Conn:     conn,
		UserID:   userID,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
		hub:      h,
	}
	h.register(client)
	go client.Write()
	go client.Read()
	zap.L().Info("ws连接成功", zap.Uint("user_id", userID))
}

func (h *Hub) register(client *UserConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[client.UserID]
	if !ok {
		set = make(map[*UserConn]struct{})
		h.clients[client.UserID] = set
	}
	set[client] = struct{}{}
}

func (h *Hub) unregister(client *UserConn) {
	h.mu.Lock()
	if set, ok := h.clients[client.UserID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.clients, client.UserID)
		}
	}
	h.mu.Unlock()
	client.close()
}

// Deliver 推送给用户的所有在线连接，返回是否在线
// 缓冲区满的连接丢弃本条消息
func (h *Hub) Deliver(userID uint, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set, ok := h.clients[userID]
	if !ok || len(set) == 0 {
		return false
	}
	for client := range set {
		select {
		case client.SendBack <- payload:
		default:
			zap.L().Warn("ws send buffer full, drop message", zap.Uint("user_id", userID))
		}
	}
	return true
}

// Online 用户是否在线
func (h *Hub) Online(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// Close 断开全部连接
func (h *Hub) Close() {
	h.mu.Lock()
	all := make([]*UserConn, 0)
	for _, set := range h.clients {
		for client := range set {
			all = append(all, client)
		}
	}
	h.clients = make(map[uint]map[*UserConn]struct{})
	h.mu.Unlock()
	for _, client := range all {
		client.close()
	}
}

// Read 只处理心跳与断开
func (c *UserConn) Read() {
	defer c.hub.unregister(c)
	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("ws read error", zap.Uint("user_id", c.UserID), zap.Error(err))
			}
			return
		}
	}
}

// Write 把 SendBack 中的消息写给前端，并定时发送 ping
func (c *UserConn) Write() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.SendBack:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				zap.L().Error("ws write error", zap.Uint("user_id", c.UserID), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *UserConn) close() {
	c.closeOnce.Do(func() {
		close(c.SendBack)
	})
}
