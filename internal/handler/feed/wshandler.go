package feed

import (
	"net/http"
	"sync"

	"signalhub/internal/model"
	"signalhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// 信号实时推送：客户端通过websocket订阅感兴趣的交易员，
// 入库成功的信号会按trader_id路由给对应的订阅者

// 客户端请求的消息格式
type subscribeMessage struct {
	Action  string   `json:"action"`     // subscribe | unsubscribe
	Traders []string `json:"trader_ids"` // ["trader-001", "trader-002"]
}

type ClientConn struct {
	Conn    *websocket.Conn
	Send    chan []byte // 异步发送通道
	Traders map[string]struct{}
}

type Handler struct {
	mu sync.RWMutex
	// 每个交易员对应的订阅客户端集合
	traderSubscribers map[string]map[*ClientConn]struct{}
	// 每个连接订阅的交易员
	clientTraders map[*ClientConn]map[string]struct{}
	upgrader      websocket.Upgrader
}

func NewHandler() *Handler {
	return &Handler{
		traderSubscribers: make(map[string]map[*ClientConn]struct{}),
		clientTraders:     make(map[*ClientConn]map[string]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // 允许跨域
		},
	}
}

// ServeWS 升级连接并接管客户端的订阅生命周期
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("websocket upgrade error: %v", err)
		return
	}
	client := &ClientConn{
		Conn:    conn,
		Send:    make(chan []byte, 100),
		Traders: make(map[string]struct{}),
	}
	// 加入管理 map
	h.mu.Lock()
	h.clientTraders[client] = client.Traders
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		if traders, ok := h.clientTraders[client]; ok {
			for id := range traders {
				delete(h.traderSubscribers[id], client)
				if len(h.traderSubscribers[id]) == 0 {
					delete(h.traderSubscribers, id)
				}
			}
			delete(h.clientTraders, client)
		}
		h.mu.Unlock()

		close(client.Send)
		conn.Close()
	}()

	// 不断从 Send channel 取消息，然后写入 WebSocket
	go client.writePump()
	// 循环读取客户端发来的消息，要求阻塞线程
	client.readPump(h)
}

// BroadcastSignal 把一条新入库的信号推给该交易员的所有订阅者
// 发送是非阻塞的：慢消费者的队列满了就丢弃这条消息
func (h *Handler) BroadcastSignal(event model.SignalEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Errorf("failed to marshal signal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.traderSubscribers[event.TraderID] {
		select {
		case client.Send <- data:
		default:
			// 队列满就丢掉
		}
	}
}

func (h *Handler) handleOnSubscribe(c *ClientConn, msg *subscribeMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range msg.Traders {
		if _, ok := h.traderSubscribers[id]; !ok {
			h.traderSubscribers[id] = make(map[*ClientConn]struct{})
		}
		h.traderSubscribers[id][c] = struct{}{}
		h.clientTraders[c][id] = struct{}{}
	}
}

func (h *Handler) handleOnUnsubscribe(c *ClientConn, msg *subscribeMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range msg.Traders {
		if _, ok := h.traderSubscribers[id]; !ok {
			continue
		}
		delete(h.traderSubscribers[id], c)
		if len(h.traderSubscribers[id]) == 0 {
			delete(h.traderSubscribers, id)
		}
		delete(h.clientTraders[c], id)
	}
}

func (c *ClientConn) writePump() {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Warnf("websocket write error: %v", err)
			break
		}
	}
}

// readPump 读取客户端消息
func (c *ClientConn) readPump(h *Handler) {
	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg subscribeMessage
		if err := json.Unmarshal(msg, &clientMsg); err != nil {
			logger.Warnf("invalid websocket message: %v", err)
			continue
		}

		switch clientMsg.Action {
		case "subscribe":
			h.handleOnSubscribe(c, &clientMsg)
		case "unsubscribe":
			h.handleOnUnsubscribe(c, &clientMsg)
		}
	}
}
