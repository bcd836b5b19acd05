package notification

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// wsConnection adapts a gorilla websocket to the Connection interface.
// Gorilla allows only one concurrent writer, so writes are serialized.
type wsConnection struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func (c *wsConnection) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *wsConnection) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *wsConnection) markClosed() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// ServeWS upgrades the request and keeps the connection subscribed until the
// client goes away. The caller's auth middleware must have set userID.
func (s *Service) ServeWS(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[Notification] Failed to upgrade websocket: %v", err)
		return
	}
	defer ws.Close()

	conn := &wsConnection{conn: ws}
	s.Subscribe(userID, conn)
	defer func() {
		conn.markClosed()
		s.Unsubscribe(userID, conn)
	}()

	// Drain the read side; the first error means the peer is gone.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			log.Printf("[Notification] Websocket closed for user %s: %v", userID, err)
			return
		}
	}
}
