package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/EricVikberg/M7011E/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type feedHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

var orderFeed = &feedHub{clients: make(map[*websocket.Conn]bool)}

func (h *feedHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *feedHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Broadcast pushes a committed order to every connected client. Dead
// connections are dropped on write failure.
func (h *feedHub) Broadcast(order *models.Order) {
	data, err := json.Marshal(orderView(order))
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// GET /admin/orders/stream
//
// Staff dashboards subscribe here and receive each order as it commits.
func StreamOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		orderFeed.add(conn)
		defer orderFeed.remove(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
