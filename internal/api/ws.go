package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	queuePushEvery = 5 * time.Second
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// queueSnapshot is one push of the kitchen dashboard feed.
type queueSnapshot struct {
	Type     string      `json:"type"`
	Orders   interface{} `json:"orders"`
	Pendings interface{} `json:"pendings"`
	At       time.Time   `json:"at"`
}

// handleKitchenSocket streams the live queue to a kitchen dashboard. Each
// push runs the SLA and expiry sweeps first so the snapshot is current.
func (s *Server) handleKitchenSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	go s.writeQueue(conn)
	go readDiscard(conn)
}

// writeQueue pushes queue snapshots until the peer goes away.
func (s *Server) writeQueue(conn *websocket.Conn) {
	push := time.NewTicker(queuePushEvery)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		push.Stop()
		ping.Stop()
		conn.Close()
	}()

	// First snapshot immediately, then on every tick.
	if err := s.pushSnapshot(conn); err != nil {
		return
	}
	for {
		select {
		case <-push.C:
			if err := s.pushSnapshot(conn); err != nil {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) pushSnapshot(conn *websocket.Conn) error {
	if err := s.queue.SweepSLA(); err != nil {
		log.Printf("SLA sweep failed: %v", err)
	}
	if err := s.ledger.AutoApproveExpired(); err != nil {
		log.Printf("Expiry sweep failed: %v", err)
	}

	orderList, err := s.queue.ListQueue()
	if err != nil {
		log.Printf("Queue read failed: %v", err)
		return nil
	}
	pendingList, err := s.ledger.ListPending()
	if err != nil {
		log.Printf("Pending read failed: %v", err)
		return nil
	}

	payload, err := json.Marshal(queueSnapshot{
		Type:     "queue",
		Orders:   orderList,
		Pendings: pendingList,
		At:       time.Now(),
	})
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// readDiscard drains the connection so pongs are processed and closes are
// noticed.
func readDiscard(conn *websocket.Conn) {
	defer conn.Close()
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}
